package content

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string
	Kind string
}

func newRecs(t *testing.T, items ...rec) *Collection[rec] {
	t.Helper()
	c := NewCollection(func(r rec) string { return r.ID })
	for _, it := range items {
		require.NoError(t, c.Create(it))
	}
	return c
}

func TestCollection_CRUD(t *testing.T) {
	c := newRecs(t, rec{"a", "x"}, rec{"b", "y"})

	require.ErrorIs(t, c.Create(rec{"a", "z"}), common.ErrorAlreadyExists)

	got, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "y", got.Kind)

	require.NoError(t, c.Put("b", rec{"b", "x"}))
	require.ErrorIs(t, c.Put("zz", rec{"zz", "x"}), common.ErrorNotFound)

	require.NoError(t, c.Delete("a"))
	require.ErrorIs(t, c.Delete("a"), common.ErrorNotFound)
	_, err = c.Get("a")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_List(t *testing.T) {
	c := newRecs(t, rec{"1", "x"}, rec{"2", "y"}, rec{"3", "x"}, rec{"4", "x"})
	onlyX := func(r rec) bool { return r.Kind == "x" }

	tests := []struct {
		name        string
		match       func(rec) bool
		skip, limit int
		want        []string
	}{
		{"all", nil, 0, 0, []string{"1", "2", "3", "4"}},
		{"filtered", onlyX, 0, 0, []string{"1", "3", "4"}},
		{"skip counts matches", onlyX, 1, 0, []string{"3", "4"}},
		{"limit", nil, 1, 2, []string{"2", "3"}},
		{"past the end", nil, 10, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, r := range c.List(tt.match, tt.skip, tt.limit) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCollection_Concurrent(t *testing.T) {
	c := NewCollection(func(r rec) string { return r.ID })
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Create(rec{ID: string(rune('A' + i%26)), Kind: "x"})
			_ = c.List(nil, 0, 0)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, c.Len())
}
