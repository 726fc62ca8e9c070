package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"windows newlines", "a\r\nb\r\n\r\n", "a\nb"},
		{"immediate blank", "\n", ""},
		{"eof without blank line", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Enter text", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestEditText_KeepsCurrentOnBlank(t *testing.T) {
	var out bytes.Buffer
	got, err := editText(rdr("\n"), &out, "Title", "Market sizing")
	require.NoError(t, err)
	assert.Equal(t, "Market sizing", got)
	assert.Contains(t, out.String(), "Title [Market sizing]")

	got, err = editText(rdr("Pricing\n"), &out, "Title", "Market sizing")
	require.NoError(t, err)
	assert.Equal(t, "Pricing", got)
}

func TestEditChoice(t *testing.T) {
	opts := []string{"Easy", "Medium", "Hard"}
	tests := []struct {
		name  string
		input string
		cur   string
		want  string
	}{
		{"by number", "3\n", "", "Hard"},
		{"case insensitive", "medium\n", "", "Medium"},
		{"keep current", "\n", "Easy", "Easy"},
		{"retry after invalid", "Extreme\n2\n", "", "Medium"},
		{"blank without current", "\n", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := editChoice(rdr(tt.input), &out, "Difficulty", tt.cur, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "sure\n": false} {
		var out bytes.Buffer
		got, err := confirm(rdr(in), &out, "Delete?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}
