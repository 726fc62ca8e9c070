// Package content stores the dev server's templates, lessons and interviews
// in memory.
package content

import (
	"sync"

	"github.com/dmitrijs2005/prepadmin/internal/common"
)

// Collection is an insertion-ordered set of records keyed by id. It is safe
// for concurrent use.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	id    func(T) string
}

func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{items: make(map[string]T), id: id}
}

// Create adds item; an existing id yields common.ErrorAlreadyExists.
func (c *Collection[T]) Create(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(item)
	if _, ok := c.items[id]; ok {
		return common.ErrorAlreadyExists
	}
	c.items[id] = item
	c.order = append(c.order, id)
	return nil
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, common.ErrorNotFound
	}
	return item, nil
}

// Put replaces the record stored under id.
func (c *Collection[T]) Put(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return common.ErrorNotFound
	}
	c.items[id] = item
	return nil
}

func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the records accepted by match (all when nil) in insertion
// order, after skipping skip and keeping at most limit (no cap when <= 0).
func (c *Collection[T]) List(match func(T) bool, skip, limit int) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0)
	seen := 0
	for _, id := range c.order {
		item := c.items[id]
		if match != nil && !match(item) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
