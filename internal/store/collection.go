// Package store provides the generic in-memory collection backing every
// domain repository. The hospital state is a set of entity collections that
// share the same add/update/delete contract, so the contract is implemented
// once and parameterized by the entity type and its id accessor.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Collection is an ordered, id-addressed set of entities. Updates and deletes
// of unknown ids are silent no-ops; Add performs no uniqueness validation of
// business fields, so callers are responsible for generating ids (services
// use uuid.New). All accessors return copies.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	index map[uuid.UUID]int
	idOf  func(T) uuid.UUID
}

// NewCollection creates an empty collection keyed by idOf.
func NewCollection[T any](idOf func(T) uuid.UUID) *Collection[T] {
	return &Collection[T]{
		index: make(map[uuid.UUID]int),
		idOf:  idOf,
	}
}

// Add appends an entity. An entity whose id already exists replaces the
// previous one in place; insertion order is otherwise preserved.
func (c *Collection[T]) Add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	if i, ok := c.index[id]; ok {
		c.items[i] = item
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
}

// Get returns a copy of the entity with the given id.
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.index[id]; ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Update applies mutate to the stored entity iff the id exists and reports
// whether it did. Unknown ids leave the collection unchanged; Update never
// inserts.
func (c *Collection[T]) Update(id uuid.UUID, mutate func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return false
	}
	mutate(&c.items[i])
	return true
}

// Delete removes the entity with the given id. Idempotent: unknown ids
// report false and change nothing.
func (c *Collection[T]) Delete(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.idOf(c.items[j])] = j
	}
	return true
}

// List returns a copy of all entities in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns copies of all entities matching pred, in insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns a copy of the first entity matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Len reports the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace swaps the entire contents, rebuilding the index. Used when loading
// a persisted snapshot.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.index = make(map[uuid.UUID]int, len(items))
	for i, item := range c.items {
		c.index[c.idOf(item)] = i
	}
}
