// Package observe provides a small observable value used for shared
// application state (session token, current user, current route).
package observe

import (
	"errors"
	"sync"
)

// Observer is notified with the new value after every Set.
// A non-nil error is reported back to the writer.
type Observer[T any] func(T) error

// Cell holds a single value and notifies subscribers when it changes.
// Observers run synchronously on the writer's goroutine, outside the lock.
type Cell[T any] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	observers map[int]Observer[T]
	order     []int
}

// NewCell returns a Cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, observers: make(map[int]Observer[T])}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and notifies every observer in subscription order.
// All observers run even if one fails; their errors are joined.
func (c *Cell[T]) Set(v T) error {
	c.mu.Lock()
	c.value = v
	obs := c.snapshot()
	c.mu.Unlock()

	var errs []error
	for _, fn := range obs {
		if err := fn(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the observer.
func (c *Cell[T]) Subscribe(fn Observer[T]) (func(), error) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.order = append(c.order, id)
	current := c.value
	c.mu.Unlock()

	unsubscribe := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.observers[id]; !ok {
			return
		}
		delete(c.observers, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return unsubscribe, fn(current)
}

func (c *Cell[T]) snapshot() []Observer[T] {
	obs := make([]Observer[T], 0, len(c.order))
	for _, id := range c.order {
		obs = append(obs, c.observers[id])
	}
	return obs
}
