// Package registry implements the generic "register by name, look up by
// name" pattern shared by the scripted-command and native-module
// capability contracts, generalized from the corpus's own CI-provider
// registry (package-level map guarded by a sync.RWMutex, with
// Register/Get/Names operations).
package registry

import "sync"

// Table is a thread-safe name-keyed registry for any capability type T.
// Both the scripted command registry (§4.9) and the native module
// registry (§4.10) are built on a Table.
type Table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewTable returns an empty, ready-to-use Table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[string]T)}
}

// Register makes item available under name, replacing any prior entry.
func (t *Table[T]) Register(name string, item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[name] = item
}

// Get returns the item registered under name, if any.
func (t *Table[T]) Get(name string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[name]
	return item, ok
}

// Has reports whether name is registered.
func (t *Table[T]) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.items[name]
	return ok
}

// Count returns the number of registered items.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// Names returns the registered names in no particular order. Callers that
// need a stable order (e.g. the menu driver) sort the result themselves.
func (t *Table[T]) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.items))
	for name := range t.items {
		names = append(names, name)
	}
	return names
}

// All returns a copy of every registered item.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	items := make([]T, 0, len(t.items))
	for _, item := range t.items {
		items = append(items, item)
	}
	return items
}
