// Package registry provides the ordered, concurrency-safe helper
// collections backing the engine.
//
// Insertion order is selection priority: selectors scan a registry front
// to back and stop at the first match. Readers always operate on an
// immutable snapshot, so iteration is safe against concurrent appends.
//
// Replace rebuilds the contents under the registry's exclusive lock as a
// clear followed by a bulk append. Lock-free readers that load the
// contents between those two publications observe a transient empty
// registry; this weak consistency is deliberate and accepted. Replacing
// a registry with the exact snapshot it is already backed by is a no-op
// and skips the clear/append cycle entirely.
package registry

import (
	"sync"
	"sync/atomic"
)

// Registry is an ordered collection of helper instances of type T.
// The zero value is not usable; call New.
type Registry[T any] struct {
	mu    sync.Mutex // serializes writers
	items atomic.Pointer[[]T]
	muts  atomic.Uint64
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	r := &Registry[T]{}
	empty := []T{}
	r.items.Store(&empty)
	return r
}

// Items returns the current snapshot in insertion order. The returned
// slice is never mutated by the registry; callers must treat it as
// read-only.
func (r *Registry[T]) Items() []T {
	return *r.items.Load()
}

// Len returns the number of registered items.
func (r *Registry[T]) Len() int {
	return len(r.Items())
}

// Add appends items, preserving call order. Entries are unique per
// inserted instance only; nothing de-duplicates equivalent helpers.
func (r *Registry[T]) Add(items ...T) {
	if len(items) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := *r.items.Load()
	next := make([]T, 0, len(cur)+len(items))
	next = append(next, cur...)
	next = append(next, items...)
	r.items.Store(&next)
	r.muts.Add(uint64(len(items)))
}

// Clear removes all items.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Registry[T]) clearLocked() {
	empty := []T{}
	r.items.Store(&empty)
	r.muts.Add(1)
}

// Replace substitutes the full contents with a defensive copy of items.
// The caller's slice is never retained as backing storage.
//
// If items is the exact snapshot the registry currently holds
// (self-assignment), Replace returns without performing any mutation,
// avoiding the transient-empty window in the common case.
func (r *Registry[T]) Replace(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.items.Load()
	if sameBacking(items, cur) {
		return
	}

	// Clear first, then bulk-append. Readers loading between the two
	// stores see an empty registry; see the package comment.
	r.clearLocked()
	if len(items) == 0 {
		return
	}
	next := make([]T, len(items))
	copy(next, items)
	r.items.Store(&next)
	r.muts.Add(uint64(len(items)))
}

// Mutations returns the number of state changes applied so far. It
// exists so callers (and tests) can observe that no-op replaces really
// performed zero clear/append operations.
func (r *Registry[T]) Mutations() uint64 {
	return r.muts.Load()
}

// sameBacking reports whether a and b share length and backing array.
func sameBacking[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
