// Package handles implements the HANDLES collaborator: a registry
// mapping opaque integer identifiers to in-memory objects.
//
// The registry assumes single-threaded cooperative callers; the
// concurrent-coalescing concern lives instead on the read-only
// IsContainer probe (see internal/container/probe.go), where coalescing
// concurrent callers is safe because the result is idempotent.
package handles

import "sync"

// ID is an opaque handle identifier, as returned by the public
// Create/Open operations.
type ID uint64

// Registry maps IDs to objects.
type Registry struct {
	mu   sync.Mutex
	next ID
	objs map[ID]interface{}
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{objs: make(map[ID]interface{})}
}

// Register assigns a fresh ID to obj and returns it.
func (r *Registry) Register(obj interface{}) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := r.next
	r.objs[id] = obj
	return id
}

// Lookup returns the object registered under id, if any.
func (r *Registry) Lookup(id ID) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objs[id]
	return obj, ok
}

// Remove deregisters id. It is a no-op if id is not registered.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.objs, id)
}
