package container

import (
	"fmt"
	"sync"
)

// FileKey is the (device, inode) identity used to deduplicate multiple
// logical opens of the same physical file.
type FileKey struct {
	Dev uint64
	Ino uint64
}

func (k FileKey) String() string { return fmt.Sprintf("%d:%d", k.Dev, k.Ino) }

// Registry is the shared-state registry: a map from FileKey to the live
// *SharedFile for that physical file. It is a side-index, (dev,ino) ->
// SharedFile, used by Open to find an existing SharedFile; each attached
// File also holds its own pointer to it. An entry is removed when
// Release drops its Nrefs to zero.
//
// The core assumes single-threaded cooperative use and does not itself
// serialize attach-vs-construct races; see probe.go for where this
// module does wire in golang.org/x/sync/singleflight (for the read-only,
// side-effect-free IsContainer scan, where coalescing concurrent callers
// is trivially safe, unlike the refcounted attach path here).
type Registry struct {
	mu    sync.Mutex
	byKey map[FileKey]*SharedFile
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[FileKey]*SharedFile)}
}

// Lookup returns the SharedFile currently registered for key, if any.
func (r *Registry) Lookup(key FileKey) (*SharedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sf, ok := r.byKey[key]
	return sf, ok
}

// Add registers sf under key. Callers must ensure key is not already
// registered (Open re-checks Lookup immediately beforehand).
func (r *Registry) Add(key FileKey, sf *SharedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = sf
}

// Release decrements the SharedFile's Nrefs and, if it reaches zero,
// removes it from the registry. It reports whether the SharedFile was
// removed.
func (r *Registry) Release(key FileKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sf, ok := r.byKey[key]
	if !ok {
		return false
	}
	sf.Nrefs--
	if sf.Nrefs <= 0 {
		delete(r.byKey, key)
		return true
	}
	return false
}

// Count returns the number of distinct physical files currently
// registered, i.e. the number of live SharedFile objects.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}
