// Package template implements the TEMPLATE collaborator: the
// creation-parameter template store. Grounded on the internal/env
// package this module is descended from, which resolves an ambient
// default via a small package-level resolver function; here the
// resolver is keyed by a template "kind" string rather than an
// environment variable, since layout parameters are fixed conventions,
// not deployment-specific paths.
package template

import "sync"

// Kind names a template category. The only kind the core itself uses is
// "file-create", but the store is generic so higher layers (ROOT,
// dataset/object creation, out of scope here) can register their own.
type Kind string

const FileCreate Kind = "file-create"

// Params is opaque to this package; it is whatever blob of defaults a
// given Kind's caller registers. The container core uses it to hold a
// CreateParams-shaped value via the Default/Init calls.
type Params = interface{}

// Store holds one default and any number of explicitly created template
// instances per Kind.
type Store struct {
	mu       sync.Mutex
	defaults map[Kind]Params
	next     uint64
	created  map[uint64]Params
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		defaults: make(map[Kind]Params),
		created:  make(map[uint64]Params),
	}
}

// SetDefault registers the default template for kind. The container's
// setup code calls this once at init time with h5core.DefaultCreateParams().
func (s *Store) SetDefault(kind Kind, p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[kind] = p
}

// Default returns the id of the default template for kind, creating a
// fresh instance copy of it so callers can Init into their own copy
// without aliasing the store's default.
func (s *Store) Default(kind Kind) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.defaults[kind]
	if !ok {
		return 0, false
	}
	s.next++
	id := s.next
	s.created[id] = p
	return id, true
}

// Init copies the template registered under id into out via the given
// copy function (the store itself does not know the concrete type).
func (s *Store) Init(id uint64, copyInto func(Params)) bool {
	s.mu.Lock()
	p, ok := s.created[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	copyInto(p)
	return true
}

// Create registers a new template instance of the given kind with
// explicit parameters and returns its id.
func (s *Store) Create(kind Kind, p Params) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.created[id] = p
	return id
}
