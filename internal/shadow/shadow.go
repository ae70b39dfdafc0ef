// Package shadow implements the SHADOW collaborator: the open-object
// tracker consulted during flush to learn whether contained objects
// (datasets, groups — layers above this module) are still open, which
// gates the distinguished StillOpen flush outcome.
//
// Grounded on the open-handle bookkeeping pattern used by FUSE
// implementations in the pack (lookup counts keyed by inode, e.g.
// GoogleCloudPlatform-gcsfuse's fs/inode.LookupCount), generalized here
// to a single per-file open-object counter since the container core does
// not itself model individual contained-object identities.
package shadow

import "sync"

// Table counts live contained-object references for one open container
// file.
type Table struct {
	mu    sync.Mutex
	count int
}

// New returns an empty Table.
func New() *Table { return &Table{} }

// Open registers a newly opened contained object.
func (t *Table) Open() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
}

// Close deregisters a closed contained object.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count > 0 {
		t.count--
	}
}

// Flush reports whether any contained objects are still open. A true
// result means the caller (the container core's Flush) should surface
// StillOpen instead of a plain success once the rest of flush has
// otherwise completed.
func (t *Table) Flush(invalidate bool) (stillOpen bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count > 0
}
