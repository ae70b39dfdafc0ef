package container

import (
	"os"

	"github.com/h5lib/h5core"
	"github.com/h5lib/h5core/internal/cache"
	"github.com/h5lib/h5core/internal/shadow"
	"github.com/h5lib/h5core/internal/symtab"
)

// Op is the seek-elision tag: last_op is conceptually a three-state tag,
// paired with the cursor so the "no previous op" case stays
// unrepresentable-if-invalid. Op and Cursor are kept as a pair of fields
// on SharedFile rather than a Go sum type (Go has no closed sum types),
// but every read of Cursor is gated on checking Op first, preserving the
// same invariant.
type Op int

const (
	OpNone Op = iota
	OpRead
	OpWrite
)

// SharedFile is the per-physical-file shared state: one per physical
// file currently open in the process, deduplicating multiple logical
// File opens.
type SharedFile struct {
	Key FileKey

	// Nrefs counts live File handles attached to this SharedFile.
	// Mutated only by the open engine (attach) and Registry.Release
	// (detach).
	Nrefs int

	// Flags is the bottom-level open intent the host handle actually
	// supports; monotonically non-decreasing over the SharedFile's life.
	Flags h5core.AccessFlag

	Handle *os.File

	// CreateParams is set exactly once, when Nrefs transitions 0->1.
	CreateParams h5core.CreateParams

	ConsistFlags uint32
	SmallobjOff  int64
	FreespaceOff int64
	LogicalLen   int64
	RootEnt      symtab.Entry

	Cache       *cache.Cache
	ShadowTable *shadow.Table

	LastOp Op
	Cursor int64
}

// newSharedFile constructs a fresh SharedFile with Nrefs=1 and fresh
// collaborator instances, as the open engine does for "No match"
// branches and absent-file creation.
func newSharedFile(key FileKey, handle *os.File, flags h5core.AccessFlag) *SharedFile {
	return &SharedFile{
		Key:         key,
		Nrefs:       1,
		Flags:       flags,
		Handle:      handle,
		Cache:       cache.New(64),
		ShadowTable: shadow.New(),
		LastOp:      OpNone,
	}
}
