package container

import (
	"github.com/h5lib/h5core"
)

// Flush implements the flush engine. invalidate controls whether
// the cache is also emptied (true for Close, false for the initial write
// Open performs on an empty file, and the caller's choice for an
// explicit flush).
//
// A return of h5core.StillOpen means every other step completed but the
// shadow table reported live contained objects; callers that only care
// about success/failure should test for it with errors.Is, not treat it
// as a hard failure.
func Flush(f *File, invalidate bool) error {
	sf := f.Shared

	if sf.Flags&h5core.WRITE == 0 {
		// No-op on a read-only shared state.
		return nil
	}

	stillOpen := sf.ShadowTable.Flush(invalidate)

	if err := sf.Cache.Flush(invalidate, func(addr int64, data []byte) error {
		return positionedIO(sf, OpWrite, addr, data)
	}); err != nil {
		return h5core.Wrapf("Cache", "CantFlush", err, "flushing cache for %s", f.Name)
	}

	buf, err := encodeBootBlock(sf.CreateParams, sf)
	if err != nil {
		return err
	}
	if err := positionedIO(sf, OpWrite, 0, buf); err != nil {
		return h5core.Wrapf("IO", "WriteError", err, "writing boot block for %s", f.Name)
	}
	if sf.LogicalLen <= 0 {
		sf.LogicalLen = int64(len(buf))
	}

	if stillOpen {
		return h5core.StillOpen
	}
	return nil
}

// Close implements the close engine: flush with invalidation,
// close the host handle once the last reference detaches, and remove the
// SharedFile from reg.
func Close(reg *Registry, f *File) error {
	sf := f.Shared

	flushErr := Flush(f, true)
	stillOpen := flushErr != nil && isStillOpen(flushErr)

	if reg.Release(sf.Key) {
		sf.Cache.Destroy()
		if err := sf.Handle.Close(); err != nil {
			return h5core.Wrapf("File", "CantOpen", err, "closing %s", f.Name)
		}
	}

	f.Shared = nil

	if flushErr != nil && !stillOpen {
		return h5core.Wrapf("Cache", "CantFlush", flushErr, "closing %s", f.Name)
	}
	if stillOpen {
		return h5core.StillOpen
	}
	return nil
}

func isStillOpen(err error) bool {
	he, ok := err.(*h5core.Error)
	if !ok {
		return false
	}
	return he.Is(h5core.StillOpen)
}
