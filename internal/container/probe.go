package container

import (
	"io"
	"os"

	"golang.org/x/sync/singleflight"

	"github.com/h5lib/h5core"
)

// probeGroup coalesces concurrent IsContainer calls against the same
// path into a single scan. This is safe only because the result is
// idempotent and the probe has no side effects on shared state — unlike
// the refcounted open engine's attach step, which Registry deliberately
// does not coalesce this way (see registry.go).
var probeGroup singleflight.Group

// IsContainer opens path read-only, scans candidate signature positions
// up to the file's length, and returns true on the first match. The
// host file handle is released before return regardless of outcome.
func IsContainer(path string) (bool, error) {
	v, err, _ := probeGroup.Do(path, func() (interface{}, error) {
		return scanForSignature(path)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func scanForSignature(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, h5core.Wrapf("File", "CantOpen", err, "opening %s", path)
	}
	defer f.Close()

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return false, h5core.Wrapf("IO", "SeekError", err, "determining length of %s", path)
	}

	var magic [8]byte
	for pos := int64(0); pos < length; {
		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return false, h5core.Wrapf("IO", "SeekError", err, "seeking to candidate %d", pos)
		}
		if _, err := io.ReadFull(f, magic[:]); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				// Not enough bytes remain at this candidate for a
				// signature; no further, larger candidate can fit
				// either, so the scan is conclusively done.
				return false, nil
			}
			return false, h5core.Wrapf("IO", "ReadError", err, "reading candidate %d", pos)
		}
		if magic == Signature {
			return true, nil
		}
		if pos == 0 {
			pos = 512
		} else {
			pos *= 2
		}
	}
	return false, nil
}
