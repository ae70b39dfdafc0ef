package container

import (
	"io"

	"github.com/h5lib/h5core"
)

// Read reads len(buf) bytes starting at logical address addr into buf.
func Read(f *File, addr int64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return positionedIO(f.Shared, OpRead, addr, buf)
}

// Write writes buf starting at logical address addr. It fails with
// IO/WriteError if f's intent does not include WRITE, independently of
// whether the underlying shared handle happens to be writable (a
// File's intent and its SharedFile's flags are tracked separately).
func Write(f *File, addr int64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if !f.Intent.has(h5core.WRITE) {
		return h5core.New("IO", "WriteError", "write issued through a read-only handle", nil)
	}
	return positionedIO(f.Shared, OpWrite, addr, buf)
}

// positionedIO implements the seek-elision algorithm common to Read and
// Write. Contiguous sequential I/O is the
// overwhelmingly common pattern; skipping the host seek when the cursor
// is already positioned correctly reduces syscall volume. The
// optimization stays correct because cursor is maintained eagerly and
// any operation that leaves it in doubt (a failing seek or I/O) resets
// last_op to None, forcing the next call to reseek.
func positionedIO(sf *SharedFile, op Op, addr int64, buf []byte) error {
	phys := addr + sf.CreateParams.UserblockSize

	if sf.LastOp != op || sf.Cursor != phys {
		if _, err := sf.Handle.Seek(phys, io.SeekStart); err != nil {
			sf.LastOp = OpNone
			return h5core.Wrapf("IO", "SeekError", err, "seek to physical offset %d", phys)
		}
		sf.LastOp = op
	}

	var n int
	var err error
	switch op {
	case OpRead:
		n, err = io.ReadFull(sf.Handle, buf)
	case OpWrite:
		n, err = sf.Handle.Write(buf)
	}
	if err != nil {
		sf.LastOp = OpNone
		code := "ReadError"
		if op == OpWrite {
			code = "WriteError"
		}
		return h5core.Wrapf("IO", code, err, "at physical offset %d, %d bytes", phys, len(buf))
	}

	sf.Cursor = phys + int64(n)
	return nil
}
