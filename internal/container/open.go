package container

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

func statKey(name string) (key FileKey, exists bool, err error) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		if err == unix.ENOENT {
			return FileKey{}, false, nil
		}
		return FileKey{}, false, h5core.Wrapf("File", "CantOpen", err, "stat %s", name)
	}
	return FileKey{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true, nil
}

// Open implements the open engine: flag-precedence resolution, shared-
// state dedup by (dev,ino), and boot-block materialization or decode. On
// any failure after sf has been registered, the attach this call just
// made is unwound: the shared state's reference count is decremented,
// and the host handle is closed only if that brings the count to zero.
// This matters because a double-open of the same physical file is a
// required, observable behavior — a losing racer's failure must never
// close a handle other attached Files still depend on.
func Open(reg *Registry, name string, flags h5core.AccessFlag, defaultParams h5core.CreateParams) (f *File, err error) {
	key, exists, err := statKey(name)
	if err != nil {
		return nil, err
	}

	var (
		sf        *SharedFile
		emptyFile bool
		firstOpen bool // Nrefs transitioned 0->1 for this SharedFile
	)

	defer func() {
		if err == nil || sf == nil {
			return
		}
		if reg.Release(key) {
			sf.Cache.Destroy()
			sf.Handle.Close()
		}
	}()

	if exists {
		if flags.has(h5core.EXCLUSIVE) {
			return nil, h5core.New("File", "Exists", name, nil)
		}
		if unix.Access(name, unix.R_OK) != nil {
			return nil, h5core.New("File", "ReadError", name, nil)
		}
		if flags.has(h5core.WRITE) && unix.Access(name, unix.W_OK) != nil {
			return nil, h5core.New("File", "WriteError", name, nil)
		}

		if existing, found := reg.Lookup(key); found {
			// Match.
			if flags.has(h5core.TRUNCATE) {
				return nil, h5core.New("File", "FileOpen", name, nil)
			}
			if flags.has(h5core.WRITE) && existing.Flags&h5core.WRITE == 0 {
				newHandle, rerr := os.OpenFile(name, os.O_RDWR, 0)
				if rerr != nil {
					// A failed reopen for write leaves the pre-existing
					// read-only shared state, and every File already
					// attached to it, valid and usable.
					return nil, h5core.Wrapf("File", "CantOpen", rerr, "reopening %s for write", name)
				}
				existing.Handle.Close()
				existing.Handle = newHandle
				existing.Flags |= h5core.WRITE
				// The fd changed identity; any remembered cursor no
				// longer corresponds to its position.
				existing.LastOp = OpNone
			}
			existing.Nrefs++
			sf = existing
		} else if flags.has(h5core.TRUNCATE) {
			if !flags.has(h5core.WRITE) {
				return nil, h5core.New("File", "BadValue", "TRUNCATE requires WRITE", nil)
			}
			handle, cerr := os.OpenFile(name, os.O_RDWR|os.O_TRUNC, 0)
			if cerr != nil {
				return nil, h5core.Wrapf("File", "CantCreate", cerr, "truncating %s", name)
			}
			sf = newSharedFile(key, handle, h5core.WRITE)
			reg.Add(key, sf)
			emptyFile = true
			firstOpen = true
		} else {
			osFlags := os.O_RDONLY
			if flags.has(h5core.WRITE) {
				osFlags = os.O_RDWR
			}
			handle, oerr := os.OpenFile(name, osFlags, 0)
			if oerr != nil {
				return nil, h5core.Wrapf("File", "CantOpen", oerr, "opening %s", name)
			}
			shFlags := h5core.AccessFlag(0)
			if flags.has(h5core.WRITE) {
				shFlags = h5core.WRITE
			}
			sf = newSharedFile(key, handle, shFlags)
			reg.Add(key, sf)
			firstOpen = true
		}
	} else {
		if !flags.has(h5core.CREATE) {
			return nil, h5core.New("File", "CantOpen", name, nil)
		}
		if !flags.has(h5core.WRITE) {
			return nil, h5core.New("File", "BadValue", "CREATE requires WRITE", nil)
		}

		handle, cerr := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if cerr != nil {
			return nil, h5core.Wrapf("File", "CantCreate", cerr, "creating %s", name)
		}

		var st unix.Stat_t
		if serr := unix.Fstat(int(handle.Fd()), &st); serr != nil {
			handle.Close()
			return nil, h5core.Wrapf("File", "CantCreate", serr, "fstat %s", name)
		}
		key = FileKey{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}
		sf = newSharedFile(key, handle, h5core.WRITE)
		reg.Add(key, sf)
		emptyFile = true
		firstOpen = true
	}

	f = &File{Name: name, Intent: flags, Shared: sf}

	if firstOpen {
		sf.CreateParams = defaultParams
	}

	if emptyFile {
		sf.ConsistFlags = 0x03
		if ferr := Flush(f, false); ferr != nil && !xerrors.Is(ferr, h5core.StillOpen) {
			err = h5core.Wrapf("File", "CantInit", ferr, "initializing %s", name)
			return nil, err
		}
	} else if firstOpen {
		if derr := decodeExisting(f); derr != nil {
			err = derr
			return nil, err
		}
	}

	if serr := syncTrailingSize(f); serr != nil {
		err = serr
		return nil, err
	}

	return f, nil
}

// decodeExisting runs the boot-block decode scan against an existing
// file being opened for the first time (Nrefs just became 1).
func decodeExisting(f *File) error {
	sf := f.Shared

	length, err := sf.Handle.Seek(0, io.SeekEnd)
	if err != nil {
		return h5core.Wrapf("IO", "SeekError", err, "determining length of %s", f.Name)
	}

	for _, pos := range candidatePositions(length) {
		sf.CreateParams.UserblockSize = userblockSizeForCandidate(pos)
		sf.LastOp = OpNone // the candidate just changed the physical mapping

		fixed := make([]byte, fixedPartSize)
		// A failed read here (typically a short read: this candidate
		// doesn't have room for a boot block) moves on to the next
		// candidate. The signature probe in probe.go instead ends its
		// scan at the first short read.
		if rerr := Read(f, 0, fixed); rerr != nil {
			continue
		}
		var magic [8]byte
		copy(magic[:], fixed[:8])
		if magic != Signature {
			continue
		}

		params, consistFlags, derr := decodeFixedPart(fixed)
		if derr != nil {
			return derr
		}
		params.UserblockSize = sf.CreateParams.UserblockSize
		sf.CreateParams = params

		varBuf := make([]byte, variablePartSize(params))
		if rerr := Read(f, int64(fixedPartSize), varBuf); rerr != nil {
			return h5core.Wrapf("File", "CantOpen", rerr, "reading variable boot block part")
		}
		smallobjOff, freespaceOff, logicalLen, root, verr := decodeVariablePart(varBuf, params)
		if verr != nil {
			return verr
		}
		sf.ConsistFlags = consistFlags
		sf.SmallobjOff = smallobjOff
		sf.FreespaceOff = freespaceOff
		sf.LogicalLen = logicalLen
		sf.RootEnt = root
		return nil
	}

	return h5core.New("File", "NotContainer", f.Name, nil)
}

// syncTrailingSize performs trailing size synchronization: record the
// cursor, seek-end to find the physical file size, update logical_len,
// then restore the cursor so seek-elision stays correct.
func syncTrailingSize(f *File) error {
	sf := f.Shared
	savedOp, savedCursor := sf.LastOp, sf.Cursor

	size, err := sf.Handle.Seek(0, io.SeekEnd)
	if err != nil {
		return h5core.Wrapf("IO", "SeekError", err, "determining size of %s", f.Name)
	}
	sf.LogicalLen = size

	if savedOp != OpNone {
		if _, err := sf.Handle.Seek(savedCursor, io.SeekStart); err != nil {
			return h5core.Wrapf("IO", "SeekError", err, "restoring cursor for %s", f.Name)
		}
	}
	sf.LastOp, sf.Cursor = savedOp, savedCursor
	return nil
}
