// Package symtab implements the ROOT collaborator: encoding and
// decoding of the root symbol-table entry that trails the boot block's
// variable part. The entry's contents are opaque to the container core;
// this package owns the one piece of the core that needs a concrete (if
// minimal) root-entry representation so the rest of the module is
// testable end to end.
//
// The wire layout follows the well-known HDF5 symbol-table-entry shape:
// a link-name offset into the root group's local heap, the object-header
// address of the root group, a cache-type discriminant, a reserved
// field, and a 16-byte scratch pad — encoded little-endian, with the two
// offset fields sized by the container's offset_size, using
// binary.LittleEndian's fixed-width put/get helpers.
package symtab

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Entry is the root symbol-table entry. It is opaque to the container
// core: only this package interprets its fields.
type Entry struct {
	LinkNameOffset      uint64
	ObjectHeaderAddress uint64
	CacheType           uint32
	Scratch             [16]byte
}

// SizeOfEntry returns the on-disk width of an Entry for the given
// offset_size.
func SizeOfEntry(offsetSize uint8) int {
	return int(offsetSize)*2 + 4 /*cache type*/ + 4 /*reserved*/ + 16 /*scratch*/
}

// Encode appends the wire representation of e to buf using the given
// offset_size and returns the extended slice.
func Encode(buf []byte, offsetSize uint8, e Entry) ([]byte, error) {
	buf = appendUint(buf, offsetSize, e.LinkNameOffset)
	buf = appendUint(buf, offsetSize, e.ObjectHeaderAddress)
	var tmp [8]byte
	binary.LittleEndian.PutUint32(tmp[:4], e.CacheType)
	binary.LittleEndian.PutUint32(tmp[4:8], 0) // reserved
	buf = append(buf, tmp[:8]...)
	buf = append(buf, e.Scratch[:]...)
	return buf, nil
}

// Decode reads an Entry of the given offset_size from r.
func Decode(r io.Reader, offsetSize uint8) (Entry, error) {
	var e Entry
	var err error
	if e.LinkNameOffset, err = readUint(r, offsetSize); err != nil {
		return Entry{}, fmt.Errorf("root entry: link name offset: %w", err)
	}
	if e.ObjectHeaderAddress, err = readUint(r, offsetSize); err != nil {
		return Entry{}, fmt.Errorf("root entry: object header address: %w", err)
	}
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return Entry{}, fmt.Errorf("root entry: cache type: %w", err)
	}
	e.CacheType = binary.LittleEndian.Uint32(tmp[:4])
	if _, err := io.ReadFull(r, e.Scratch[:]); err != nil {
		return Entry{}, fmt.Errorf("root entry: scratch pad: %w", err)
	}
	return e, nil
}

func appendUint(buf []byte, size uint8, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:size]...)
}

func readUint(r io.Reader, size uint8) (uint64, error) {
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:size]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(tmp[:]), nil
}
