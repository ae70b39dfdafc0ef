package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/h5lib/h5core"
	"github.com/h5lib/h5core/internal/symtab"
)

// Signature is the 8-byte magic literal that opens every boot block,
// taken verbatim from the HDF5 format this module's domain is modeled on.
var Signature = [8]byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

const fixedPartSize = 24

// candidatePositions returns the boot-block candidate offsets: 0, 512,
// 1024, 2048, ..., capped at maxAddr. The format allows scanning up to
// 32*sizeof(address) candidates, essentially unbounded; this caps at the
// physical file length instead.
func candidatePositions(maxAddr int64) []int64 {
	positions := []int64{0}
	for p := int64(512); p <= maxAddr; p *= 2 {
		positions = append(positions, p)
	}
	// Always try at least the 512 candidate even for empty/short files;
	// the decode loop in open.go (decodeExisting) will simply fail to
	// read enough bytes and move on.
	if len(positions) == 1 {
		positions = append(positions, 512)
	}
	return positions
}

// userblockSizeForCandidate applies the convention: position 0 means
// userblock_size 0, any other candidate position equals the userblock
// size.
func userblockSizeForCandidate(pos int64) int64 {
	if pos == 0 {
		return 0
	}
	return pos
}

// encodeBootBlock builds the fixed+variable boot block bytes for sf.
func encodeBootBlock(p h5core.CreateParams, sf *SharedFile) ([]byte, error) {
	if !p.validSizes() {
		return nil, h5core.New("Args", "BadValue", "offset_size/length_size must be 2, 4, or 8", nil)
	}

	buf := make([]byte, 0, fixedPartSize+32)
	buf = append(buf, Signature[:]...)
	buf = append(buf,
		p.BootblockVer,
		p.SmallobjectVer,
		p.FreespaceVer,
		p.ObjectdirVer,
		p.SharedheaderVer,
		p.OffsetSize,
		p.LengthSize,
		0, // reserved
	)
	buf = appendUint16(buf, p.SymLeafK)
	buf = appendUint16(buf, p.BtreeInternalK)
	buf = appendUint32(buf, sf.ConsistFlags)

	buf = appendSized(buf, p.OffsetSize, uint64(sf.SmallobjOff))
	buf = appendSized(buf, p.OffsetSize, uint64(sf.FreespaceOff))
	buf = appendSized(buf, p.LengthSize, uint64(sf.LogicalLen))

	var err error
	buf, err = symtab.Encode(buf, p.OffsetSize, sf.RootEnt)
	if err != nil {
		return nil, h5core.Wrapf("File", "CantInit", err, "encoding root entry")
	}

	return buf, nil
}

// decodedBootBlock groups everything the boot-block codec reads off disk
// (decodeFixedPart plus decodeVariablePart).
type decodedBootBlock struct {
	Params       h5core.CreateParams
	ConsistFlags uint32
	SmallobjOff  int64
	FreespaceOff int64
	LogicalLen   int64
	RootEnt      symtab.Entry
}

// decodeFixedPart decodes the 24-byte fixed part of the boot block from
// buf, validating every version byte and sizing field. buf must be
// exactly fixedPartSize bytes and already signature-matched.
func decodeFixedPart(buf []byte) (h5core.CreateParams, uint32, error) {
	var p h5core.CreateParams
	if len(buf) != fixedPartSize {
		return p, 0, h5core.New("Args", "BadRange", "short boot block fixed part", nil)
	}

	p.BootblockVer = buf[8]
	p.SmallobjectVer = buf[9]
	p.FreespaceVer = buf[10]
	p.ObjectdirVer = buf[11]
	p.SharedheaderVer = buf[12]
	p.OffsetSize = buf[13]
	p.LengthSize = buf[14]
	// buf[15] is reserved.
	p.SymLeafK = binary.LittleEndian.Uint16(buf[16:18])
	p.BtreeInternalK = binary.LittleEndian.Uint16(buf[18:20])
	consistFlags := binary.LittleEndian.Uint32(buf[20:24])

	for _, v := range []struct {
		name string
		got  uint8
		want uint8
	}{
		{"bootblock_ver", p.BootblockVer, h5core.BootblockVersion},
		{"smallobject_ver", p.SmallobjectVer, h5core.SmallobjectVersion},
		{"freespace_ver", p.FreespaceVer, h5core.FreespaceVersion},
		{"objectdir_ver", p.ObjectdirVer, h5core.ObjectdirVersion},
		{"sharedheader_ver", p.SharedheaderVer, h5core.SharedheaderVersion},
	} {
		if v.got != v.want {
			return p, 0, h5core.New("File", "CantOpen", fmt.Sprintf("unsupported %s %d", v.name, v.got), nil)
		}
	}
	if !p.validSizes() {
		return p, 0, h5core.New("File", "CantOpen", fmt.Sprintf("invalid offset_size/length_size %d/%d", p.OffsetSize, p.LengthSize), nil)
	}
	if p.SymLeafK < 1 {
		return p, 0, h5core.New("File", "CantOpen", "sym_leaf_k must be >= 1", nil)
	}
	if p.BtreeInternalK < 1 {
		return p, 0, h5core.New("File", "CantOpen", "btree_internal_k must be >= 1", nil)
	}

	return p, consistFlags, nil
}

// decodeVariablePart decodes the variable part following the fixed part:
// smallobj_off, freespace_off, logical_len, and the root entry.
func decodeVariablePart(buf []byte, p h5core.CreateParams) (smallobjOff, freespaceOff, logicalLen int64, root symtab.Entry, err error) {
	r := bytes.NewReader(buf)

	u, err := readSized(r, p.OffsetSize)
	if err != nil {
		return 0, 0, 0, root, h5core.Wrapf("File", "CantOpen", err, "reading smallobj_off")
	}
	smallobjOff = int64(u)

	u, err = readSized(r, p.OffsetSize)
	if err != nil {
		return 0, 0, 0, root, h5core.Wrapf("File", "CantOpen", err, "reading freespace_off")
	}
	freespaceOff = int64(u)

	u, err = readSized(r, p.LengthSize)
	if err != nil {
		return 0, 0, 0, root, h5core.Wrapf("File", "CantOpen", err, "reading logical_len")
	}
	logicalLen = int64(u)

	root, err = symtab.Decode(r, p.OffsetSize)
	if err != nil {
		return 0, 0, 0, root, h5core.Wrapf("File", "CantOpen", err, "decoding root entry")
	}

	return smallobjOff, freespaceOff, logicalLen, root, nil
}

func variablePartSize(p h5core.CreateParams) int {
	return int(p.OffsetSize)*2 + int(p.LengthSize) + symtab.SizeOfEntry(p.OffsetSize)
}

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendSized(buf []byte, size uint8, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:size]...)
}

func readSized(r *bytes.Reader, size uint8) (uint64, error) {
	tmp := make([]byte, size)
	if _, err := r.Read(tmp); err != nil {
		return 0, err
	}
	full := make([]byte, 8)
	copy(full, tmp)
	return binary.LittleEndian.Uint64(full), nil
}
