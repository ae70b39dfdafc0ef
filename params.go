package h5core

// Version constants for the boot-block fixed part. Only the single
// listed value is ever accepted for each field; the format does not
// evolve.
const (
	BootblockVersion    = 0
	SmallobjectVersion  = 0
	FreespaceVersion    = 0
	ObjectdirVersion    = 0
	SharedheaderVersion = 0
)

// CreateParams holds the parameters that describe how a container file is
// laid out on disk: the fixed+variable boot-block fields, plus the
// user-block size that every logical address is relative to.
//
// CreateParams is set once per SharedFile, at first-attach time, and is
// never mutated afterward; GetCreateParams always returns a copy.
type CreateParams struct {
	BootblockVer    uint8
	SmallobjectVer  uint8
	FreespaceVer    uint8
	ObjectdirVer    uint8
	SharedheaderVer uint8

	// OffsetSize and LengthSize are byte widths for on-disk offsets and
	// lengths; must be one of 2, 4, 8.
	OffsetSize uint8
	LengthSize uint8

	SymLeafK       uint16
	BtreeInternalK uint16

	// UserblockSize is the size in bytes of the opaque user-defined
	// prefix: 0 or a power of two >= 512. It is not itself part of the
	// on-disk boot block; it is the offset at which the boot block was
	// found (or will be written).
	UserblockSize int64
}

// DefaultCreateParams returns the conventional defaults, registered as
// the default creation-parameter template (see DefaultCreateParamsID).
func DefaultCreateParams() CreateParams {
	return CreateParams{
		BootblockVer:    BootblockVersion,
		SmallobjectVer:  SmallobjectVersion,
		FreespaceVer:    FreespaceVersion,
		ObjectdirVer:    ObjectdirVersion,
		SharedheaderVer: SharedheaderVersion,
		OffsetSize:      4,
		LengthSize:      4,
		SymLeafK:        4,
		BtreeInternalK:  16,
		UserblockSize:   0,
	}
}

func (p CreateParams) validSizes() bool {
	return (p.OffsetSize == 2 || p.OffsetSize == 4 || p.OffsetSize == 8) &&
		(p.LengthSize == 2 || p.LengthSize == 4 || p.LengthSize == 8)
}
