package h5core

// AccessFlag is the public set of independent open-intent bits.
type AccessFlag uint32

const (
	// WRITE opens for read+write.
	WRITE AccessFlag = 1 << iota
	// CREATE creates the container if it is absent. Requires WRITE.
	CREATE
	// EXCLUSIVE fails if the container is already present.
	EXCLUSIVE
	// TRUNCATE creates a fresh container, discarding any prior content.
	// Requires WRITE and requires that no other File has the same
	// physical file open.
	TRUNCATE
)

// OVERWRITE is a convenience alias for (WRITE | CREATE | TRUNCATE), for
// use with Create.
const OVERWRITE = WRITE | CREATE | TRUNCATE

// defaultCreateFlags is the alias Create uses when overwrite is false:
// (WRITE | CREATE | EXCLUSIVE).
const defaultCreateFlags = WRITE | CREATE | EXCLUSIVE

func (f AccessFlag) has(bit AccessFlag) bool { return f&bit != 0 }
