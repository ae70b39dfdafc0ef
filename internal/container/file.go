package container

import "github.com/h5lib/h5core"

// File is one per logical open: the caller's path, access intent, and a
// reference to the shared state for its physical file.
type File struct {
	Name   string
	Intent h5core.AccessFlag
	Shared *SharedFile
}
