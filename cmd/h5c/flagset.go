package main

import (
	"flag"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

// accessFlagSet wires the four AccessFlag bits onto a FlagSet, shared by
// every verb that opens a container file.
type accessFlagSet struct {
	write, create, exclusive, truncate *bool
}

func addAccessFlags(fset *flag.FlagSet) *accessFlagSet {
	return &accessFlagSet{
		write:     fset.Bool("write", false, "open for read+write"),
		create:    fset.Bool("create", false, "create the file if absent (requires -write)"),
		exclusive: fset.Bool("exclusive", false, "fail if the file is already present"),
		truncate:  fset.Bool("truncate", false, "truncate an existing file (requires -write)"),
	}
}

func (a *accessFlagSet) resolve() h5core.AccessFlag {
	var flags h5core.AccessFlag
	if *a.write {
		flags |= h5core.WRITE
	}
	if *a.create {
		flags |= h5core.CREATE
	}
	if *a.exclusive {
		flags |= h5core.EXCLUSIVE
	}
	if *a.truncate {
		flags |= h5core.TRUNCATE
	}
	return flags
}

func isStillOpen(err error) bool {
	return xerrors.Is(err, h5core.StillOpen)
}
