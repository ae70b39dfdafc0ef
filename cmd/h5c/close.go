package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const closeHelp = `h5c close [-flags] <path>

Open a container file, then close it and report the close engine's
outcome explicitly, including whether contained objects kept it from a
full cache invalidation (the StillOpen tri-state).

Example:
  % h5c close -write /tmp/a.bin
`

func cmdClose(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("close", flag.ExitOnError)
	fset.Usage = usage(fset, closeHelp)
	af := addAccessFlags(fset)
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("close requires exactly one path argument")
	}
	path := fset.Arg(0)

	id, err := h5core.Open(path, af.resolve(), h5core.DefaultCreateParamsID())
	if err != nil {
		return xerrors.Errorf("Open: %w", err)
	}

	err = h5core.Close(id)
	switch {
	case err == nil:
		fmt.Printf("closed %s\n", path)
	case isStillOpen(err):
		fmt.Printf("closed %s (contained objects were still open)\n", path)
	default:
		return xerrors.Errorf("Close: %w", err)
	}
	return nil
}
