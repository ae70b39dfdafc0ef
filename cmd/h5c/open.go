package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const openHelp = `h5c open [-flags] <path>

Open a container file, then close it. Useful for exercising the open
engine against an existing or new file in isolation from flush/close.

Example:
  % h5c open -write -create /tmp/a.bin
`

func cmdOpen(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("open", flag.ExitOnError)
	fset.Usage = usage(fset, openHelp)
	af := addAccessFlags(fset)
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("open requires exactly one path argument")
	}
	path := fset.Arg(0)

	id, err := h5core.Open(path, af.resolve(), h5core.DefaultCreateParamsID())
	if err != nil {
		return xerrors.Errorf("Open: %w", err)
	}
	if err := h5core.Close(id); err != nil && !isStillOpen(err) {
		return xerrors.Errorf("Close: %w", err)
	}
	fmt.Printf("opened and closed %s\n", path)
	return nil
}
