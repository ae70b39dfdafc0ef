package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const isContainerHelp = `h5c is-container <path>

Report whether path looks like a container file.

Example:
  % h5c is-container /tmp/a.bin
`

func cmdIsContainer(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("is-container", flag.ExitOnError)
	fset.Usage = usage(fset, isContainerHelp)
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("is-container requires exactly one path argument")
	}

	ok, err := h5core.IsContainer(fset.Arg(0))
	if err != nil {
		return xerrors.Errorf("IsContainer: %w", err)
	}
	fmt.Println(ok)
	return nil
}
