package main

import (
	"context"
	"flag"
	"os"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const debugHelp = `h5c debug <path>

Open a container file read-only and dump its boot-block fields.

Example:
  % h5c debug /tmp/a.bin
`

func cmdDebug(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("debug", flag.ExitOnError)
	fset.Usage = usage(fset, debugHelp)
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("debug requires exactly one path argument")
	}
	path := fset.Arg(0)

	id, err := h5core.Open(path, 0, h5core.DefaultCreateParamsID())
	if err != nil {
		return xerrors.Errorf("Open: %w", err)
	}
	defer h5core.Close(id)

	if err := h5core.Debug(id, os.Stdout); err != nil {
		return xerrors.Errorf("Debug: %w", err)
	}
	return nil
}
