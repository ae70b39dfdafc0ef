package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const flushHelp = `h5c flush [-flags] <path>

Open a container file with the given access flags, flush it
explicitly, then close it. Without -write the flush is a no-op.
Useful for exercising the flush engine in isolation from close.

Example:
  % h5c flush -write -invalidate /tmp/a.bin
`

func cmdFlush(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("flush", flag.ExitOnError)
	fset.Usage = usage(fset, flushHelp)
	af := addAccessFlags(fset)
	invalidate := fset.Bool("invalidate", false, "also evict cached blocks after writing them back")
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("flush requires exactly one path argument")
	}
	path := fset.Arg(0)

	id, err := h5core.Open(path, af.resolve(), h5core.DefaultCreateParamsID())
	if err != nil {
		return xerrors.Errorf("Open: %w", err)
	}

	err = h5core.Flush(id, *invalidate)
	switch {
	case err == nil:
		fmt.Printf("flushed %s\n", path)
	case isStillOpen(err):
		fmt.Printf("flushed %s (contained objects were still open)\n", path)
	default:
		h5core.Close(id)
		return xerrors.Errorf("Flush: %w", err)
	}

	if err := h5core.Close(id); err != nil && !isStillOpen(err) {
		return xerrors.Errorf("Close: %w", err)
	}
	return nil
}
