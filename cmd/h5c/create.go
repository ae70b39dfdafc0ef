package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const createHelp = `h5c create [-flags] <path>

Create a container file.

Example:
  % h5c create -overwrite /tmp/a.bin
`

func cmdCreate(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("create", flag.ExitOnError)
	fset.Usage = usage(fset, createHelp)
	overwrite := fset.Bool("overwrite", false, "discard any existing content at path instead of failing if it exists")
	offsetSize := fset.Uint("offset-size", 4, "on-disk offset width in bytes (2, 4, or 8)")
	lengthSize := fset.Uint("length-size", 4, "on-disk length width in bytes (2, 4, or 8)")
	symLeafK := fset.Uint("sym-leaf-k", 4, "symbol-table leaf node K")
	btreeK := fset.Uint("btree-internal-k", 16, "B-tree internal node K")
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("create requires exactly one path argument")
	}
	path := fset.Arg(0)

	params := h5core.DefaultCreateParams()
	params.OffsetSize = uint8(*offsetSize)
	params.LengthSize = uint8(*lengthSize)
	params.SymLeafK = uint16(*symLeafK)
	params.BtreeInternalK = uint16(*btreeK)
	paramsID := h5core.NewCreateParamsID(params)

	id, err := h5core.Create(path, *overwrite, paramsID)
	if err != nil {
		return xerrors.Errorf("Create: %w", err)
	}
	if err := h5core.Close(id); err != nil && !isStillOpen(err) {
		return xerrors.Errorf("Close: %w", err)
	}
	fmt.Printf("created %s\n", path)
	return nil
}
