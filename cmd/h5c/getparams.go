package main

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
)

const getParamsHelp = `h5c get-params <path>

Open a container file read-only and print its creation parameters.

Example:
  % h5c get-params /tmp/a.bin
`

func cmdGetParams(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("get-params", flag.ExitOnError)
	fset.Usage = usage(fset, getParamsHelp)
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		return xerrors.New("get-params requires exactly one path argument")
	}
	path := fset.Arg(0)

	id, err := h5core.Open(path, 0, h5core.DefaultCreateParamsID())
	if err != nil {
		return xerrors.Errorf("Open: %w", err)
	}
	defer h5core.Close(id)

	paramsID, err := h5core.GetCreateParams(id)
	if err != nil {
		return xerrors.Errorf("GetCreateParams: %w", err)
	}
	params, err := h5core.ResolveCreateParams(paramsID)
	if err != nil {
		return xerrors.Errorf("ResolveCreateParams: %w", err)
	}

	fmt.Printf("offset_size=%d length_size=%d sym_leaf_k=%d btree_internal_k=%d userblock_size=%d\n",
		params.OffsetSize, params.LengthSize, params.SymLeafK, params.BtreeInternalK, params.UserblockSize)
	return nil
}
