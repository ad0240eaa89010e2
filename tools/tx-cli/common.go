// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"os"

	"github.com/Fantom-foundation/txexec/state"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: int(log.LvlInfo),
	}
	dbDirectoryFlag = cli.StringFlag{
		Name:     "dir",
		Usage:    "the targeted state directory",
		Required: true,
	}
	variantFlag = cli.StringFlag{
		Name:  "variant",
		Usage: "the state implementation to be used",
		Value: string(state.GoLevelDb),
	}
)

func setupLogging(ctx *cli.Context) error {
	lvl := log.Lvl(ctx.Int(verbosityFlag.Name))
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat(false))))
	return nil
}

// open opens the account store of the state in the directory selected on the command line.
func open(ctx *cli.Context) (state.AccountStore, error) {
	dir := ctx.String(dbDirectoryFlag.Name)
	variant := state.Variant(ctx.String(variantFlag.Name))
	log.Info("Opening state", "dir", dir, "variant", variant)
	backend, err := state.NewState(state.Parameters{
		Variant:   variant,
		Directory: dir,
	})
	if err != nil {
		return nil, err
	}
	return state.NewAccountStore(backend), nil
}

// closeStore flushes and closes the store, merging failures into the given error.
func closeStore(store state.AccountStore, err *error) {
	log.Info("Closing state")
	*err = errors.Join(*err, store.Flush(), store.Close())
}
