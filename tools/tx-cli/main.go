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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Run with `go run ./tools/tx-cli`

func main() {
	app := &cli.App{
		Name:      "Transaction Execution Toolbox",
		HelpName:  "txexec",
		Usage:     "A set of utilities to fund accounts and run transactions on a state DB directory",
		Copyright: "(c) 2023 Fantom Foundation",
		Flags: []cli.Flag{
			&verbosityFlag,
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			&getInfoCommand,
			&fundCommand,
			&transferCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
