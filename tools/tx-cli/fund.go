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
	"fmt"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	accountFlag = cli.StringFlag{
		Name:     "account",
		Usage:    "the account to be funded, as hex string",
		Required: true,
	}
	balanceFlag = cli.StringFlag{
		Name:     "balance",
		Usage:    "the new balance of the account in wei",
		Required: true,
	}
)

var fundCommand = cli.Command{
	Action: fund,
	Name:   "fund",
	Usage:  "sets the balance of an account",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&variantFlag,
		&accountFlag,
		&balanceFlag,
	},
}

func fund(ctx *cli.Context) (err error) {
	address, err := common.AddressFromHex(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}
	balance, err := amount.NewFromString(ctx.String(balanceFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}

	store, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store, &err)

	store.Checkpoint()
	account, err := store.GetAccount(address)
	if err == nil {
		account.Balance = balance
		err = store.PutAccount(address, account)
	}
	if err != nil {
		return errors.Join(err, store.Revert())
	}
	if err := store.Commit(); err != nil {
		return err
	}
	log.Info("Funded account", "address", address, "balance", balance)
	return nil
}
