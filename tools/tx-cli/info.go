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

	"github.com/Fantom-foundation/txexec/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var addressFlag = cli.StringSliceFlag{
	Name:  "address",
	Usage: "accounts to be printed, as hex strings",
}

var getInfoCommand = cli.Command{
	Action: getInfo,
	Name:   "info",
	Usage:  "prints the state hash and the selected accounts of a state directory",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&variantFlag,
		&addressFlag,
	},
}

func getInfo(ctx *cli.Context) (err error) {
	store, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store, &err)

	log.Debug("Computing state hash")
	hash, err := store.GetHash()
	if err != nil {
		return err
	}
	fmt.Printf("State hash: %v\n", hash)

	for _, hex := range ctx.StringSlice(addressFlag.Name) {
		address, err := common.AddressFromHex(hex)
		if err != nil {
			return err
		}
		account, err := store.GetAccount(address)
		if err != nil {
			return err
		}
		code, err := store.GetCode(address)
		if err != nil {
			return err
		}
		fmt.Printf("Account %v: nonce=%d balance=%v code=%d bytes\n", address, account.Nonce, account.Balance, len(code))
	}
	return nil
}
