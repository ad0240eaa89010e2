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
	"math/big"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/evmstore"
	"github.com/Fantom-foundation/txexec/processor"
	"github.com/Fantom-foundation/txexec/transfer"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/urfave/cli/v2"
)

var (
	keyFlag = cli.StringFlag{
		Name:     "key",
		Usage:    "hex encoded private key of the sender",
		Required: true,
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "the recipient as hex string, a contract creation if omitted",
	}
	valueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "the transferred value in wei",
		Value: "0",
	}
	gasFlag = cli.Uint64Flag{
		Name:  "gas",
		Usage: "the gas limit of the transaction",
		Value: params.TxGas,
	}
	gasPriceFlag = cli.StringFlag{
		Name:  "gas-price",
		Usage: "the gas price in wei",
		Value: "1",
	}
	blockFlag = cli.Uint64Flag{
		Name:  "block",
		Usage: "the number of the block the transaction is executed in",
	}
	receiptsFlag = cli.StringFlag{
		Name:  "receipts",
		Usage: "directory of a store the transaction and its receipt get indexed in",
	}
)

var transferCommand = cli.Command{
	Action: runTransfer,
	Name:   "transfer",
	Usage:  "signs a value transfer and executes it on a state directory",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&variantFlag,
		&keyFlag,
		&toFlag,
		&valueFlag,
		&gasFlag,
		&gasPriceFlag,
		&blockFlag,
		&receiptsFlag,
	},
}

func runTransfer(ctx *cli.Context) (err error) {
	key, err := crypto.HexToECDSA(ctx.String(keyFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	var to *gethcommon.Address
	if hex := ctx.String(toFlag.Name); hex != "" {
		address, err := common.AddressFromHex(hex)
		if err != nil {
			return err
		}
		addr := gethcommon.Address(address)
		to = &addr
	}
	value, ok := new(big.Int).SetString(ctx.String(valueFlag.Name), 0)
	if !ok {
		return fmt.Errorf("invalid value %q", ctx.String(valueFlag.Name))
	}
	gasPrice, ok := new(big.Int).SetString(ctx.String(gasPriceFlag.Name), 0)
	if !ok {
		return fmt.Errorf("invalid gas price %q", ctx.String(gasPriceFlag.Name))
	}

	store, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store, &err)

	sender, err := store.GetAccount(common.Address(crypto.PubkeyToAddress(key.PublicKey)))
	if err != nil {
		return err
	}

	chainConfig := params.AllEthashProtocolChanges
	signer := types.LatestSignerForChainID(chainConfig.ChainID)
	signed, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    sender.Nonce,
		GasPrice: gasPrice,
		Gas:      ctx.Uint64(gasFlag.Name),
		To:       to,
		Value:    value,
	}), signer, key)
	if err != nil {
		return err
	}
	tx, err := processor.NewTransaction(signed, signer)
	if err != nil {
		return err
	}

	p := processor.NewProcessor(store, transfer.NewExecutor(), processor.Config{ChainConfig: chainConfig})

	var receipts evmstore.EvmStore
	var indexer *evmstore.Indexer
	if dir := ctx.String(receiptsFlag.Name); dir != "" {
		receipts, err = evmstore.NewEvmStore(evmstore.Parameters{Directory: dir})
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, receipts.Close())
		}()
		indexer = evmstore.NewIndexer(receipts)
		p.Subscribe(indexer)
	}

	block := &processor.Block{
		Number:   ctx.Uint64(blockFlag.Name),
		GasLimit: processor.DefaultBlockGasLimit,
	}
	receipt, err := p.Run(tx, block, processor.Options{})
	if err != nil {
		return err
	}
	log.Info("Executed transaction", "hash", tx.Hash, "succeeded", receipt.Succeeded, "gas", receipt.GasUsed)
	printReceipt(tx, receipt)

	if receipts != nil {
		raw, err := signed.MarshalBinary()
		if err != nil {
			return err
		}
		if err := receipts.SetTx(tx.Hash, raw); err != nil {
			return err
		}
		return indexer.Check()
	}
	return nil
}

func printReceipt(tx *processor.Transaction, receipt *processor.Receipt) {
	fmt.Printf("Transaction: %v\n", tx.Hash)
	fmt.Printf("Sender:      %v\n", tx.Sender)
	fmt.Printf("Succeeded:   %t\n", receipt.Succeeded)
	fmt.Printf("Gas used:    %d\n", receipt.GasUsed)
	fmt.Printf("Gas refund:  %d\n", receipt.GasRefund)
	fmt.Printf("Spent:       %v\n", receipt.AmountSpent)
	if receipt.CreatedAddress != nil {
		fmt.Printf("Created:     %v\n", *receipt.CreatedAddress)
	}
}
