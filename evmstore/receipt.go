// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmstore

import (
	"math/big"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/processor"
)

// Receipt is the persisted summary of a processed transaction.
type Receipt struct {
	Succeeded       bool
	GasUsed         uint64
	AmountSpent     *big.Int
	GasRefund       uint64
	Bloom           []byte
	Logs            []Log
	ContractAddress []byte // empty if no contract was created
}

type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// NewReceipt converts the receipt produced by the processor.
func NewReceipt(receipt *processor.Receipt) *Receipt {
	res := &Receipt{
		Succeeded:   receipt.Succeeded,
		GasUsed:     receipt.GasUsed,
		AmountSpent: receipt.AmountSpent.ToBig(),
		GasRefund:   receipt.GasRefund,
		Bloom:       receipt.Bloom.Bytes(),
		Logs:        make([]Log, 0, len(receipt.Logs)),
	}
	for _, log := range receipt.Logs {
		res.Logs = append(res.Logs, Log{
			Address: log.Address,
			Topics:  log.Topics,
			Data:    log.Data,
		})
	}
	if receipt.CreatedAddress != nil {
		res.ContractAddress = receipt.CreatedAddress[:]
	}
	return res
}
