// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	"fmt"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/Fantom-foundation/txexec/fees"
	"github.com/ethereum/go-ethereum/core/types"
)

// Transaction is a validated, sender-resolved transaction ready for processing.
type Transaction struct {
	Nonce    uint64
	GasLimit uint64
	GasPrice amount.Amount
	To       *common.Address // nil for contract creations
	Value    amount.Amount
	Data     []byte
	Sender   common.Address
	Hash     common.Hash
}

// NewTransaction converts a signed transaction, recovering its sender using
// the given signer.
func NewTransaction(tx *types.Transaction, signer types.Signer) (*Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: missing transaction", ErrInvalidInput)
	}
	sender, err := types.Sender(signer, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to recover sender: %v", ErrInvalidInput, err)
	}
	gasPrice, err := amount.NewFromBigInt(tx.GasPrice())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid gas price: %v", ErrInvalidInput, err)
	}
	value, err := amount.NewFromBigInt(tx.Value())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid value: %v", ErrInvalidInput, err)
	}
	var to *common.Address
	if tx.To() != nil {
		addr := common.Address(*tx.To())
		to = &addr
	}
	return &Transaction{
		Nonce:    tx.Nonce(),
		GasLimit: tx.Gas(),
		GasPrice: gasPrice,
		To:       to,
		Value:    value,
		Data:     tx.Data(),
		Sender:   common.Address(sender),
		Hash:     common.Hash(tx.Hash()),
	}, nil
}

// IsCreation is true if the transaction creates a contract.
func (t *Transaction) IsCreation() bool {
	return t.To == nil
}

// UpfrontCost is the amount the sender needs to hold for the transaction to
// be admitted.
func (t *Transaction) UpfrontCost() (amount.Amount, error) {
	return fees.UpfrontCost(t.GasLimit, t.GasPrice, t.Value)
}

// IntrinsicGas is the gas charged for the transaction before any code runs.
func (t *Transaction) IntrinsicGas(rules fees.Rules) (uint64, error) {
	return fees.IntrinsicGas(t.Data, t.IsCreation(), rules)
}
