// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fees

import (
	"fmt"
	"math"
	"math/big"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/ethereum/go-ethereum/params"
)

const (
	// ErrGasUintOverflow is returned if a gas computation exceeds the range of uint64.
	ErrGasUintOverflow = common.ConstError("gas uint64 overflow")
	// ErrAmountOverflow is returned if a cost exceeds the range of 256-bit amounts.
	ErrAmountOverflow = common.ConstError("amount overflow")
)

// Rules summarizes the hard-fork dependent features relevant for fee
// computations and account cleanup of a single block.
type Rules struct {
	IsHomestead bool
	IsIstanbul  bool // EIP-2028 reduces the price of non-zero data bytes
	IsEIP158    bool // touched empty accounts are removed
}

// RulesFor evaluates the given chain configuration at the given block number.
func RulesFor(config *params.ChainConfig, number uint64) Rules {
	num := new(big.Int).SetUint64(number)
	return Rules{
		IsHomestead: config.IsHomestead(num),
		IsIstanbul:  config.IsIstanbul(num),
		IsEIP158:    config.IsEIP158(num),
	}
}

// IntrinsicGas computes the gas charged for a transaction before any code is
// executed: a base price depending on the transaction kind and a price for
// each byte of its data.
func IntrinsicGas(data []byte, isCreation bool, rules Rules) (uint64, error) {
	gas := params.TxGas
	if isCreation && rules.IsHomestead {
		gas = params.TxGasContractCreation
	}
	if len(data) == 0 {
		return gas, nil
	}

	var nonZero uint64
	for _, b := range data {
		if b != 0 {
			nonZero++
		}
	}
	nonZeroGas := params.TxDataNonZeroGasFrontier
	if rules.IsIstanbul {
		nonZeroGas = params.TxDataNonZeroGasEIP2028
	}
	if (math.MaxUint64-gas)/nonZeroGas < nonZero {
		return 0, ErrGasUintOverflow
	}
	gas += nonZero * nonZeroGas

	zero := uint64(len(data)) - nonZero
	if (math.MaxUint64-gas)/params.TxDataZeroGas < zero {
		return 0, ErrGasUintOverflow
	}
	gas += zero * params.TxDataZeroGas
	return gas, nil
}

// GasCost computes gas * gasPrice.
func GasCost(gas uint64, gasPrice amount.Amount) (amount.Amount, error) {
	cost, overflow := amount.MulOverflow(amount.New(gas), gasPrice)
	if overflow {
		return amount.Amount{}, fmt.Errorf("%w: %d * %v", ErrAmountOverflow, gas, gasPrice)
	}
	return cost, nil
}

// UpfrontCost computes gasLimit * gasPrice + value, the amount a sender needs
// to hold for a transaction to be admitted.
func UpfrontCost(gasLimit uint64, gasPrice, value amount.Amount) (amount.Amount, error) {
	cost, err := GasCost(gasLimit, gasPrice)
	if err != nil {
		return amount.Amount{}, err
	}
	total, overflow := amount.AddOverflow(cost, value)
	if overflow {
		return amount.Amount{}, fmt.Errorf("%w: %v + %v", ErrAmountOverflow, cost, value)
	}
	return total, nil
}

// CappedRefund returns the part of the raw refund counter that is granted for
// a transaction that used the given amount of gas. The refund is limited to
// gasUsed / params.RefundQuotient.
func CappedRefund(gasUsed, rawRefund uint64) uint64 {
	limit := gasUsed / params.RefundQuotient
	if rawRefund < limit {
		return rawRefund
	}
	return limit
}
