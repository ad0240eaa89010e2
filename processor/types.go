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
	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
)

// DefaultBlockGasLimit is the gas limit of the block used for transactions
// run without a block.
const DefaultBlockGasLimit = 0xffffffffffffff

// Block is the context a transaction is executed in.
type Block struct {
	Number   uint64
	Time     uint64
	Coinbase common.Address
	GasLimit uint64
}

func defaultBlock() *Block {
	return &Block{GasLimit: DefaultBlockGasLimit}
}

// Options relax the validation of transactions, for instance for simulations.
type Options struct {
	// SkipNonce disables the nonce check in SkipBalance mode.
	SkipNonce bool
	// SkipBalance disables the check of the sender's funds. Senders unable
	// to cover the upfront cost get their balance raised to that cost. In
	// this mode the nonce is checked unless SkipNonce is set. Since the
	// raised balance is not taken from any account, the total amount of
	// funds is not conserved in this mode.
	SkipBalance bool
	// SkipBlockGasLimitValidation allows transactions with a gas limit
	// beyond the block gas limit.
	SkipBlockGasLimitValidation bool
}

// Config is the configuration of a Processor.
type Config struct {
	// ChainConfig defines the hard-forks active at each block. If nil, all
	// forks are considered active from the genesis block on.
	ChainConfig *params.ChainConfig
}

// Message is the top-level call or contract creation derived from a transaction.
type Message struct {
	Caller   common.Address
	To       *common.Address // nil for contract creations
	GasLimit uint64
	Value    amount.Amount
	Data     []byte
}

// TxContext holds the transaction-wide properties of an execution.
type TxContext struct {
	GasPrice amount.Amount
	Origin   common.Address
}

// ExecutionResult summarizes the execution of a message.
type ExecutionResult struct {
	// GasUsed is the gas consumed by the message, excluding intrinsic gas.
	GasUsed uint64
	// GasRefund is the raw refund counter accumulated during the execution.
	GasRefund      uint64
	Logs           []common.Log
	ReturnData     []byte
	SelfDestructs  []common.Address
	CreatedAddress *common.Address
	Succeeded      bool
}

// Receipt is the outcome of a processed transaction.
type Receipt struct {
	// GasUsed is the gas charged for the transaction after refunds.
	GasUsed     uint64
	AmountSpent amount.Amount
	// GasRefund is the refund granted after applying the refund cap.
	GasRefund      uint64
	Bloom          types.Bloom
	Logs           []common.Log
	SelfDestructs  []common.Address
	ReturnData     []byte
	CreatedAddress *common.Address
	Succeeded      bool
}

// BlockResult is the outcome of processing the transactions of a block.
type BlockResult struct {
	Receipts []*Receipt
	// CumulativeGasUsed lists the gas used by all transactions up to and
	// including the transaction of the respective receipt.
	CumulativeGasUsed []uint64
	GasUsed           uint64
	Bloom             types.Bloom
}
