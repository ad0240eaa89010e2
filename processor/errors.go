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

import "github.com/Fantom-foundation/txexec/common"

const (
	// ErrInvalidInput is returned if a transaction is missing or malformed.
	ErrInvalidInput = common.ConstError("invalid input")
	// ErrGasLimitExceeded is returned if the gas limit of a transaction exceeds the block gas limit.
	ErrGasLimitExceeded = common.ConstError("transaction gas limit exceeds block gas limit")
	// ErrInsufficientIntrinsicGas is returned if the gas limit does not cover the intrinsic gas.
	ErrInsufficientIntrinsicGas = common.ConstError("gas limit below intrinsic gas")
	// ErrInsufficientFunds is returned if the sender can not cover the upfront cost.
	ErrInsufficientFunds = common.ConstError("insufficient funds for upfront cost")
	// ErrNonceMismatch is returned if the sender nonce differs from the transaction nonce.
	ErrNonceMismatch = common.ConstError("nonce mismatch")
	// ErrArithmeticOverflow is returned if a balance, nonce, or gas computation
	// leaves its value range.
	ErrArithmeticOverflow = common.ConstError("arithmetic overflow")
	// ErrGasUsedExceedsLimit is returned if the message executor reports more
	// gas used than it was given.
	ErrGasUsedExceedsLimit = common.ConstError("gas used exceeds gas limit")
	// ErrBlockGasLimitReached is returned if a transaction does not fit into
	// the remaining gas of its block.
	ErrBlockGasLimitReached = common.ConstError("block gas limit reached")
)
