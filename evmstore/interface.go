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

import "github.com/Fantom-foundation/txexec/common"

// EvmStore keeps the transactions and receipts of processed transactions.
type EvmStore interface {
	// SetTx stores a raw, encoded transaction.
	SetTx(txHash common.Hash, tx []byte) error

	// GetTx returns a stored transaction.
	// Returns nil,nil if the tx is not present.
	GetTx(txHash common.Hash) ([]byte, error)

	// SetReceipt stores the receipt of a transaction.
	SetReceipt(txHash common.Hash, receipt *Receipt) error

	// GetReceipt loads the receipt of a transaction.
	// Returns nil,nil if no receipt for the given transaction is stored.
	GetReceipt(txHash common.Hash) (*Receipt, error)

	// Flush writes all committed content to disk.
	Flush() error

	// Close flushes the store and closes it.
	Close() error
}
