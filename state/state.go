// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

//go:generate mockgen -source state.go -destination mock_state.go -package state State

import (
	"github.com/Fantom-foundation/txexec/common"
)

// State is the persistent backend an AccountStore reads committed accounts
// from and writes the effects of committed transactions to.
type State interface {
	// GetAccount obtains the record of the given account and whether it exists.
	GetAccount(address common.Address) (common.Account, bool, error)

	// GetStorage returns the value of a storage slot of the given account.
	GetStorage(address common.Address, key common.Key) (common.Value, error)

	// GetCode returns code of the contract for the input contract address.
	GetCode(address common.Address) ([]byte, error)

	// Apply writes the given normalized update to the state.
	Apply(update common.Update) error

	// GetHash computes a hash of the state content.
	GetHash() (common.Hash, error)

	// Flush writes all buffered data to the underlying storage.
	Flush() error

	// Close flushes and releases all resources held by the state.
	Close() error
}
