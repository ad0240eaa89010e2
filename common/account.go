// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"github.com/Fantom-foundation/txexec/common/amount"
)

// Account is the record kept for every address in the state. Accounts are
// values: they are replaced as a whole on each update, never modified in place
// while shared.
type Account struct {
	Nonce       uint64
	Balance     amount.Amount
	CodeHash    Hash
	StorageRoot Hash
}

// HasCode is true if the account's code hash refers to a non-empty code.
func (a *Account) HasCode() bool {
	return a.CodeHash != (Hash{}) && a.CodeHash != EmptyCodeHash
}

// IsEmpty follows the EIP-161 definition: zero nonce, zero balance, and no code.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && !a.HasCode()
}
