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

//go:generate mockgen -source executor.go -destination mock_executor.go -package processor

import "github.com/Fantom-foundation/txexec/state"

// MessageExecutor runs the message of a transaction, for instance by
// interpreting contract code. All state modifications are to be conducted
// through the given store. A returned error aborts the transaction.
type MessageExecutor interface {
	Execute(store state.AccountStore, message Message, context TxContext, block Block) (ExecutionResult, error)
}
