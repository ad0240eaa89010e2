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

//go:generate mockgen -source observer.go -destination mock_observer.go -package processor

// Observer gets notified about the progress of transaction processing.
// Notifications are delivered synchronously in the order observers have been
// subscribed. Observers must not modify the state.
type Observer interface {
	// BeforeTx is called after the checkpoint of a transaction has been
	// opened and before it is validated.
	BeforeTx(tx *Transaction)
	// AfterTx is called once the effects of a transaction have been committed.
	// Within a block, events are held back until the whole block is committed
	// and dropped if the block gets reverted.
	AfterTx(event AfterTxEvent)
}

// AfterTxEvent summarizes a processed transaction.
type AfterTxEvent struct {
	Transaction *Transaction
	Receipt     *Receipt
}
