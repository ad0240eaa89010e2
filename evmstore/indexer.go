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
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/txexec/processor"
	"github.com/ethereum/go-ethereum/log"
)

// Indexer is a processor observer recording the receipts of all committed
// transactions in an EvmStore.
type Indexer struct {
	store  EvmStore
	mu     sync.Mutex
	errors []error
}

func NewIndexer(store EvmStore) *Indexer {
	return &Indexer{store: store}
}

func (i *Indexer) BeforeTx(*processor.Transaction) {}

func (i *Indexer) AfterTx(event processor.AfterTxEvent) {
	hash := event.Transaction.Hash
	if err := i.store.SetReceipt(hash, NewReceipt(event.Receipt)); err != nil {
		log.Error("Failed to index receipt", "hash", hash, "err", err)
		i.mu.Lock()
		i.errors = append(i.errors, fmt.Errorf("failed to index receipt of %v: %w", hash, err))
		i.mu.Unlock()
		return
	}
	log.Trace("Indexed receipt", "hash", hash)
}

// Check reports all errors encountered while indexing receipts.
func (i *Indexer) Check() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return errors.Join(i.errors...)
}
