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

	"github.com/Fantom-foundation/txexec/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

type evmStore struct {
	db *leveldb.DB
	mu sync.Mutex
}

// Parameters struct defining configuration parameters for EvmStore instances.
type Parameters struct {
	Directory string
}

// NewEvmStore provide a new EvmStore instance
func NewEvmStore(params Parameters) (EvmStore, error) {
	db, err := leveldb.OpenFile(params.Directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open evm store in %s: %w", params.Directory, err)
	}
	return &evmStore{db: db}, nil
}

// SetTx stores a raw, encoded transaction.
func (s *evmStore) SetTx(txHash common.Hash, tx []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Put(common.TxStoreKey.ToDBKey(txHash[:]).ToBytes(), tx, nil)
}

// GetTx returns a stored transaction.
// Returns nil,nil if the tx is not present.
func (s *evmStore) GetTx(txHash common.Hash) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(common.TxStoreKey.ToDBKey(txHash[:]))
}

// SetReceipt stores the receipt of a transaction.
func (s *evmStore) SetReceipt(txHash common.Hash, receipt *Receipt) error {
	data, err := rlp.EncodeToBytes(receipt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt of %v: %w", txHash, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Put(common.ReceiptStoreKey.ToDBKey(txHash[:]).ToBytes(), data, nil)
}

// GetReceipt loads the receipt of a transaction.
// Returns nil,nil if no receipt for the given transaction is stored.
func (s *evmStore) GetReceipt(txHash common.Hash) (*Receipt, error) {
	s.mu.Lock()
	data, err := s.get(common.ReceiptStoreKey.ToDBKey(txHash[:]))
	s.mu.Unlock()
	if data == nil || err != nil {
		return nil, err
	}
	receipt := &Receipt{}
	if err := rlp.DecodeBytes(data, receipt); err != nil {
		return nil, fmt.Errorf("failed to decode receipt of %v: %w", txHash, err)
	}
	return receipt, nil
}

func (s *evmStore) get(key common.DbKey) ([]byte, error) {
	data, err := s.db.Get(key.ToBytes(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

// Flush is a no-op, all writes are persisted through the LevelDB journal.
func (s *evmStore) Flush() error {
	return nil
}

func (s *evmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
