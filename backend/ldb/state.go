// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// State is a state backend persisting accounts, codes and storage slots in a
// LevelDB instance. Each kind of data lives in its own table space.
type State struct {
	db *leveldb.DB
}

// Updates are synced to disk before Apply returns.
var applyOptions = &opt.WriteOptions{Sync: true}

// accountRecord is the RLP encoding of an account.
type accountRecord struct {
	Nonce       uint64
	Balance     *big.Int
	CodeHash    common.Hash
	StorageRoot common.Hash
}

// NewState opens or creates a LevelDB state in the given directory.
func NewState(directory string) (*State, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB in %s: %w", directory, err)
	}
	return &State{db: db}, nil
}

func (s *State) GetAccount(address common.Address) (common.Account, bool, error) {
	data, err := s.db.Get(common.AccountStoreKey.ToDBKey(address[:]).ToBytes(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return common.Account{}, false, nil
	}
	if err != nil {
		return common.Account{}, false, err
	}
	account, err := decodeAccount(data)
	if err != nil {
		return common.Account{}, false, fmt.Errorf("invalid record of account %v: %w", address, err)
	}
	return account, true, nil
}

func (s *State) GetStorage(address common.Address, key common.Key) (common.Value, error) {
	var value common.Value
	data, err := s.db.Get(common.SlotStoreKey.ToDBKey(address[:], key[:]).ToBytes(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return value, nil
	}
	if err != nil {
		return value, err
	}
	copy(value[:], data)
	return value, nil
}

func (s *State) GetCode(address common.Address) ([]byte, error) {
	code, err := s.db.Get(common.CodeStoreKey.ToDBKey(address[:]).ToBytes(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return code, err
}

// Apply writes the given update to the database in a single batch.
func (s *State) Apply(update common.Update) error {
	batch := &batchTarget{db: s.db, batch: new(leveldb.Batch)}
	if err := update.ApplyTo(batch); err != nil {
		return err
	}
	return s.db.Write(batch.batch, applyOptions)
}

// GetHash iterates accounts in key order, thus in address order.
func (s *State) GetHash() (common.Hash, error) {
	hasher := common.NewStateHasher()
	accounts := s.db.NewIterator(util.BytesPrefix([]byte{byte(common.AccountStoreKey)}), nil)
	defer accounts.Release()
	for accounts.Next() {
		var address common.Address
		copy(address[:], accounts.Key()[1:])
		account, err := decodeAccount(accounts.Value())
		if err != nil {
			return common.Hash{}, fmt.Errorf("invalid record of account %v: %w", address, err)
		}
		hasher.AddAccount(address, account)

		code, err := s.GetCode(address)
		if err != nil {
			return common.Hash{}, err
		}
		hasher.AddCode(code)

		if err := s.hashSlots(hasher, address); err != nil {
			return common.Hash{}, err
		}
	}
	if err := accounts.Error(); err != nil {
		return common.Hash{}, err
	}
	return hasher.Sum(), nil
}

func (s *State) hashSlots(hasher *common.StateHasher, address common.Address) error {
	slots := s.db.NewIterator(util.BytesPrefix(common.SlotStoreKey.ToDBKey(address[:]).ToBytes()), nil)
	defer slots.Release()
	for slots.Next() {
		var key common.Key
		var value common.Value
		copy(key[:], slots.Key()[1+len(address):])
		copy(value[:], slots.Value())
		hasher.AddSlot(key, value)
	}
	return slots.Error()
}

// Flush is a no-op since every update is written synchronously.
func (s *State) Flush() error {
	return nil
}

func (s *State) Close() error {
	return s.db.Close()
}

// batchTarget collects the changes of an update in a LevelDB batch.
type batchTarget struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *batchTarget) DeleteAccount(address common.Address) error {
	b.batch.Delete(common.AccountStoreKey.ToDBKey(address[:]).ToBytes())
	b.batch.Delete(common.CodeStoreKey.ToDBKey(address[:]).ToBytes())
	slots := b.db.NewIterator(util.BytesPrefix(common.SlotStoreKey.ToDBKey(address[:]).ToBytes()), nil)
	defer slots.Release()
	for slots.Next() {
		b.batch.Delete(slots.Key())
	}
	return slots.Error()
}

func (b *batchTarget) SetAccount(address common.Address, account common.Account) error {
	data, err := encodeAccount(account)
	if err != nil {
		return err
	}
	b.batch.Put(common.AccountStoreKey.ToDBKey(address[:]).ToBytes(), data)
	return nil
}

func (b *batchTarget) SetCode(address common.Address, code []byte) error {
	key := common.CodeStoreKey.ToDBKey(address[:]).ToBytes()
	if len(code) == 0 {
		b.batch.Delete(key)
	} else {
		b.batch.Put(key, code)
	}
	return nil
}

func (b *batchTarget) SetStorage(address common.Address, key common.Key, value common.Value) error {
	dbKey := common.SlotStoreKey.ToDBKey(address[:], key[:]).ToBytes()
	if value == (common.Value{}) {
		b.batch.Delete(dbKey)
	} else {
		b.batch.Put(dbKey, value[:])
	}
	return nil
}

func encodeAccount(account common.Account) ([]byte, error) {
	return rlp.EncodeToBytes(&accountRecord{
		Nonce:       account.Nonce,
		Balance:     account.Balance.ToBig(),
		CodeHash:    account.CodeHash,
		StorageRoot: account.StorageRoot,
	})
}

func decodeAccount(data []byte) (common.Account, error) {
	var record accountRecord
	if err := rlp.DecodeBytes(data, &record); err != nil {
		return common.Account{}, err
	}
	balance, err := amount.NewFromBigInt(record.Balance)
	if err != nil {
		return common.Account{}, err
	}
	return common.Account{
		Nonce:       record.Nonce,
		Balance:     balance,
		CodeHash:    record.CodeHash,
		StorageRoot: record.StorageRoot,
	}, nil
}
