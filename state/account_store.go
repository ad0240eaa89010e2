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

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/Fantom-foundation/txexec/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AccountStore is the transactional view on the world state used while
// processing transactions. All modifications are kept in memory until the
// outermost checkpoint is committed, at which point the net effect is written
// to the backend State as a single update.
//
// Checkpoints are stacked: Revert undoes all modifications since the most
// recent Checkpoint, Commit merges them into the enclosing checkpoint.
type AccountStore interface {
	// Checkpoint opens a new level of modifications.
	Checkpoint()
	// Commit closes the innermost level, keeping its modifications. Closing
	// the outermost level persists all pending modifications.
	Commit() error
	// Revert closes the innermost level, discarding its modifications.
	Revert() error

	// Exists is true if the account has a record.
	Exists(address common.Address) (bool, error)
	// GetAccount returns the record of the given account, or an empty record
	// if the account does not exist.
	GetAccount(address common.Address) (common.Account, error)
	// PutAccount replaces the record of the given account, creating it if
	// needed, and marks the account as touched.
	PutAccount(address common.Address, account common.Account) error
	// DeleteAccount removes the account including its code and storage.
	DeleteAccount(address common.Address) error
	// Touch marks the account as touched without modifying it.
	Touch(address common.Address)

	GetCode(address common.Address) ([]byte, error)
	// PutCode sets the code of an account and updates its code hash.
	PutCode(address common.Address, code []byte) error
	GetStorage(address common.Address, key common.Key) (common.Value, error)
	PutStorage(address common.Address, key common.Key, value common.Value) error
	// GetOriginalStorage returns the value a slot had when it was first
	// queried through this method since the last ClearOriginalStorageCache.
	GetOriginalStorage(address common.Address, key common.Key) (common.Value, error)
	ClearOriginalStorageCache()

	// CleanupTouchedAccounts deletes all touched accounts that are empty and
	// resets the set of touched accounts.
	CleanupTouchedAccounts() error

	// GetHash returns the hash of the committed state.
	GetHash() (common.Hash, error)
	Flush() error
	Close() error
}

const ErrNoCheckpoint = common.ConstError("no open checkpoint")

type accountStore struct {
	// The underlying state committed changes are written to.
	state State

	// Transaction local caches of the accessed data.
	accounts map[common.Address]*accountValue
	codes    map[common.Address]*codeValue
	slots    map[slotId]*slotValue

	// Accounts deleted since the last commit to the state. Their code and
	// storage is considered empty, regardless of the content of the state.
	cleared map[common.Address]bool

	// Accounts touched since the last cleanup.
	touched map[common.Address]bool

	originalStorage map[slotId]common.Value

	// A list of operations undoing modifications if a revert needs to be performed.
	undo []func()

	// Positions in the undo list marking the begin of open checkpoints.
	checkpoints []int
}

type accountValue struct {
	original       common.Account
	originalExists bool
	current        common.Account
	exists         bool
}

type codeValue struct {
	original []byte
	current  []byte
}

type slotValue struct {
	original common.Value
	current  common.Value
}

type slotId struct {
	addr common.Address
	key  common.Key
}

// NewAccountStore creates an account store on top of the given state.
func NewAccountStore(state State) AccountStore {
	s := &accountStore{state: state}
	s.reset()
	return s
}

func (s *accountStore) reset() {
	s.accounts = map[common.Address]*accountValue{}
	s.codes = map[common.Address]*codeValue{}
	s.slots = map[slotId]*slotValue{}
	s.cleared = map[common.Address]bool{}
	s.touched = map[common.Address]bool{}
	s.originalStorage = map[slotId]common.Value{}
	s.undo = s.undo[:0]
}

func (s *accountStore) Checkpoint() {
	s.checkpoints = append(s.checkpoints, len(s.undo))
}

func (s *accountStore) Revert() error {
	if len(s.checkpoints) == 0 {
		return ErrNoCheckpoint
	}
	mark := s.checkpoints[len(s.checkpoints)-1]
	s.checkpoints = s.checkpoints[:len(s.checkpoints)-1]
	for len(s.undo) > mark {
		s.undo[len(s.undo)-1]()
		s.undo = s.undo[:len(s.undo)-1]
	}
	if len(s.checkpoints) == 0 {
		s.reset()
	}
	return nil
}

func (s *accountStore) Commit() error {
	if len(s.checkpoints) == 0 {
		return ErrNoCheckpoint
	}
	s.checkpoints = s.checkpoints[:len(s.checkpoints)-1]
	if len(s.checkpoints) > 0 {
		return nil
	}

	update, err := s.collectUpdate()
	s.reset()
	if err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}
	if err := s.state.Apply(update); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	return nil
}

// collectUpdate summarizes the differences between the cached data and the
// content of the state.
func (s *accountStore) collectUpdate() (common.Update, error) {
	update := common.Update{}
	for addr := range s.cleared {
		update.AppendDeleteAccount(addr)
	}
	for addr, value := range s.accounts {
		if !value.exists {
			continue
		}
		if s.cleared[addr] || !value.originalExists || value.current != value.original {
			update.AppendAccountUpdate(addr, value.current)
		}
	}
	for addr, value := range s.codes {
		base := value.original
		if s.cleared[addr] {
			base = nil
		}
		if !bytes.Equal(value.current, base) {
			update.AppendCodeUpdate(addr, value.current)
		}
	}
	for id, value := range s.slots {
		base := value.original
		if s.cleared[id.addr] {
			base = common.Value{}
		}
		if value.current != base {
			update.AppendSlotUpdate(id.addr, id.key, value.current)
		}
	}
	if err := update.Normalize(); err != nil {
		return common.Update{}, fmt.Errorf("invalid update: %w", err)
	}
	return update, nil
}

// loadAccount fetches the account into the cache. Cache entries are removed
// again by a revert of the checkpoint they were created in.
func (s *accountStore) loadAccount(addr common.Address) (*accountValue, error) {
	if value, found := s.accounts[addr]; found {
		return value, nil
	}
	account, exists, err := s.state.GetAccount(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %v: %w", addr, err)
	}
	value := &accountValue{
		original:       account,
		originalExists: exists,
		current:        account,
		exists:         exists,
	}
	s.accounts[addr] = value
	s.undo = append(s.undo, func() {
		delete(s.accounts, addr)
	})
	return value, nil
}

func (s *accountStore) loadCode(addr common.Address) (*codeValue, error) {
	if value, found := s.codes[addr]; found {
		return value, nil
	}
	value := &codeValue{}
	if !s.cleared[addr] {
		code, err := s.state.GetCode(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to load code of %v: %w", addr, err)
		}
		value.original, value.current = code, code
	}
	s.codes[addr] = value
	s.undo = append(s.undo, func() {
		delete(s.codes, addr)
	})
	return value, nil
}

func (s *accountStore) loadSlot(addr common.Address, key common.Key) (*slotValue, error) {
	id := slotId{addr, key}
	if value, found := s.slots[id]; found {
		return value, nil
	}
	value := &slotValue{}
	if !s.cleared[addr] {
		stored, err := s.state.GetStorage(addr, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load slot %v/%v: %w", addr, key, err)
		}
		value.original, value.current = stored, stored
	}
	s.slots[id] = value
	s.undo = append(s.undo, func() {
		delete(s.slots, id)
	})
	return value, nil
}

func (s *accountStore) Exists(addr common.Address) (bool, error) {
	value, err := s.loadAccount(addr)
	if err != nil {
		return false, err
	}
	return value.exists, nil
}

func (s *accountStore) GetAccount(addr common.Address) (common.Account, error) {
	value, err := s.loadAccount(addr)
	if err != nil {
		return common.Account{}, err
	}
	return value.current, nil
}

func (s *accountStore) PutAccount(addr common.Address, account common.Account) error {
	value, err := s.loadAccount(addr)
	if err != nil {
		return err
	}
	oldAccount, oldExists := value.current, value.exists
	value.current, value.exists = account, true
	s.undo = append(s.undo, func() {
		value.current, value.exists = oldAccount, oldExists
	})
	s.Touch(addr)
	return nil
}

func (s *accountStore) DeleteAccount(addr common.Address) error {
	value, err := s.loadAccount(addr)
	if err != nil {
		return err
	}
	code, err := s.loadCode(addr)
	if err != nil {
		return err
	}

	oldAccount, oldExists := value.current, value.exists
	value.current, value.exists = common.Account{}, false
	s.undo = append(s.undo, func() {
		value.current, value.exists = oldAccount, oldExists
	})

	oldCode := code.current
	code.current = nil
	s.undo = append(s.undo, func() {
		code.current = oldCode
	})

	for id, slot := range s.slots {
		if id.addr != addr || slot.current == (common.Value{}) {
			continue
		}
		slot := slot
		oldValue := slot.current
		slot.current = common.Value{}
		s.undo = append(s.undo, func() {
			slot.current = oldValue
		})
	}

	if !s.cleared[addr] {
		s.cleared[addr] = true
		s.undo = append(s.undo, func() {
			delete(s.cleared, addr)
		})
	}
	s.Touch(addr)
	return nil
}

func (s *accountStore) Touch(addr common.Address) {
	if s.touched[addr] {
		return
	}
	s.touched[addr] = true
	s.undo = append(s.undo, func() {
		delete(s.touched, addr)
	})
}

func (s *accountStore) GetCode(addr common.Address) ([]byte, error) {
	value, err := s.loadCode(addr)
	if err != nil {
		return nil, err
	}
	return value.current, nil
}

func (s *accountStore) PutCode(addr common.Address, code []byte) error {
	value, err := s.loadCode(addr)
	if err != nil {
		return err
	}
	oldCode := value.current
	value.current = slices.Clone(code)
	s.undo = append(s.undo, func() {
		value.current = oldCode
	})

	account, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	account.CodeHash = common.Keccak256(code)
	return s.PutAccount(addr, account)
}

func (s *accountStore) GetStorage(addr common.Address, key common.Key) (common.Value, error) {
	value, err := s.loadSlot(addr, key)
	if err != nil {
		return common.Value{}, err
	}
	return value.current, nil
}

func (s *accountStore) PutStorage(addr common.Address, key common.Key, value common.Value) error {
	slot, err := s.loadSlot(addr, key)
	if err != nil {
		return err
	}
	oldValue := slot.current
	slot.current = value
	s.undo = append(s.undo, func() {
		slot.current = oldValue
	})
	s.Touch(addr)
	return nil
}

func (s *accountStore) GetOriginalStorage(addr common.Address, key common.Key) (common.Value, error) {
	id := slotId{addr, key}
	if value, found := s.originalStorage[id]; found {
		return value, nil
	}
	value, err := s.GetStorage(addr, key)
	if err != nil {
		return common.Value{}, err
	}
	s.originalStorage[id] = value
	return value, nil
}

func (s *accountStore) ClearOriginalStorageCache() {
	s.originalStorage = map[slotId]common.Value{}
}

func (s *accountStore) CleanupTouchedAccounts() error {
	addresses := maps.Keys(s.touched)
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].Compare(&addresses[j]) < 0 })
	for _, addr := range addresses {
		value, err := s.loadAccount(addr)
		if err != nil {
			return err
		}
		if value.exists && value.current.IsEmpty() {
			if err := s.DeleteAccount(addr); err != nil {
				return err
			}
		}
	}
	oldTouched := s.touched
	s.touched = map[common.Address]bool{}
	s.undo = append(s.undo, func() {
		s.touched = oldTouched
	})
	return nil
}

func (s *accountStore) GetHash() (common.Hash, error) {
	return s.state.GetHash()
}

func (s *accountStore) Flush() error {
	return s.state.Flush()
}

func (s *accountStore) Close() error {
	return s.state.Close()
}
