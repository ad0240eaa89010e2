// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"sort"

	"github.com/Fantom-foundation/txexec/common"
	"golang.org/x/exp/maps"
)

// State is an in-memory state backend keeping all accounts, codes and slots
// in maps. It is intended for tests and short-lived tooling runs.
type State struct {
	accounts map[common.Address]common.Account
	codes    map[common.Address][]byte
	storage  map[common.Address]map[common.Key]common.Value
}

func NewState() *State {
	return &State{
		accounts: map[common.Address]common.Account{},
		codes:    map[common.Address][]byte{},
		storage:  map[common.Address]map[common.Key]common.Value{},
	}
}

func (s *State) GetAccount(address common.Address) (common.Account, bool, error) {
	account, found := s.accounts[address]
	return account, found, nil
}

func (s *State) GetStorage(address common.Address, key common.Key) (common.Value, error) {
	return s.storage[address][key], nil
}

func (s *State) GetCode(address common.Address) ([]byte, error) {
	return s.codes[address], nil
}

func (s *State) Apply(update common.Update) error {
	return update.ApplyTo(s)
}

func (s *State) DeleteAccount(address common.Address) error {
	delete(s.accounts, address)
	delete(s.codes, address)
	delete(s.storage, address)
	return nil
}

func (s *State) SetAccount(address common.Address, account common.Account) error {
	s.accounts[address] = account
	return nil
}

func (s *State) SetCode(address common.Address, code []byte) error {
	if len(code) == 0 {
		delete(s.codes, address)
		return nil
	}
	s.codes[address] = append([]byte(nil), code...)
	return nil
}

func (s *State) SetStorage(address common.Address, key common.Key, value common.Value) error {
	slots, found := s.storage[address]
	if value == (common.Value{}) {
		if found {
			delete(slots, key)
			if len(slots) == 0 {
				delete(s.storage, address)
			}
		}
		return nil
	}
	if !found {
		slots = map[common.Key]common.Value{}
		s.storage[address] = slots
	}
	slots[key] = value
	return nil
}

func (s *State) GetHash() (common.Hash, error) {
	addresses := maps.Keys(s.accounts)
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].Compare(&addresses[j]) < 0 })

	hasher := common.NewStateHasher()
	for _, address := range addresses {
		hasher.AddAccount(address, s.accounts[address])
		hasher.AddCode(s.codes[address])
		slots := s.storage[address]
		keys := maps.Keys(slots)
		sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(&keys[j]) < 0 })
		for _, key := range keys {
			hasher.AddSlot(key, slots[key])
		}
	}
	return hasher.Sum(), nil
}

func (s *State) Flush() error {
	return nil
}

func (s *State) Close() error {
	return nil
}
