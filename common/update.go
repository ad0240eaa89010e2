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
	"bytes"
	"fmt"
	"slices"
)

// Update summarizes the effective changes of a committed state transition
// that are to be written to a state backend. It combines account deletions,
// account record updates, code updates, and slot updates.
//
// An example use of an update would look like this:
//
//	// Create an update.
//	update := Update{}
//	// Fill in changes.
//	update.AppendDeleteAccount(..)
//	update.AppendAccountUpdate(..)
//	...
//	// Sort the lists and remove duplicates, then check the result.
//	err := update.Normalize()
//
// Valid instances can then be forwarded to a State backend.
type Update struct {
	DeletedAccounts []Address
	Accounts        []AccountUpdate
	Codes           []CodeUpdate
	Slots           []SlotUpdate
}

// IsEmpty is true if there is no change covered by this update.
func (u *Update) IsEmpty() bool {
	return len(u.DeletedAccounts) == 0 &&
		len(u.Accounts) == 0 &&
		len(u.Codes) == 0 &&
		len(u.Slots) == 0
}

// AppendDeleteAccount registers an account to be deleted. Delete operations
// are the first to be carried out, leading to a clearing of the account's
// storage and code. Subsequent account, code, or slot updates for the same
// address take effect after the deletion.
func (u *Update) AppendDeleteAccount(addr Address) {
	u.DeletedAccounts = append(u.DeletedAccounts, addr)
}

// AppendAccountUpdate registers the new record of an account.
func (u *Update) AppendAccountUpdate(addr Address, account Account) {
	u.Accounts = append(u.Accounts, AccountUpdate{addr, account})
}

// AppendCodeUpdate registers a code update to be conducted.
func (u *Update) AppendCodeUpdate(addr Address, code []byte) {
	u.Codes = append(u.Codes, CodeUpdate{addr, code})
}

// AppendSlotUpdate registers a slot value update to be conducted.
func (u *Update) AppendSlotUpdate(addr Address, key Key, value Value) {
	u.Slots = append(u.Slots, SlotUpdate{addr, key, value})
}

// Normalize sorts all updates and removes duplicates.
func (u *Update) Normalize() error {
	slices.SortStableFunc(u.DeletedAccounts, compareAddresses)
	u.DeletedAccounts = slices.Compact(u.DeletedAccounts)
	slices.SortStableFunc(u.Accounts, compareAccountUpdates)
	u.Accounts = slices.Compact(u.Accounts)
	slices.SortStableFunc(u.Codes, compareCodeUpdates)
	u.Codes = slices.CompactFunc(u.Codes, func(a, b CodeUpdate) bool {
		return a.Address == b.Address && bytes.Equal(a.Code, b.Code)
	})
	slices.SortStableFunc(u.Slots, compareSlotUpdates)
	u.Slots = slices.Compact(u.Slots)
	return u.Check()
}

// Check verifies that all lists are strictly ordered. After Normalize, an
// address listed twice with different content is reported here.
func (u *Update) Check() error {
	if !strictlyOrdered(u.DeletedAccounts, compareAddresses) {
		return fmt.Errorf("deleted accounts are not in order or unique")
	}
	if !strictlyOrdered(u.Accounts, compareAccountUpdates) {
		return fmt.Errorf("account updates are not in order or unique")
	}
	if !strictlyOrdered(u.Codes, compareCodeUpdates) {
		return fmt.Errorf("code updates are not in order or unique")
	}
	if !strictlyOrdered(u.Slots, compareSlotUpdates) {
		return fmt.Errorf("storage updates are not in order or unique")
	}
	return nil
}

// ApplyTo applies this update to the provided target in a standardized
// order: delete accounts, set accounts, set codes, and set storage values.
// It is intended to be utilized by state backends to simplify the
// processing of updates.
func (u *Update) ApplyTo(s UpdateTarget) error {
	for _, addr := range u.DeletedAccounts {
		if err := s.DeleteAccount(addr); err != nil {
			return err
		}
	}
	for _, change := range u.Accounts {
		if err := s.SetAccount(change.Address, change.Account); err != nil {
			return err
		}
	}
	for _, change := range u.Codes {
		if err := s.SetCode(change.Address, change.Code); err != nil {
			return err
		}
	}
	for _, change := range u.Slots {
		if err := s.SetStorage(change.Address, change.Key, change.Value); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTarget is the set of individual mutation functions a backend needs
// to offer to be the target of Update.ApplyTo.
type UpdateTarget interface {
	// DeleteAccount removes the account record, its code, and all its storage.
	DeleteAccount(address Address) error

	// SetAccount replaces the record of the given account.
	SetAccount(address Address, account Account) error

	// SetCode updates code of the contract for the input contract address.
	SetCode(address Address, code []byte) error

	// SetStorage updates the slot of the given account; a zero value removes it.
	SetStorage(address Address, key Key, value Value) error
}

type AccountUpdate struct {
	Address Address
	Account Account
}

type CodeUpdate struct {
	Address Address
	Code    []byte
}

type SlotUpdate struct {
	Address Address
	Key     Key
	Value   Value
}

func compareAddresses(a, b Address) int {
	return bytes.Compare(a[:], b[:])
}

func compareAccountUpdates(a, b AccountUpdate) int {
	return compareAddresses(a.Address, b.Address)
}

func compareCodeUpdates(a, b CodeUpdate) int {
	return compareAddresses(a.Address, b.Address)
}

func compareSlotUpdates(a, b SlotUpdate) int {
	if res := compareAddresses(a.Address, b.Address); res != 0 {
		return res
	}
	return bytes.Compare(a.Key[:], b.Key[:])
}

func strictlyOrdered[T any](list []T, compare func(a, b T) int) bool {
	for i := 1; i < len(list); i++ {
		if compare(list[i-1], list[i]) >= 0 {
			return false
		}
	}
	return true
}
