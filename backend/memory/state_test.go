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
	"bytes"
	"testing"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
)

var (
	address1 = common.Address{0x01}
	address2 = common.Address{0x02}
	key1     = common.Key{0x01}
	val1     = common.Value{0x01}
)

func TestState_UnknownAccountsAreNotFound(t *testing.T) {
	s := NewState()
	account, found, err := s.GetAccount(address1)
	if err != nil {
		t.Fatalf("failed to get account: %v", err)
	}
	if found || account != (common.Account{}) {
		t.Errorf("unexpected account: %v, found %t", account, found)
	}
}

func TestState_ApplyIsVisibleThroughGetters(t *testing.T) {
	s := NewState()
	update := common.Update{}
	update.AppendAccountUpdate(address1, common.Account{Nonce: 1, Balance: amount.New(10)})
	update.AppendCodeUpdate(address1, []byte{1, 2, 3})
	update.AppendSlotUpdate(address1, key1, val1)
	if err := s.Apply(update); err != nil {
		t.Fatalf("failed to apply update: %v", err)
	}

	account, found, _ := s.GetAccount(address1)
	if !found || account.Nonce != 1 || account.Balance != amount.New(10) {
		t.Errorf("unexpected account: %v, found %t", account, found)
	}
	if code, _ := s.GetCode(address1); !bytes.Equal(code, []byte{1, 2, 3}) {
		t.Errorf("unexpected code: %v", code)
	}
	if value, _ := s.GetStorage(address1, key1); value != val1 {
		t.Errorf("unexpected slot value: %v", value)
	}
}

func TestState_DeleteAccountClearsCodeAndStorage(t *testing.T) {
	s := NewState()
	s.SetAccount(address1, common.Account{Nonce: 1})
	s.SetCode(address1, []byte{1})
	s.SetStorage(address1, key1, val1)

	if err := s.DeleteAccount(address1); err != nil {
		t.Fatalf("failed to delete account: %v", err)
	}
	if _, found, _ := s.GetAccount(address1); found {
		t.Errorf("account should be gone")
	}
	if code, _ := s.GetCode(address1); len(code) != 0 {
		t.Errorf("code should be gone, got %v", code)
	}
	if value, _ := s.GetStorage(address1, key1); value != (common.Value{}) {
		t.Errorf("storage should be gone, got %v", value)
	}
}

func TestState_ZeroValuesRemoveSlots(t *testing.T) {
	s := NewState()
	s.SetAccount(address1, common.Account{Nonce: 1})
	before, _ := s.GetHash()
	s.SetStorage(address1, key1, val1)
	s.SetStorage(address1, key1, common.Value{})
	after, _ := s.GetHash()
	if before != after {
		t.Errorf("zeroed slot should not affect hash")
	}
	if len(s.storage) != 0 {
		t.Errorf("zeroed slot is still kept: %v", s.storage)
	}
}

func TestState_HashDependsOnContentNotInsertionOrder(t *testing.T) {
	a := NewState()
	a.SetAccount(address1, common.Account{Nonce: 1})
	a.SetAccount(address2, common.Account{Nonce: 2})

	b := NewState()
	b.SetAccount(address2, common.Account{Nonce: 2})
	b.SetAccount(address1, common.Account{Nonce: 1})

	hashA, _ := a.GetHash()
	hashB, _ := b.GetHash()
	if hashA != hashB {
		t.Errorf("hashes differ: %v vs %v", hashA, hashB)
	}

	b.SetStorage(address1, key1, val1)
	if hashC, _ := b.GetHash(); hashC == hashA {
		t.Errorf("storage change not reflected in hash")
	}
}
