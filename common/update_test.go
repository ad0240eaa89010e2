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
	"errors"
	"reflect"
	"testing"

	"github.com/Fantom-foundation/txexec/common/amount"
)

func TestUpdate_EmptyUpdateCheckReportsNoErrors(t *testing.T) {
	update := Update{}
	if !update.IsEmpty() {
		t.Errorf("default update should be empty")
	}
	if err := update.Check(); err != nil {
		t.Errorf("Empty update should not report an error, but got: %v", err)
	}
}

func TestUpdate_DeletedAccountsAreSortedAndMadeUniqueByNormalizer(t *testing.T) {
	addr1 := Address{0x01}
	addr2 := Address{0x02}
	addr3 := Address{0x03}

	update := Update{}
	update.AppendDeleteAccount(addr2)
	update.AppendDeleteAccount(addr1)
	update.AppendDeleteAccount(addr3)
	update.AppendDeleteAccount(addr1)

	if err := update.Normalize(); err != nil {
		t.Errorf("failed to normalize update: %v", err)
	}

	want := Update{}
	want.AppendDeleteAccount(addr1)
	want.AppendDeleteAccount(addr2)
	want.AppendDeleteAccount(addr3)

	if !reflect.DeepEqual(want, update) {
		t.Errorf("failed to normalize delete-account list, wanted %v, got %v", want.DeletedAccounts, update.DeletedAccounts)
	}
}

func TestUpdate_ConflictingAccountUpdatesAreDetected(t *testing.T) {
	addr := Address{0x01}
	update := Update{}
	update.AppendAccountUpdate(addr, Account{Nonce: 1})
	update.AppendAccountUpdate(addr, Account{Nonce: 2})
	if err := update.Normalize(); err == nil {
		t.Errorf("conflicting account updates should be reported")
	}
}

func TestUpdate_SlotsAreSortedByAddressAndKey(t *testing.T) {
	addr1 := Address{0x01}
	addr2 := Address{0x02}

	update := Update{}
	update.AppendSlotUpdate(addr2, Key{0x01}, Value{0x01})
	update.AppendSlotUpdate(addr1, Key{0x02}, Value{0x02})
	update.AppendSlotUpdate(addr1, Key{0x01}, Value{0x03})

	if err := update.Normalize(); err != nil {
		t.Fatalf("failed to normalize update: %v", err)
	}
	want := []SlotUpdate{
		{addr1, Key{0x01}, Value{0x03}},
		{addr1, Key{0x02}, Value{0x02}},
		{addr2, Key{0x01}, Value{0x01}},
	}
	if !reflect.DeepEqual(want, update.Slots) {
		t.Errorf("unexpected slot order, wanted %v, got %v", want, update.Slots)
	}
}

func TestUpdate_UnsortedListsAreReportedByCheck(t *testing.T) {
	update := Update{}
	update.AppendCodeUpdate(Address{0x02}, []byte{1})
	update.AppendCodeUpdate(Address{0x01}, []byte{2})
	if err := update.Check(); err == nil {
		t.Errorf("unsorted code updates should be reported")
	}
}

type recordingTarget struct {
	calls []string
	err   error
}

func (r *recordingTarget) DeleteAccount(Address) error {
	r.calls = append(r.calls, "delete")
	return r.err
}

func (r *recordingTarget) SetAccount(Address, Account) error {
	r.calls = append(r.calls, "account")
	return r.err
}

func (r *recordingTarget) SetCode(Address, []byte) error {
	r.calls = append(r.calls, "code")
	return r.err
}

func (r *recordingTarget) SetStorage(Address, Key, Value) error {
	r.calls = append(r.calls, "slot")
	return r.err
}

func TestUpdate_ApplyToFollowsStandardOrder(t *testing.T) {
	addr := Address{0x01}
	update := Update{}
	update.AppendSlotUpdate(addr, Key{}, Value{1})
	update.AppendCodeUpdate(addr, []byte{1})
	update.AppendAccountUpdate(addr, Account{Balance: amount.New(1)})
	update.AppendDeleteAccount(addr)

	target := &recordingTarget{}
	if err := update.ApplyTo(target); err != nil {
		t.Fatalf("failed to apply update: %v", err)
	}
	want := []string{"delete", "account", "code", "slot"}
	if !reflect.DeepEqual(want, target.calls) {
		t.Errorf("unexpected apply order, wanted %v, got %v", want, target.calls)
	}
}

func TestUpdate_ApplyToStopsAtFirstError(t *testing.T) {
	injected := errors.New("injected")
	update := Update{}
	update.AppendDeleteAccount(Address{0x01})
	update.AppendAccountUpdate(Address{0x01}, Account{})

	target := &recordingTarget{err: injected}
	if err := update.ApplyTo(target); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
	if len(target.calls) != 1 {
		t.Errorf("apply should have stopped after the first failure, got calls %v", target.calls)
	}
}
