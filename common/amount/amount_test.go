// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package amount

import (
	"math/big"
	"testing"
)

func TestAmount_NewOrdersWordsBigEndian(t *testing.T) {
	if got, want := New(1, 2), (Amount{[4]uint64{2, 1, 0, 0}}); got != want {
		t.Errorf("wrong result, got %v, want %v", got, want)
	}
	if got := New(); !got.IsZero() {
		t.Errorf("amount without arguments should be zero, got %v", got)
	}
}

func TestAmount_NewPanicsOnTooManyArguments(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("New() did not panic")
		}
	}()
	New(1, 2, 3, 4, 5)
}

func TestAmount_NewFromBigIntRejectsOutOfRangeValues(t *testing.T) {
	if got, err := NewFromBigInt(big.NewInt(100)); err != nil || got != New(100) {
		t.Errorf("unexpected conversion result %v, err %v", got, err)
	}
	if got, err := NewFromBigInt(nil); err != nil || !got.IsZero() {
		t.Errorf("nil should convert to zero, got %v, err %v", got, err)
	}
	if _, err := NewFromBigInt(big.NewInt(-1)); err == nil {
		t.Errorf("negative amount should not be allowed")
	}
	if _, err := NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 256)); err == nil {
		t.Errorf("amount with more than 256 bits should not be allowed")
	}
}

func TestAmount_NewFromStringAcceptsDecimalAndHex(t *testing.T) {
	tests := map[string]Amount{
		"0":                        New(),
		"1000":                     New(1000),
		"0x10":                     New(16),
		"0x1" + "0000000000000000": New(1, 0),
	}
	for input, want := range tests {
		got, err := NewFromString(input)
		if err != nil {
			t.Errorf("failed to parse %v: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("wrong amount for %v: got %v, wanted %v", input, got, want)
		}
	}
	for _, input := range []string{"", "abc", "-1"} {
		if _, err := NewFromString(input); err == nil {
			t.Errorf("parsing %q should fail", input)
		}
	}
}

func TestAmount_StringIsDecimal(t *testing.T) {
	if got, want := New(1, 0).String(), "18446744073709551616"; got != want {
		t.Errorf("wrong string: got %v, wanted %v", got, want)
	}
	if got, want := Max().String(), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)).String(); got != want {
		t.Errorf("wrong string: got %v, wanted %v", got, want)
	}
}

func TestAmount_Cmp(t *testing.T) {
	if New(1).Cmp(New(2)) != -1 || New(2).Cmp(New(1)) != 1 || New(2).Cmp(New(2)) != 0 {
		t.Errorf("unexpected comparison results")
	}
}

func TestAmount_AddOverflow(t *testing.T) {
	res, overflow := AddOverflow(New(1), New(1))
	if overflow || res != New(2) {
		t.Errorf("unexpected result %v, overflow %t", res, overflow)
	}
	if _, overflow = AddOverflow(New(1), Max()); !overflow {
		t.Errorf("overflow should happen")
	}
}

func TestAmount_SubUnderflow(t *testing.T) {
	res, underflow := SubUnderflow(New(2), New(1))
	if underflow || res != New(1) {
		t.Errorf("unexpected result %v, underflow %t", res, underflow)
	}
	if _, underflow = SubUnderflow(New(1), New(2)); !underflow {
		t.Errorf("underflow should happen")
	}
}

func TestAmount_MulOverflow(t *testing.T) {
	res, overflow := MulOverflow(New(100), New(3))
	if overflow || res != New(300) {
		t.Errorf("unexpected result %v, overflow %t", res, overflow)
	}
	if _, overflow = MulOverflow(Max(), New(2)); !overflow {
		t.Errorf("overflow should happen")
	}
	if res, overflow = MulOverflow(Max(), New()); overflow || !res.IsZero() {
		t.Errorf("multiplication with zero should be zero, got %v, overflow %t", res, overflow)
	}
}

func TestAmount_WrappingOperations(t *testing.T) {
	if got := Add(Max(), New(1)); !got.IsZero() {
		t.Errorf("wrapping addition should produce zero, got %v", got)
	}
	if got := Sub(New(), New(1)); got != Max() {
		t.Errorf("wrapping subtraction should produce max, got %v", got)
	}
}

func TestAmount_Conversions(t *testing.T) {
	a := New(100)
	if got := a.ToBig(); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("wrong big.Int: got %v", got)
	}
	if a.Uint64() != 100 {
		t.Errorf("wrong uint64: got %d", a.Uint64())
	}
	if got := New(1, 7).Uint64(); got != 7 {
		t.Errorf("only the lowest word should be returned, got %d", got)
	}
	bytes := a.Bytes32()
	if bytes[31] != 100 || bytes[30] != 0 {
		t.Errorf("unexpected byte representation: %v", bytes)
	}
}
