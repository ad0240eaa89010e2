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
	"testing"
)

func TestAddress_CompareOrdersLexicographically(t *testing.T) {
	a := Address{0x01}
	b := Address{0x02}
	if a.Compare(&b) >= 0 {
		t.Errorf("%v should be less than %v", a, b)
	}
	if b.Compare(&a) <= 0 {
		t.Errorf("%v should be greater than %v", b, a)
	}
	if a.Compare(&a) != 0 {
		t.Errorf("%v should be equal to itself", a)
	}
}

func TestAddress_StringIsHexEncoded(t *testing.T) {
	addr := Address{0xab, 0xcd}
	want := "0xabcd000000000000000000000000000000000000"
	if got := addr.String(); got != want {
		t.Errorf("unexpected string, wanted %v, got %v", want, got)
	}
}

func TestAddressFromHex_ParsesWithAndWithoutPrefix(t *testing.T) {
	want := Address{0xab, 0xcd}
	for _, input := range []string{
		"0xabcd000000000000000000000000000000000000",
		"abcd000000000000000000000000000000000000",
	} {
		got, err := AddressFromHex(input)
		if err != nil {
			t.Fatalf("failed to parse %v: %v", input, err)
		}
		if got != want {
			t.Errorf("unexpected address, wanted %v, got %v", want, got)
		}
	}
}

func TestAddressFromHex_RejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "0x12", "zz", "0xabcd00000000000000000000000000000000000000"} {
		if _, err := AddressFromHex(input); err == nil {
			t.Errorf("parsing %q should have failed", input)
		}
	}
}
