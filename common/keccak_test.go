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
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestKeccak256_MatchesReferenceImplementation(t *testing.T) {
	tests := [][]byte{
		nil,
		{},
		{1, 2, 3},
		make([]byte, 128),
		make([]byte, 1024),
	}
	for _, test := range tests {
		hasher := sha3.NewLegacyKeccak256()
		hasher.Write(test)
		var want Hash
		copy(want[:], hasher.Sum(nil))
		if got := Keccak256(test); want != got {
			t.Errorf("unexpected hash for %v, wanted %v, got %v", test, want, got)
		}
	}
}

func TestKeccak256_EmptyCodeHashIsWellKnownConstant(t *testing.T) {
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := hex.EncodeToString(EmptyCodeHash[:]); got != want {
		t.Errorf("unexpected empty code hash, wanted %v, got %v", want, got)
	}
}

func TestKeccak256ForAddress_HashesAddressBytes(t *testing.T) {
	addr := AddressFromNumber(42)
	if want, got := Keccak256(addr[:]), Keccak256ForAddress(addr); want != got {
		t.Errorf("unexpected address hash, wanted %v, got %v", want, got)
	}
}

func BenchmarkKeccak256(b *testing.B) {
	data := make([]byte, 1024)
	for i := 0; i < b.N; i++ {
		Keccak256(data)
	}
}
