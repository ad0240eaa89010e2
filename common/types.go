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
	"encoding/hex"
	"fmt"
)

// Address is the 20-byte identifier of an account.
type Address [20]byte

// Key is the 32-byte identifier of a storage slot within an account.
type Key [32]byte

// Value is the 32-byte content of a storage slot.
type Value [32]byte

// Hash is a 32-byte keccak-256 digest.
type Hash [32]byte

func (a *Address) Compare(b *Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (k *Key) Compare(b *Key) int {
	return bytes.Compare(k[:], b[:])
}

func (k Key) String() string {
	return "0x" + hex.EncodeToString(k[:])
}

func (v Value) String() string {
	return "0x" + hex.EncodeToString(v[:])
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// AddressFromHex parses a 0x-prefixed or plain hex string into an address.
func AddressFromHex(s string) (Address, error) {
	var res Address
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return res, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(data) != len(res) {
		return res, fmt.Errorf("invalid address %q: expected %d bytes, got %d", s, len(res), len(data))
	}
	copy(res[:], data)
	return res, nil
}
