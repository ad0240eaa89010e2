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
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// StateHasher computes a content hash of a state. Backends feed it their
// accounts in ascending address order, each one directly followed by its
// code and its non-zero slots in ascending key order. Two backends holding
// the same content thereby produce the same hash.
type StateHasher struct {
	hasher hash.Hash
	buffer []byte
}

func NewStateHasher() *StateHasher {
	return &StateHasher{
		hasher: sha3.NewLegacyKeccak256(),
		buffer: make([]byte, 0, 128),
	}
}

// AddAccount adds the record of the given account.
func (h *StateHasher) AddAccount(addr Address, account Account) {
	h.buffer = h.buffer[:0]
	h.buffer = append(h.buffer, 'A')
	h.buffer = append(h.buffer, addr[:]...)
	h.buffer = binary.BigEndian.AppendUint64(h.buffer, account.Nonce)
	balance := account.Balance.Bytes32()
	h.buffer = append(h.buffer, balance[:]...)
	h.buffer = append(h.buffer, account.CodeHash[:]...)
	h.buffer = append(h.buffer, account.StorageRoot[:]...)
	h.hasher.Write(h.buffer)
}

// AddCode adds the code of the last added account. Empty codes are skipped.
func (h *StateHasher) AddCode(code []byte) {
	if len(code) == 0 {
		return
	}
	h.buffer = h.buffer[:0]
	h.buffer = append(h.buffer, 'C')
	h.buffer = binary.BigEndian.AppendUint32(h.buffer, uint32(len(code)))
	h.hasher.Write(h.buffer)
	h.hasher.Write(code)
}

// AddSlot adds a storage slot of the last added account. Zero values are skipped.
func (h *StateHasher) AddSlot(key Key, value Value) {
	if value == (Value{}) {
		return
	}
	h.buffer = h.buffer[:0]
	h.buffer = append(h.buffer, 'S')
	h.buffer = append(h.buffer, key[:]...)
	h.buffer = append(h.buffer, value[:]...)
	h.hasher.Write(h.buffer)
}

// Sum returns the hash of everything added so far.
func (h *StateHasher) Sum() Hash {
	var res Hash
	copy(res[:], h.hasher.Sum(nil))
	return res
}
