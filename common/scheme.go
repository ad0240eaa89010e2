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

import "fmt"

// TableSpace divide key-value storage into spaces by adding a prefix to the key.
type TableSpace byte

const (
	// AccountStoreKey is a tablespace for account records
	AccountStoreKey TableSpace = 'A'
	// CodeStoreKey is a tablespace for contract codes
	CodeStoreKey TableSpace = 'C'
	// SlotStoreKey is a tablespace for storage slot values
	SlotStoreKey TableSpace = 'S'
	// TxStoreKey is a tablespace for raw transactions
	TxStoreKey TableSpace = 'T'
	// ReceiptStoreKey is a tablespace for transaction receipts
	ReceiptStoreKey TableSpace = 'R'
)

// DbKey is a table space prefix followed by up to 52 bytes, enough for an
// address and a slot key.
type DbKey struct {
	data [1 + 20 + 32]byte
	size int
}

func (d DbKey) ToBytes() []byte {
	return d.data[:d.size]
}

// ToDBKey converts the concatenation of the given parts to a key of this table space.
func (t TableSpace) ToDBKey(parts ...[]byte) DbKey {
	var dbKey DbKey
	dbKey.data[0] = byte(t)
	dbKey.size = 1
	for _, part := range parts {
		if n := copy(dbKey.data[dbKey.size:], part); n < len(part) {
			panic(fmt.Sprintf("input key does not fit into dbkey: %d > %d", dbKey.size+len(part), len(dbKey.data)))
		}
		dbKey.size += len(part)
	}
	return dbKey
}
