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
)

// AddressFromNumber creates an address whose leading bytes encode the given number.
func AddressFromNumber(num int) (address Address) {
	addr := binary.BigEndian.AppendUint32([]byte{}, uint32(num))
	copy(address[:], addr)
	return
}

// KeyFromNumber creates a key whose trailing bytes encode the given number.
func KeyFromNumber(num int) (key Key) {
	binary.BigEndian.PutUint32(key[28:], uint32(num))
	return
}

// ValueFromNumber creates a value whose trailing bytes encode the given number.
func ValueFromNumber(num int) (value Value) {
	binary.BigEndian.PutUint32(value[28:], uint32(num))
	return
}
