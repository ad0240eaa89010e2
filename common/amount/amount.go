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
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Amount is a 256-bit unsigned integer used for balances, values and gas
// prices. Arithmetic that may leave the 256-bit range is offered in a checked
// form reporting the overflow; the wrapping forms are for callers that
// established the bounds beforehand.
type Amount struct {
	value uint256.Int
}

var maxAmount = New(^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0))

// New creates an amount from up to 4 64-bit words given in big-endian order.
// It panics if more than 4 words are given.
func New(words ...uint64) Amount {
	if len(words) > 4 {
		panic("too many arguments")
	}
	res := Amount{}
	for i, word := range words {
		res.value[len(words)-1-i] = word
	}
	return res
}

// NewFromBigInt converts a big.Int, nil is treated as zero. Negative values and
// values exceeding 256 bits are rejected.
func NewFromBigInt(b *big.Int) (Amount, error) {
	res := Amount{}
	if b == nil {
		return res, nil
	}
	if b.Sign() < 0 {
		return Amount{}, fmt.Errorf("negative amount %v", b)
	}
	if res.value.SetFromBig(b) {
		return Amount{}, fmt.Errorf("amount %v exceeds 256 bits", b)
	}
	return res, nil
}

// NewFromString parses a decimal or 0x-prefixed hexadecimal number.
func NewFromString(s string) (Amount, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Amount{}, fmt.Errorf("invalid number %q", s)
	}
	return NewFromBigInt(b)
}

// Max returns the largest representable amount.
func Max() Amount {
	return maxAmount
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Uint64 returns the lowest 64 bits of the amount.
func (a Amount) Uint64() uint64 {
	return a.value.Uint64()
}

func (a Amount) ToBig() *big.Int {
	return a.value.ToBig()
}

// Bytes32 returns the big-endian 32 byte representation.
func (a Amount) Bytes32() [32]byte {
	return a.value.Bytes32()
}

// String renders the amount in decimal.
func (a Amount) String() string {
	return a.value.ToBig().String()
}

// Cmp returns -1, 0, or +1 if a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(&b.value)
}

func Add(a, b Amount) Amount {
	res := Amount{}
	res.value.Add(&a.value, &b.value)
	return res
}

func Sub(a, b Amount) Amount {
	res := Amount{}
	res.value.Sub(&a.value, &b.value)
	return res
}

// AddOverflow returns a+b and whether the sum exceeded 256 bits.
func AddOverflow(a, b Amount) (Amount, bool) {
	res := Amount{}
	_, overflow := res.value.AddOverflow(&a.value, &b.value)
	return res, overflow
}

// SubUnderflow returns a-b and whether b was larger than a.
func SubUnderflow(a, b Amount) (Amount, bool) {
	res := Amount{}
	_, underflow := res.value.SubOverflow(&a.value, &b.value)
	return res, underflow
}

// MulOverflow returns a*b and whether the product exceeded 256 bits.
func MulOverflow(a, b Amount) (Amount, bool) {
	res := Amount{}
	_, overflow := res.value.MulOverflow(&a.value, &b.value)
	return res, overflow
}
