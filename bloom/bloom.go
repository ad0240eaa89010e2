// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bloom builds the 2048-bit log bloom filters of receipts and blocks.
package bloom

import (
	"github.com/Fantom-foundation/txexec/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Build computes the bloom filter of the given logs. Each log contributes its
// address and all its topics.
func Build(logs []common.Log) types.Bloom {
	var bloom types.Bloom
	for _, log := range logs {
		bloom.Add(log.Address[:])
		for _, topic := range log.Topics {
			bloom.Add(topic[:])
		}
	}
	return bloom
}

// Merge combines the given filters into one matching everything any of them
// matches.
func Merge(blooms ...types.Bloom) types.Bloom {
	var res types.Bloom
	for _, bloom := range blooms {
		for i := range res {
			res[i] |= bloom[i]
		}
	}
	return res
}

// Contains is true if the given address or topic may have been added to the
// filter. False positives are possible, false negatives are not.
func Contains(bloom types.Bloom, data []byte) bool {
	return types.BloomLookup(bloom, bytesBacked(data))
}

type bytesBacked []byte

func (b bytesBacked) Bytes() []byte {
	return b
}
