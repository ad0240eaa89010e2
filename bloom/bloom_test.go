// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bloom

import (
	"testing"

	"github.com/Fantom-foundation/txexec/common"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	log1 = common.Log{Address: common.Address{1}, Topics: []common.Hash{{0xa}, {0xb}}}
	log2 = common.Log{Address: common.Address{2}, Topics: []common.Hash{{0xc}}}
	log3 = common.Log{Address: common.Address{3}}
)

func TestBuild_EmptyLogsProduceEmptyBloom(t *testing.T) {
	if got := Build(nil); got != (types.Bloom{}) {
		t.Errorf("bloom of no logs is not empty: %v", got)
	}
}

func TestBuild_ContainsAddressesAndTopics(t *testing.T) {
	bloom := Build([]common.Log{log1, log2})
	for _, data := range [][]byte{log1.Address[:], log1.Topics[0][:], log1.Topics[1][:], log2.Address[:], log2.Topics[0][:]} {
		if !Contains(bloom, data) {
			t.Errorf("bloom does not contain %x", data)
		}
	}
	if Contains(bloom, log3.Address[:]) {
		t.Errorf("bloom contains address that was never added")
	}
}

func TestBuild_IsIndependentOfLogOrder(t *testing.T) {
	orders := [][]common.Log{
		{log1, log2, log3},
		{log3, log2, log1},
		{log2, log1, log3},
	}
	want := Build(orders[0])
	for _, logs := range orders[1:] {
		if got := Build(logs); got != want {
			t.Errorf("bloom depends on log order")
		}
	}
}

func TestBuild_MatchesGoEthereumReceiptBloom(t *testing.T) {
	logs := []*types.Log{
		{Address: gethcommon.Address(log1.Address), Topics: []gethcommon.Hash{gethcommon.Hash(log1.Topics[0]), gethcommon.Hash(log1.Topics[1])}},
		{Address: gethcommon.Address(log2.Address), Topics: []gethcommon.Hash{gethcommon.Hash(log2.Topics[0])}},
	}
	want := types.CreateBloom(types.Receipts{{Logs: logs}})
	if got := Build([]common.Log{log1, log2}); got != want {
		t.Errorf("bloom differs from reference implementation")
	}
}

func TestMerge_IsUnionOfFilters(t *testing.T) {
	a := Build([]common.Log{log1})
	b := Build([]common.Log{log2, log3})
	if got, want := Merge(a, b), Build([]common.Log{log1, log2, log3}); got != want {
		t.Errorf("merged bloom differs from bloom of all logs")
	}
	if got := Merge(b, a); got != Merge(a, b) {
		t.Errorf("merge is not commutative")
	}
	if got := Merge(); got != (types.Bloom{}) {
		t.Errorf("merge of nothing is not empty")
	}
}
