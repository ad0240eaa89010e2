// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/Fantom-foundation/txexec/fees"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
)

func TestNewTransaction_RecoversSenderAndCopiesFields(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	signer := types.LatestSignerForChainID(big.NewInt(1))
	to := gethcommon.Address{0x12}
	signed, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    4,
		GasPrice: big.NewInt(3),
		Gas:      50_000,
		To:       &to,
		Value:    big.NewInt(7),
		Data:     []byte{1, 2},
	}), signer, key)
	if err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}

	tx, err := NewTransaction(signed, signer)
	if err != nil {
		t.Fatalf("failed to convert transaction: %v", err)
	}
	if want := common.Address(crypto.PubkeyToAddress(key.PublicKey)); tx.Sender != want {
		t.Errorf("unexpected sender: got %v, wanted %v", tx.Sender, want)
	}
	if tx.Nonce != 4 || tx.GasLimit != 50_000 || tx.GasPrice != amount.New(3) || tx.Value != amount.New(7) {
		t.Errorf("unexpected transaction fields: %+v", tx)
	}
	if tx.To == nil || *tx.To != common.Address(to) || tx.IsCreation() {
		t.Errorf("unexpected recipient: %v", tx.To)
	}
	if !bytes.Equal(tx.Data, []byte{1, 2}) {
		t.Errorf("unexpected data: %v", tx.Data)
	}
	if tx.Hash != common.Hash(signed.Hash()) {
		t.Errorf("unexpected hash: %v", tx.Hash)
	}
}

func TestNewTransaction_ContractCreationHasNoRecipient(t *testing.T) {
	key, _ := crypto.GenerateKey()
	signer := types.LatestSignerForChainID(big.NewInt(1))
	signed, err := types.SignTx(types.NewTx(&types.LegacyTx{Gas: 60_000, GasPrice: big.NewInt(1)}), signer, key)
	if err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}
	tx, err := NewTransaction(signed, signer)
	if err != nil {
		t.Fatalf("failed to convert transaction: %v", err)
	}
	if !tx.IsCreation() {
		t.Errorf("transaction should be a contract creation")
	}
}

func TestNewTransaction_UnsignedTransactionsAreRejected(t *testing.T) {
	signer := types.LatestSignerForChainID(big.NewInt(1))
	unsigned := types.NewTx(&types.LegacyTx{Gas: 21_000, GasPrice: big.NewInt(1)})
	if _, err := NewTransaction(unsigned, signer); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := NewTransaction(nil, signer); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTransaction_DerivedValues(t *testing.T) {
	tx := newTestTransaction(0, 100_000, 2)
	tx.Value = amount.New(5)
	tx.Data = []byte{0, 1}
	cost, err := tx.UpfrontCost()
	if err != nil || cost != amount.New(200_005) {
		t.Errorf("unexpected upfront cost: %v, %v", cost, err)
	}
	gas, err := tx.IntrinsicGas(fees.RulesFor(params.AllEthashProtocolChanges, 0))
	if err != nil || gas != 21_000+4+16 {
		t.Errorf("unexpected intrinsic gas: %d, %v", gas, err)
	}
}
