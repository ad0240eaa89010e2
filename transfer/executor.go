// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package transfer provides a message executor supporting plain value
// transfers and the deployment of code without running it.
package transfer

import (
	"errors"

	"github.com/Fantom-foundation/txexec/common"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/Fantom-foundation/txexec/processor"
	"github.com/Fantom-foundation/txexec/state"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

// Executor moves the value of messages from the caller to the recipient. It
// does not interpret code: calls of accounts holding code fail, and contract
// creations install the message data as the new contract's code.
//
// Failing messages consume all their gas and leave no effects, successful
// ones consume no gas.
type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

func (e *Executor) Execute(store state.AccountStore, message processor.Message, _ processor.TxContext, _ processor.Block) (processor.ExecutionResult, error) {
	store.Checkpoint()
	result, err := e.execute(store, message)
	if err != nil || !result.Succeeded {
		if revertErr := store.Revert(); revertErr != nil {
			return processor.ExecutionResult{}, errors.Join(err, revertErr)
		}
		return result, err
	}
	return result, store.Commit()
}

func (e *Executor) execute(store state.AccountStore, message processor.Message) (processor.ExecutionResult, error) {
	caller, err := store.GetAccount(message.Caller)
	if err != nil {
		return processor.ExecutionResult{}, err
	}
	if caller.Balance.Cmp(message.Value) < 0 {
		log.Trace("Insufficient balance for transfer", "caller", message.Caller, "value", message.Value)
		return failed(message), nil
	}

	if message.To == nil {
		return e.create(store, message, caller)
	}

	target, err := store.GetAccount(*message.To)
	if err != nil {
		return processor.ExecutionResult{}, err
	}
	if target.HasCode() {
		log.Trace("Unable to call contract", "address", *message.To)
		return failed(message), nil
	}
	ok, err := transfer(store, message.Caller, *message.To, message.Value)
	if err != nil || !ok {
		return failed(message), err
	}
	return processor.ExecutionResult{Succeeded: true}, nil
}

func (e *Executor) create(store state.AccountStore, message processor.Message, caller common.Account) (processor.ExecutionResult, error) {
	// The processor increments the nonce before the message is executed.
	nonce := caller.Nonce
	if nonce > 0 {
		nonce--
	}
	address := common.Address(crypto.CreateAddress(gethcommon.Address(message.Caller), nonce))

	exists, err := store.Exists(address)
	if err != nil {
		return processor.ExecutionResult{}, err
	}
	target := common.Account{}
	if exists {
		if target, err = store.GetAccount(address); err != nil {
			return processor.ExecutionResult{}, err
		}
		if target.Nonce != 0 || target.HasCode() {
			log.Trace("Contract address collision", "address", address)
			return failed(message), nil
		}
	}

	target.Nonce = 1
	if err := store.PutAccount(address, target); err != nil {
		return processor.ExecutionResult{}, err
	}
	ok, err := transfer(store, message.Caller, address, message.Value)
	if err != nil || !ok {
		return failed(message), err
	}
	if err := store.PutCode(address, message.Data); err != nil {
		return processor.ExecutionResult{}, err
	}
	return processor.ExecutionResult{
		CreatedAddress: &address,
		Succeeded:      true,
	}, nil
}

// transfer moves value between accounts. It reports false if the recipient's
// balance would overflow, in which case nothing is changed.
func transfer(store state.AccountStore, from, to common.Address, value amount.Amount) (bool, error) {
	sender, err := store.GetAccount(from)
	if err != nil {
		return false, err
	}
	sender.Balance = amount.Sub(sender.Balance, value)
	recipient := sender
	if from != to {
		if recipient, err = store.GetAccount(to); err != nil {
			return false, err
		}
	}
	balance, overflow := amount.AddOverflow(recipient.Balance, value)
	if overflow {
		return false, nil
	}
	recipient.Balance = balance
	if from != to {
		if err := store.PutAccount(from, sender); err != nil {
			return false, err
		}
	}
	return true, store.PutAccount(to, recipient)
}

func failed(message processor.Message) processor.ExecutionResult {
	return processor.ExecutionResult{GasUsed: message.GasLimit}
}
