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
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Fantom-foundation/txexec/bloom"
	"github.com/Fantom-foundation/txexec/common/amount"
	"github.com/Fantom-foundation/txexec/fees"
	"github.com/Fantom-foundation/txexec/state"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/exp/slices"
)

// Processor applies transactions to an account store. Each transaction is
// processed atomically: either all of its effects get committed, or, in case
// of an error, none of them.
//
// A Processor is not thread safe. Transactions of a store need to be
// processed one after another.
type Processor struct {
	store     state.AccountStore
	executor  MessageExecutor
	config    *params.ChainConfig
	observers []Observer
	// pending collects AfterTx events while a block is processed; nil outside of blocks.
	pending *[]AfterTxEvent
}

func NewProcessor(store state.AccountStore, executor MessageExecutor, config Config) *Processor {
	chainConfig := config.ChainConfig
	if chainConfig == nil {
		chainConfig = params.AllEthashProtocolChanges
	}
	return &Processor{
		store:    store,
		executor: executor,
		config:   chainConfig,
	}
}

// Subscribe registers an observer notified about all subsequently processed
// transactions.
func (p *Processor) Subscribe(observer Observer) {
	p.observers = append(p.observers, observer)
}

// Run processes a single transaction in the given block. If block is nil, an
// empty block with a generous gas limit is used.
func (p *Processor) Run(tx *Transaction, block *Block, opts Options) (*Receipt, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction is required", ErrInvalidInput)
	}
	if block == nil {
		block = defaultBlock()
	}
	if !opts.SkipBlockGasLimitValidation && tx.GasLimit > block.GasLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrGasLimitExceeded, tx.GasLimit, block.GasLimit)
	}

	p.store.Checkpoint()
	receipt, err := p.run(tx, block, opts)
	if err != nil {
		log.Debug("Transaction failed", "hash", tx.Hash, "sender", tx.Sender, "err", err)
		if revertErr := p.store.Revert(); revertErr != nil {
			log.Warn("Failed to revert transaction", "hash", tx.Hash, "err", revertErr)
			return nil, errors.Join(err, revertErr)
		}
		return nil, err
	}
	if err := p.store.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction %v: %w", tx.Hash, err)
	}
	log.Debug("Transaction committed", "hash", tx.Hash, "sender", tx.Sender, "gas", receipt.GasUsed, "success", receipt.Succeeded)

	event := AfterTxEvent{Transaction: tx, Receipt: receipt}
	if p.pending != nil {
		*p.pending = append(*p.pending, event)
	} else {
		p.notifyAfterTx(event)
	}
	return receipt, nil
}

func (p *Processor) notifyAfterTx(events ...AfterTxEvent) {
	for _, event := range events {
		for _, observer := range p.observers {
			observer.AfterTx(event)
		}
	}
}

func (p *Processor) run(tx *Transaction, block *Block, opts Options) (*Receipt, error) {
	rules := fees.RulesFor(p.config, block.Number)

	for _, observer := range p.observers {
		observer.BeforeTx(tx)
	}

	// Validation.
	intrinsicGas, err := tx.IntrinsicGas(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	if tx.GasLimit < intrinsicGas {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientIntrinsicGas, tx.GasLimit, intrinsicGas)
	}
	usableGas := tx.GasLimit - intrinsicGas

	sender, err := p.store.GetAccount(tx.Sender)
	if err != nil {
		return nil, err
	}
	upfrontCost, err := tx.UpfrontCost()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	if !opts.SkipBalance {
		if sender.Balance.Cmp(upfrontCost) < 0 {
			return nil, fmt.Errorf("%w: balance %v, upfront cost %v", ErrInsufficientFunds, sender.Balance, upfrontCost)
		}
	} else {
		if !opts.SkipNonce && sender.Nonce != tx.Nonce {
			return nil, fmt.Errorf("%w: account nonce %d, transaction nonce %d", ErrNonceMismatch, sender.Nonce, tx.Nonce)
		}
		if sender.Balance.Cmp(upfrontCost) < 0 {
			sender.Balance = upfrontCost
		}
	}

	// Buy gas.
	if sender.Nonce == math.MaxUint64 {
		return nil, fmt.Errorf("%w: nonce of %v", ErrArithmeticOverflow, tx.Sender)
	}
	sender.Nonce++
	prepaid, err := fees.GasCost(tx.GasLimit, tx.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	balance, underflow := amount.SubUnderflow(sender.Balance, prepaid)
	if underflow {
		return nil, fmt.Errorf("%w: balance of %v below %v", ErrArithmeticOverflow, tx.Sender, prepaid)
	}
	sender.Balance = balance
	if err := p.store.PutAccount(tx.Sender, sender); err != nil {
		return nil, err
	}

	// Execute.
	message := Message{
		Caller:   tx.Sender,
		To:       tx.To,
		GasLimit: usableGas,
		Value:    tx.Value,
		Data:     tx.Data,
	}
	context := TxContext{
		GasPrice: tx.GasPrice,
		Origin:   tx.Sender,
	}
	result, err := p.executor.Execute(p.store, message, context, *block)
	if err != nil {
		return nil, err
	}
	if result.GasUsed > usableGas {
		return nil, fmt.Errorf("%w: executor used %d of %d", ErrGasUsedExceedsLimit, result.GasUsed, usableGas)
	}

	// Settle fees.
	gasUsed := result.GasUsed + intrinsicGas
	refund := fees.CappedRefund(gasUsed, result.GasRefund)
	gasUsed -= refund
	amountSpent, err := fees.GasCost(gasUsed, tx.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}

	sender, err = p.store.GetAccount(tx.Sender)
	if err != nil {
		return nil, err
	}
	remainder, underflow := amount.SubUnderflow(prepaid, amountSpent)
	if underflow {
		return nil, fmt.Errorf("%w: spent %v exceeds prepaid %v", ErrArithmeticOverflow, amountSpent, prepaid)
	}
	if sender.Balance, err = add(sender.Balance, remainder); err != nil {
		return nil, err
	}
	if err := p.store.PutAccount(tx.Sender, sender); err != nil {
		return nil, err
	}

	miner, err := p.store.GetAccount(block.Coinbase)
	if err != nil {
		return nil, err
	}
	if miner.Balance, err = add(miner.Balance, amountSpent); err != nil {
		return nil, err
	}
	// Written even for a zero credit, making the coinbase a touched account.
	if err := p.store.PutAccount(block.Coinbase, miner); err != nil {
		return nil, err
	}

	// Clean up accounts.
	selfDestructs := slices.Clone(result.SelfDestructs)
	sort.Slice(selfDestructs, func(i, j int) bool { return selfDestructs[i].Compare(&selfDestructs[j]) < 0 })
	for _, addr := range selfDestructs {
		if err := p.store.DeleteAccount(addr); err != nil {
			return nil, err
		}
	}
	if rules.IsEIP158 {
		if err := p.store.CleanupTouchedAccounts(); err != nil {
			return nil, err
		}
	}
	p.store.ClearOriginalStorageCache()

	return &Receipt{
		GasUsed:        gasUsed,
		AmountSpent:    amountSpent,
		GasRefund:      refund,
		Bloom:          bloom.Build(result.Logs),
		Logs:           result.Logs,
		SelfDestructs:  selfDestructs,
		ReturnData:     result.ReturnData,
		CreatedAddress: result.CreatedAddress,
		Succeeded:      result.Succeeded,
	}, nil
}

func add(a, b amount.Amount) (amount.Amount, error) {
	sum, overflow := amount.AddOverflow(a, b)
	if overflow {
		return amount.Amount{}, fmt.Errorf("%w: %v + %v", ErrArithmeticOverflow, a, b)
	}
	return sum, nil
}

// AccountStore returns the store transactions are applied to.
func (p *Processor) AccountStore() state.AccountStore {
	return p.store
}
