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

	"github.com/Fantom-foundation/txexec/bloom"
	"github.com/ethereum/go-ethereum/log"
)

// RunBlock processes the given transactions in order as part of the given
// block. The block is atomic: if any of its transactions fails, the effects
// of all of them are reverted. Observers learn about the transactions of a
// block only once the block got committed.
func (p *Processor) RunBlock(block *Block, txs []*Transaction, opts Options) (*BlockResult, error) {
	if block == nil {
		block = defaultBlock()
	}
	p.store.Checkpoint()
	events := []AfterTxEvent{}
	p.pending = &events
	result, err := p.runBlock(block, txs, opts)
	p.pending = nil
	if err != nil {
		if revertErr := p.store.Revert(); revertErr != nil {
			log.Warn("Failed to revert block", "number", block.Number, "err", revertErr)
			return nil, errors.Join(err, revertErr)
		}
		return nil, err
	}
	if err := p.store.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit block %d: %w", block.Number, err)
	}
	log.Debug("Block processed", "number", block.Number, "txs", len(txs), "gas", result.GasUsed)
	p.notifyAfterTx(events...)
	return result, nil
}

func (p *Processor) runBlock(block *Block, txs []*Transaction, opts Options) (*BlockResult, error) {
	result := &BlockResult{
		Receipts:          make([]*Receipt, 0, len(txs)),
		CumulativeGasUsed: make([]uint64, 0, len(txs)),
	}
	for i, tx := range txs {
		if tx == nil {
			return nil, fmt.Errorf("%w: transaction %d is missing", ErrInvalidInput, i)
		}
		if !opts.SkipBlockGasLimitValidation {
			left := uint64(0)
			if result.GasUsed < block.GasLimit {
				left = block.GasLimit - result.GasUsed
			}
			if tx.GasLimit > left {
				return nil, fmt.Errorf("%w: transaction %d needs %d gas, %d left", ErrBlockGasLimitReached, i, tx.GasLimit, left)
			}
		}
		receipt, err := p.Run(tx, block, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to run transaction %d: %w", i, err)
		}
		result.GasUsed += receipt.GasUsed
		result.Receipts = append(result.Receipts, receipt)
		result.CumulativeGasUsed = append(result.CumulativeGasUsed, result.GasUsed)
		result.Bloom = bloom.Merge(result.Bloom, receipt.Bloom)
	}
	return result, nil
}
