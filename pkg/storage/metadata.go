package storage

import (
	"sync"

	"github.com/tcfw/powledger/pkg/tx"
)

// BalanceIndex keeps running balances for every address seen in applied
// blocks. It holds nothing the chain does not and can always be rebuilt
// from it; it only saves replaying the chain on each read.
type BalanceIndex struct {
	mu       sync.RWMutex
	balances map[string]float64
	applied  uint64
}

func NewBalanceIndex() *BalanceIndex {
	return &BalanceIndex{
		balances: make(map[string]float64),
	}
}

// ApplyTx credits the recipient and debits the sender. Rewards have no sender to debit.
func ApplyTx(balances map[string]float64, t *tx.Tx) {
	if !t.IsReward() && t.From != "" {
		balances[t.From] -= t.Amount
	}

	balances[t.To] += t.Amount
}

// Apply folds a newly appended block into the index
func (i *BalanceIndex) Apply(b *Block) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, t := range b.Transactions {
		ApplyTx(i.balances, t)
	}
	i.applied++
}

// Rebuild discards the index and replays the given chain
func (i *BalanceIndex) Rebuild(blocks []*Block) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.balances = make(map[string]float64)
	i.applied = 0

	for _, b := range blocks {
		for _, t := range b.Transactions {
			ApplyTx(i.balances, t)
		}
		i.applied++
	}
}

func (i *BalanceIndex) Balance(address string) float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.balances[address]
}

// Applied is the number of blocks folded into the index
func (i *BalanceIndex) Applied() uint64 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.applied
}

func (i *BalanceIndex) All() map[string]float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	all := make(map[string]float64, len(i.balances))
	for k, v := range i.balances {
		all[k] = v
	}

	return all
}
