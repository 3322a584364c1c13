package bank

import (
	"context"
	"sync"
)

// Memory keeps balances in a map. Used by the in-memory composition and
// by service tests; the keep-alive floor matches the Postgres variant.
type Memory struct {
	mu sync.Mutex
	// payers must retain at least this much after a transfer
	ExistentialBalance int64
	balances           map[int64]int64
}

var _ Bank = (*Memory)(nil)

func NewMemory(existentialBalance int64) *Memory {
	return &Memory{
		ExistentialBalance: existentialBalance,
		balances:           make(map[int64]int64),
	}
}

func (b *Memory) Setup(ctx context.Context, userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.balances[userID]; !ok {
		b.balances[userID] = 0
	}
	return nil
}

func (b *Memory) Deposit(ctx context.Context, userID int64, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[userID] += amount
	return nil
}

func (b *Memory) Transfer(ctx context.Context, fromID, toID int64, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[fromID]-amount < b.ExistentialBalance {
		return ErrInsufficientFunds
	}
	b.balances[fromID] -= amount
	b.balances[toID] += amount
	return nil
}

func (b *Memory) Balance(ctx context.Context, userID int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[userID], nil
}
