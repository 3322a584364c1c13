package bank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTransfer(t *testing.T) {
	ctx := context.Background()
	b := NewMemory(1)
	require.NoError(t, b.Setup(ctx, 100))
	require.NoError(t, b.Setup(ctx, 101))
	require.NoError(t, b.Deposit(ctx, 100, 1000))

	require.NoError(t, b.Transfer(ctx, 100, 101, 500))

	from, err := b.Balance(ctx, 100)
	require.NoError(t, err)
	to, err := b.Balance(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(500), from)
	assert.Equal(t, int64(500), to)
}

func TestMemoryTransferKeepsExistentialBalance(t *testing.T) {
	ctx := context.Background()
	b := NewMemory(10)
	require.NoError(t, b.Deposit(ctx, 100, 100))

	// 100 - 95 would leave less than the floor of 10
	assert.ErrorIs(t, b.Transfer(ctx, 100, 101, 95), ErrInsufficientFunds)
	assert.ErrorIs(t, b.Transfer(ctx, 100, 101, 91), ErrInsufficientFunds)
	require.NoError(t, b.Transfer(ctx, 100, 101, 90))

	from, _ := b.Balance(ctx, 100)
	to, _ := b.Balance(ctx, 101)
	assert.Equal(t, int64(10), from)
	assert.Equal(t, int64(90), to)
}

func TestMemoryTransferUnfundedPayer(t *testing.T) {
	ctx := context.Background()
	b := NewMemory(0)
	assert.ErrorIs(t, b.Transfer(ctx, 100, 101, 1), ErrInsufficientFunds)
}
