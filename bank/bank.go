package bank

import (
	"context"
	"errors"
)

// ErrInsufficientFunds means the payer cannot cover the amount while
// keeping the existential minimum on their account.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Bank is the currency collaborator. The marketplace only calls Transfer;
// Setup and Deposit exist for account provisioning and funding. A Transfer
// invoked inside a ledger atomic unit joins that unit and is rolled back
// with it.
type Bank interface {
	Setup(ctx context.Context, userID int64) error
	Deposit(ctx context.Context, userID int64, amount int64) error
	Transfer(ctx context.Context, fromID, toID int64, amount int64) error
	Balance(ctx context.Context, userID int64) (int64, error)
}
