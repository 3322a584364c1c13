package ledger

import (
	"context"
	"errors"

	"github.com/kittyhub/kittyhub.go/kitty"
)

var (
	// ErrKittenNotFound covers both a missing kitty and a kitty owned by
	// someone else. Lookups are ownership scoped so callers cannot probe
	// other owners' holdings.
	ErrKittenNotFound = errors.New("kitten not found")
	// ErrIDOverflow means the id allocator is exhausted.
	ErrIDOverflow = errors.New("kitty id overflow")
)

// Kitty is one ownership record in the registry.
type Kitty struct {
	ID      int64
	OwnerID int64
	DNA     kitty.DNA
}

// Ledger is the ownership registry plus the listing registry. Two
// implementations exist: an embedded in-memory map and a delegated
// Postgres registry. The marketplace and breeding logic only ever see
// this interface.
//
// RunInTx is the atomic unit boundary: every mutation staged by fn is
// discarded when fn returns an error. Operations called inside fn join
// the surrounding unit.
type Ledger interface {
	Mint(ctx context.Context, ownerID int64, dna kitty.DNA) (int64, error)
	Get(ctx context.Context, ownerID, kittyID int64) (*Kitty, error)
	ByOwner(ctx context.Context, ownerID int64) ([]Kitty, error)
	Transfer(ctx context.Context, fromID, toID, kittyID int64) error
	ExistsForOwner(ctx context.Context, ownerID, kittyID int64) (bool, error)

	SetPrice(ctx context.Context, kittyID int64, price *int64) error
	Price(ctx context.Context, kittyID int64) (*int64, error)

	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
