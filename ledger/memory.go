package ledger

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/kittyhub/kittyhub.go/kitty"
)

type record struct {
	ownerID int64
	dna     kitty.DNA
}

// Memory is the embedded-map ledger variant. A single mutex serializes
// operations, and RunInTx takes a snapshot of the maps so a failed atomic
// unit can be rolled back wholesale.
type Memory struct {
	mu      sync.Mutex
	nextID  int64
	kitties map[int64]record
	prices  map[int64]int64
}

var _ Ledger = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		nextID:  1,
		kitties: make(map[int64]record),
		prices:  make(map[int64]int64),
	}
}

type memoryTxKey struct{}

// unlock is a no-op inside RunInTx, where the unit already holds the lock.
func (l *Memory) lock(ctx context.Context) (unlock func()) {
	if ctx.Value(memoryTxKey{}) != nil {
		return func() {}
	}
	l.mu.Lock()
	return l.mu.Unlock
}

func (l *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		// already inside a unit, join it
		return fn(ctx)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	snapKitties := make(map[int64]record, len(l.kitties))
	for id, rec := range l.kitties {
		snapKitties[id] = rec
	}
	snapPrices := make(map[int64]int64, len(l.prices))
	for id, price := range l.prices {
		snapPrices[id] = price
	}
	snapNextID := l.nextID

	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		l.kitties = snapKitties
		l.prices = snapPrices
		l.nextID = snapNextID
		return err
	}
	return nil
}

func (l *Memory) Mint(ctx context.Context, ownerID int64, dna kitty.DNA) (int64, error) {
	defer l.lock(ctx)()

	if l.nextID == math.MaxInt64 {
		return 0, ErrIDOverflow
	}
	id := l.nextID
	l.nextID++
	l.kitties[id] = record{ownerID: ownerID, dna: dna}
	return id, nil
}

func (l *Memory) Get(ctx context.Context, ownerID, kittyID int64) (*Kitty, error) {
	defer l.lock(ctx)()

	rec, ok := l.kitties[kittyID]
	if !ok || rec.ownerID != ownerID {
		return nil, ErrKittenNotFound
	}
	return &Kitty{ID: kittyID, OwnerID: rec.ownerID, DNA: rec.dna}, nil
}

func (l *Memory) ByOwner(ctx context.Context, ownerID int64) ([]Kitty, error) {
	defer l.lock(ctx)()

	kitties := []Kitty{}
	for id, rec := range l.kitties {
		if rec.ownerID == ownerID {
			kitties = append(kitties, Kitty{ID: id, OwnerID: rec.ownerID, DNA: rec.dna})
		}
	}
	sort.Slice(kitties, func(i, j int) bool { return kitties[i].ID < kitties[j].ID })
	return kitties, nil
}

func (l *Memory) Transfer(ctx context.Context, fromID, toID, kittyID int64) error {
	defer l.lock(ctx)()

	rec, ok := l.kitties[kittyID]
	if !ok || rec.ownerID != fromID {
		return ErrKittenNotFound
	}
	if fromID == toID {
		// existence verified, nothing to move
		return nil
	}
	rec.ownerID = toID
	l.kitties[kittyID] = rec
	delete(l.prices, kittyID)
	return nil
}

func (l *Memory) ExistsForOwner(ctx context.Context, ownerID, kittyID int64) (bool, error) {
	defer l.lock(ctx)()

	rec, ok := l.kitties[kittyID]
	return ok && rec.ownerID == ownerID, nil
}

func (l *Memory) SetPrice(ctx context.Context, kittyID int64, price *int64) error {
	defer l.lock(ctx)()

	if price == nil {
		delete(l.prices, kittyID)
		return nil
	}
	l.prices[kittyID] = *price
	return nil
}

func (l *Memory) Price(ctx context.Context, kittyID int64) (*int64, error) {
	defer l.lock(ctx)()

	price, ok := l.prices[kittyID]
	if !ok {
		return nil, nil
	}
	return &price, nil
}
