package service

import (
	"context"
	"os"
	"testing"

	"github.com/kittyhub/kittyhub.go/bank"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/kittyhub/kittyhub.go/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/ziflex/lecho/v3"
)

func newTestService(t *testing.T) *KittyhubService {
	return &KittyhubService{
		Config:     &Config{},
		Logger:     lecho.New(os.Stdout),
		Ledger:     ledger.NewMemory(),
		Bank:       bank.NewMemory(0),
		Seeds:      kitty.FixedSeedSource{Value: []byte("deterministic seed for tests")},
		GenderRule: kitty.GenderRuleParity,
	}
}

// mintWithDNA plants a kitty with a crafted genome, sidestepping derivation.
func mintWithDNA(t *testing.T, svc *KittyhubService, ownerID int64, dna kitty.DNA) int64 {
	id, err := svc.Ledger.Mint(context.Background(), ownerID, dna)
	assert.NoError(t, err)
	return id
}

func TestCreateKitty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateKitty(ctx, 1)
	assert.NoError(t, err)
	second, err := svc.CreateKitty(ctx, 1)
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	// the nonce keeps genomes apart even with a frozen seed source
	assert.NotEqual(t, first.DNA, second.DNA)

	owned, err := svc.KittiesFor(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestBreedKitties(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	female := mintWithDNA(t, svc, 1, kitty.DNA{0x02})
	male := mintWithDNA(t, svc, 1, kitty.DNA{0x03})

	child, err := svc.BreedKitties(ctx, 1, female, male)
	assert.NoError(t, err)
	assert.NotEqual(t, female, child.ID)
	assert.NotEqual(t, male, child.ID)
	assert.Equal(t, int64(1), child.OwnerID)

	// parents are untouched
	owned, err := svc.KittiesFor(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, owned, 3)
}

func TestBreedKittiesSameGender(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := mintWithDNA(t, svc, 1, kitty.DNA{0x02})
	second := mintWithDNA(t, svc, 1, kitty.DNA{0x04})

	_, err := svc.BreedKitties(ctx, 1, first, second)
	assert.ErrorIs(t, err, ErrSameGenderBreed)

	owned, err := svc.KittiesFor(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestBreedKittiesForeignParent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	own := mintWithDNA(t, svc, 1, kitty.DNA{0x02})
	foreign := mintWithDNA(t, svc, 2, kitty.DNA{0x03})

	_, err := svc.BreedKitties(ctx, 1, own, foreign)
	assert.ErrorIs(t, err, ledger.ErrKittenNotFound)

	_, err = svc.BreedKitties(ctx, 1, own, 999)
	assert.ErrorIs(t, err, ledger.ErrKittenNotFound)
}

func TestTransferKitty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mintWithDNA(t, svc, 1, kitty.DNA{0x02})
	price := int64(50)
	assert.NoError(t, svc.SetPrice(ctx, 1, id, &price))

	assert.NoError(t, svc.TransferKitty(ctx, 1, 2, id))

	got, err := svc.FindKitty(ctx, 2, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.OwnerID)

	// the listing does not survive the owner change
	listed, err := svc.Price(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, listed)
}

func TestTransferKittyToSelf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mintWithDNA(t, svc, 1, kitty.DNA{0x02})
	price := int64(50)
	assert.NoError(t, svc.SetPrice(ctx, 1, id, &price))

	assert.NoError(t, svc.TransferKitty(ctx, 1, 1, id))

	// self transfer keeps the listing
	listed, err := svc.Price(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, price, *listed)
}

func TestTransferKittyNotOwned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := mintWithDNA(t, svc, 1, kitty.DNA{0x02})

	err := svc.TransferKitty(ctx, 2, 3, id)
	assert.ErrorIs(t, err, ledger.ErrKittenNotFound)

	got, err := svc.FindKitty(ctx, 1, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.OwnerID)
}
