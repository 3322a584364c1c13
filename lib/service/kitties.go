package service

import (
	"context"
	"errors"

	"github.com/kittyhub/kittyhub.go/common"
	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/kittyhub/kittyhub.go/ledger"
)

// ErrSameGenderBreed : breeding needs one male and one female parent.
var ErrSameGenderBreed = errors.New("same gender breed")

// CreateKitty mints a kitty with freshly derived DNA for the caller.
func (svc *KittyhubService) CreateKitty(ctx context.Context, ownerID int64) (*ledger.Kitty, error) {
	dna := kitty.DeriveDNA(svc.Seeds.Seed(), ownerID, svc.nextNonce())

	var created *ledger.Kitty
	var event *models.Event
	err := svc.Ledger.RunInTx(ctx, func(ctx context.Context) error {
		id, err := svc.Ledger.Mint(ctx, ownerID, dna)
		if err != nil {
			return err
		}
		created = &ledger.Kitty{ID: id, OwnerID: ownerID, DNA: dna}
		event = &models.Event{
			Kind:    common.EventKindKittyCreated,
			ActorID: ownerID,
			KittyID: id,
			DNA:     dna.String(),
		}
		return svc.recordEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcast(ctx, event)
	svc.Logger.Debugf("Created kitty kitty_id:%v user_id:%v dna:%s", created.ID, ownerID, dna)
	return created, nil
}

// BreedKitties crosses two kitties owned by the caller into a new one.
// The parents must be of different gender and are left untouched.
func (svc *KittyhubService) BreedKitties(ctx context.Context, ownerID, firstID, secondID int64) (*ledger.Kitty, error) {
	seed := svc.Seeds.Seed()
	nonce := svc.nextNonce()

	var child *ledger.Kitty
	var event *models.Event
	err := svc.Ledger.RunInTx(ctx, func(ctx context.Context) error {
		first, err := svc.Ledger.Get(ctx, ownerID, firstID)
		if err != nil {
			return err
		}
		second, err := svc.Ledger.Get(ctx, ownerID, secondID)
		if err != nil {
			return err
		}
		if svc.GenderRule.Gender(first.DNA) == svc.GenderRule.Gender(second.DNA) {
			return ErrSameGenderBreed
		}

		selector := kitty.DeriveDNA(seed, ownerID, nonce)
		childDNA := kitty.Crossover(first.DNA, second.DNA, selector)

		id, err := svc.Ledger.Mint(ctx, ownerID, childDNA)
		if err != nil {
			return err
		}
		child = &ledger.Kitty{ID: id, OwnerID: ownerID, DNA: childDNA}
		event = &models.Event{
			Kind:    common.EventKindKittyBred,
			ActorID: ownerID,
			KittyID: id,
			DNA:     childDNA.String(),
		}
		return svc.recordEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcast(ctx, event)
	svc.Logger.Debugf("Bred kitty kitty_id:%v user_id:%v parents:%v,%v", child.ID, ownerID, firstID, secondID)
	return child, nil
}

// TransferKitty moves a kitty to another owner and drops any listing. A
// transfer to the current owner only verifies existence; it neither
// touches the listing nor emits an event.
func (svc *KittyhubService) TransferKitty(ctx context.Context, fromID, toID, kittyID int64) error {
	var event *models.Event
	err := svc.Ledger.RunInTx(ctx, func(ctx context.Context) error {
		if err := svc.Ledger.Transfer(ctx, fromID, toID, kittyID); err != nil {
			return err
		}
		if fromID == toID {
			return nil
		}
		event = &models.Event{
			Kind:           common.EventKindKittyTransferred,
			ActorID:        fromID,
			CounterpartyID: toID,
			KittyID:        kittyID,
		}
		return svc.recordEvent(ctx, event)
	})
	if err != nil {
		return err
	}

	if event != nil {
		svc.broadcast(ctx, event)
		svc.Logger.Debugf("Transferred kitty kitty_id:%v from:%v to:%v", kittyID, fromID, toID)
	}
	return nil
}

// KittiesFor lists the caller's kitties ordered by id.
func (svc *KittyhubService) KittiesFor(ctx context.Context, ownerID int64) ([]ledger.Kitty, error) {
	return svc.Ledger.ByOwner(ctx, ownerID)
}

// FindKitty is the ownership scoped lookup.
func (svc *KittyhubService) FindKitty(ctx context.Context, ownerID, kittyID int64) (*ledger.Kitty, error) {
	return svc.Ledger.Get(ctx, ownerID, kittyID)
}
