package service

import (
	"context"
	"errors"

	"github.com/kittyhub/kittyhub.go/common"
	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/kittyhub/kittyhub.go/ledger"
)

var (
	ErrNotForSale  = errors.New("kitty is not for sale")
	ErrPriceTooLow = errors.New("max price is below the asking price")
	ErrBuyFromSelf = errors.New("cannot buy from self")
)

// SetPrice lists a kitty at the given price, or clears the listing when
// price is nil. Clearing an unlisted kitty succeeds.
func (svc *KittyhubService) SetPrice(ctx context.Context, ownerID, kittyID int64, price *int64) error {
	var event *models.Event
	err := svc.Ledger.RunInTx(ctx, func(ctx context.Context) error {
		owns, err := svc.Ledger.ExistsForOwner(ctx, ownerID, kittyID)
		if err != nil {
			return err
		}
		if !owns {
			return ledger.ErrKittenNotFound
		}
		if err := svc.Ledger.SetPrice(ctx, kittyID, price); err != nil {
			return err
		}
		event = &models.Event{
			Kind:    common.EventKindKittyPriceUpdated,
			ActorID: ownerID,
			KittyID: kittyID,
			Price:   price,
		}
		return svc.recordEvent(ctx, event)
	})
	if err != nil {
		return err
	}

	svc.broadcast(ctx, event)
	return nil
}

// Price returns the active asking price, or nil when the kitty is not
// listed.
func (svc *KittyhubService) Price(ctx context.Context, kittyID int64) (*int64, error) {
	return svc.Ledger.Price(ctx, kittyID)
}

// Buy purchases a listed kitty from its owner. Ownership transfer,
// listing removal and the payment commit or roll back as one unit: if the
// buyer cannot pay, the seller keeps both kitty and listing.
func (svc *KittyhubService) Buy(ctx context.Context, buyerID, ownerID, kittyID, maxPrice int64) (int64, error) {
	if buyerID == ownerID {
		return 0, ErrBuyFromSelf
	}

	var price int64
	var event *models.Event
	err := svc.Ledger.RunInTx(ctx, func(ctx context.Context) error {
		listed, err := svc.Ledger.Price(ctx, kittyID)
		if err != nil {
			return err
		}
		if listed == nil {
			return ErrNotForSale
		}
		if maxPrice < *listed {
			return ErrPriceTooLow
		}
		price = *listed

		// the non-self transfer also removes the listing
		if err := svc.Ledger.Transfer(ctx, ownerID, buyerID, kittyID); err != nil {
			return err
		}
		if err := svc.Bank.Transfer(ctx, buyerID, ownerID, price); err != nil {
			return err
		}

		event = &models.Event{
			Kind:           common.EventKindKittySold,
			ActorID:        ownerID,
			CounterpartyID: buyerID,
			KittyID:        kittyID,
			Price:          &price,
		}
		return svc.recordEvent(ctx, event)
	})
	if err != nil {
		return 0, err
	}

	svc.broadcast(ctx, event)
	svc.Logger.Debugf("Sold kitty kitty_id:%v seller:%v buyer:%v price:%v", kittyID, ownerID, buyerID, price)
	return price, nil
}
