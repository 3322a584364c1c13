package service

import (
	"context"

	"github.com/kittyhub/kittyhub.go/db"
	"github.com/kittyhub/kittyhub.go/db/models"
)

// recordEvent appends a committed outcome to the events table. It must be
// the last step of an atomic unit. In the postgres composition the insert
// joins the unit's transaction, so a rolled back operation leaves no event
// behind. When the unit carries no database transaction (memory ledger)
// nothing is written here: the money movement has to stay the last
// failable step of the unit, so persistence is deferred to broadcast.
func (svc *KittyhubService) recordEvent(ctx context.Context, event *models.Event) error {
	if svc.DB == nil {
		return nil
	}
	idb := db.FromContext(ctx, nil)
	if idb == nil {
		return nil
	}
	_, err := idb.NewInsert().Model(event).Exec(ctx)
	return err
}

// broadcast hands a committed event to the in-process subscribers
// (rabbitmq publisher, webhook poster). Only called after the atomic unit
// committed. An event recordEvent could not insert transactionally is
// persisted here best effort; the committed operation is not failed over
// a lost event row.
func (svc *KittyhubService) broadcast(ctx context.Context, event *models.Event) {
	if svc.DB != nil && event.ID == 0 {
		if _, err := svc.DB.NewInsert().Model(event).Exec(ctx); err != nil {
			svc.Logger.Errorf("Failed to persist event kind:%s kitty_id:%v error: %v", event.Kind, event.KittyID, err)
		}
	}
	if svc.EventPubSub == nil {
		return
	}
	svc.EventPubSub.Publish(event.Kind, *event)
}

func (svc *KittyhubService) EventsFor(ctx context.Context, userID int64) ([]models.Event, error) {
	var events []models.Event
	err := svc.DB.NewSelect().Model(&events).
		Where("actor_id = ? OR counterparty_id = ?", userID, userID).
		OrderExpr("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
