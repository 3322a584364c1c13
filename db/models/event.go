package models

import (
	"time"
)

// Event : one committed registry outcome. Rows are append only; their id
// order is the order operations committed.
type Event struct {
	ID             int64     `bun:",pk,autoincrement"`
	Kind           string    `bun:",notnull"`
	ActorID        int64     `bun:",notnull"`
	CounterpartyID int64     `bun:",nullzero"`
	KittyID        int64     `bun:",notnull"`
	DNA            string    `bun:",nullzero"`
	Price          *int64    `bun:",nullzero"`
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
