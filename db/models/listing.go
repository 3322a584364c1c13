package models

import (
	"time"
)

// Listing : an active asking price. A row exists only while the kitty is
// for sale.
type Listing struct {
	KittyID   int64     `bun:",pk"`
	Kitty     *Kitty    `bun:"rel:belongs-to,join:kitty_id=id"`
	Price     int64     `bun:",notnull"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
