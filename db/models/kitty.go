package models

import (
	"time"
)

// Kitty : one ownership record. DNA is stored as 32 hex characters and is
// never updated after the row is inserted.
type Kitty struct {
	ID        int64     `bun:",pk,autoincrement"`
	OwnerID   int64     `bun:",notnull"`
	Owner     *User     `bun:"rel:belongs-to,join:owner_id=id"`
	DNA       string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
