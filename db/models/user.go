package models

import (
	"time"
)

// User : User Model
type User struct {
	ID        int64     `bun:",pk,autoincrement"`
	Login     string    `bun:",unique,notnull"`
	Password  string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero"`
}
