package migrations

import (
	"context"

	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/uptrace/bun"
)

/* This init reflects the latest model fields when run on a fresh db.
Subsequent migrations must use IfNotExists/IfExists when touching columns
these tables already carry. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, model := range []interface{}{
			(*models.User)(nil),
			(*models.Kitty)(nil),
			(*models.Listing)(nil),
			(*models.Account)(nil),
			(*models.TransactionEntry)(nil),
			(*models.Event)(nil),
		} {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}
