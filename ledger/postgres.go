package ledger

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kittyhub/kittyhub.go/db"
	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/kittyhub/kittyhub.go/kitty"
	"github.com/uptrace/bun"
)

// Postgres is the delegated-registry ledger variant: ownership and listing
// rows live in the database and id allocation is the kitties sequence.
// RunInTx stores the bun transaction on the context so every operation
// invoked inside the unit shares it.
type Postgres struct {
	DB *bun.DB
}

var _ Ledger = (*Postgres)(nil)

func NewPostgres(bunDB *bun.DB) *Postgres {
	return &Postgres{DB: bunDB}
}

func (l *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(db.WithTx(ctx, tx))
	})
}

func (l *Postgres) Mint(ctx context.Context, ownerID int64, dna kitty.DNA) (int64, error) {
	row := models.Kitty{OwnerID: ownerID, DNA: dna.String()}
	if _, err := db.FromContext(ctx, l.DB).NewInsert().Model(&row).Exec(ctx); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (l *Postgres) Get(ctx context.Context, ownerID, kittyID int64) (*Kitty, error) {
	var row models.Kitty
	err := db.FromContext(ctx, l.DB).NewSelect().Model(&row).
		Where("id = ? AND owner_id = ?", kittyID, ownerID).
		Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKittenNotFound
	}
	if err != nil {
		return nil, err
	}
	return kittyFromRow(row)
}

func (l *Postgres) ByOwner(ctx context.Context, ownerID int64) ([]Kitty, error) {
	var rows []models.Kitty
	err := db.FromContext(ctx, l.DB).NewSelect().Model(&rows).
		Where("owner_id = ?", ownerID).
		OrderExpr("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	kitties := make([]Kitty, 0, len(rows))
	for _, row := range rows {
		k, err := kittyFromRow(row)
		if err != nil {
			return nil, err
		}
		kitties = append(kitties, *k)
	}
	return kitties, nil
}

func (l *Postgres) Transfer(ctx context.Context, fromID, toID, kittyID int64) error {
	idb := db.FromContext(ctx, l.DB)

	var row models.Kitty
	err := idb.NewSelect().Model(&row).
		Where("id = ? AND owner_id = ?", kittyID, fromID).
		Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrKittenNotFound
	}
	if err != nil {
		return err
	}
	if fromID == toID {
		// existence verified, nothing to move
		return nil
	}

	row.OwnerID = toID
	if _, err := idb.NewUpdate().Model(&row).Column("owner_id").WherePK().Exec(ctx); err != nil {
		return err
	}
	_, err = idb.NewDelete().Model((*models.Listing)(nil)).Where("kitty_id = ?", kittyID).Exec(ctx)
	return err
}

func (l *Postgres) ExistsForOwner(ctx context.Context, ownerID, kittyID int64) (bool, error) {
	return db.FromContext(ctx, l.DB).NewSelect().Model((*models.Kitty)(nil)).
		Where("id = ? AND owner_id = ?", kittyID, ownerID).
		Exists(ctx)
}

func (l *Postgres) SetPrice(ctx context.Context, kittyID int64, price *int64) error {
	idb := db.FromContext(ctx, l.DB)

	if price == nil {
		_, err := idb.NewDelete().Model((*models.Listing)(nil)).Where("kitty_id = ?", kittyID).Exec(ctx)
		return err
	}
	listing := models.Listing{KittyID: kittyID, Price: *price}
	_, err := idb.NewInsert().Model(&listing).
		On("CONFLICT (kitty_id) DO UPDATE").
		Set("price = EXCLUDED.price, updated_at = now()").
		Exec(ctx)
	return err
}

func (l *Postgres) Price(ctx context.Context, kittyID int64) (*int64, error) {
	var listing models.Listing
	err := db.FromContext(ctx, l.DB).NewSelect().Model(&listing).
		Where("kitty_id = ?", kittyID).
		Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing.Price, nil
}

func kittyFromRow(row models.Kitty) (*Kitty, error) {
	dna, err := kitty.DNAFromHex(row.DNA)
	if err != nil {
		return nil, err
	}
	return &Kitty{ID: row.ID, OwnerID: row.OwnerID, DNA: dna}, nil
}
