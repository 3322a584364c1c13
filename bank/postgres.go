package bank

import (
	"context"

	"github.com/kittyhub/kittyhub.go/common"
	"github.com/kittyhub/kittyhub.go/db"
	"github.com/kittyhub/kittyhub.go/db/models"
	"github.com/uptrace/bun"
)

// Postgres is the double-entry bank. Every user gets a current and an
// incoming account; transfers insert one transaction entry debiting the
// payer's current account and crediting the payee's. Balances are derived,
// never stored.
type Postgres struct {
	DB *bun.DB
	// payers must retain at least this much after a transfer
	ExistentialBalance int64
}

var _ Bank = (*Postgres)(nil)

func NewPostgres(bunDB *bun.DB, existentialBalance int64) *Postgres {
	return &Postgres{DB: bunDB, ExistentialBalance: existentialBalance}
}

func (b *Postgres) Setup(ctx context.Context, userID int64) error {
	idb := db.FromContext(ctx, b.DB)
	for _, accountType := range []string{common.AccountTypeCurrent, common.AccountTypeIncoming} {
		account := models.Account{UserID: userID, Type: accountType}
		if _, err := idb.NewInsert().Model(&account).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Postgres) Deposit(ctx context.Context, userID int64, amount int64) error {
	idb := db.FromContext(ctx, b.DB)

	creditAccount, err := b.accountFor(ctx, common.AccountTypeCurrent, userID)
	if err != nil {
		return err
	}
	debitAccount, err := b.accountFor(ctx, common.AccountTypeIncoming, userID)
	if err != nil {
		return err
	}
	entry := models.TransactionEntry{
		UserID:          userID,
		CreditAccountID: creditAccount.ID,
		DebitAccountID:  debitAccount.ID,
		Amount:          amount,
		EntryType:       models.EntryTypeDeposit,
	}
	_, err = idb.NewInsert().Model(&entry).Exec(ctx)
	return err
}

func (b *Postgres) Transfer(ctx context.Context, fromID, toID int64, amount int64) error {
	idb := db.FromContext(ctx, b.DB)

	balance, err := b.Balance(ctx, fromID)
	if err != nil {
		return err
	}
	if balance-amount < b.ExistentialBalance {
		return ErrInsufficientFunds
	}

	debitAccount, err := b.accountFor(ctx, common.AccountTypeCurrent, fromID)
	if err != nil {
		return err
	}
	creditAccount, err := b.accountFor(ctx, common.AccountTypeCurrent, toID)
	if err != nil {
		return err
	}
	entry := models.TransactionEntry{
		UserID:          fromID,
		CreditAccountID: creditAccount.ID,
		DebitAccountID:  debitAccount.ID,
		Amount:          amount,
		EntryType:       models.EntryTypePurchase,
	}
	_, err = idb.NewInsert().Model(&entry).Exec(ctx)
	return err
}

func (b *Postgres) Balance(ctx context.Context, userID int64) (int64, error) {
	idb := db.FromContext(ctx, b.DB)

	account, err := b.accountFor(ctx, common.AccountTypeCurrent, userID)
	if err != nil {
		return 0, err
	}

	var credits, debits int64
	err = idb.NewSelect().Model((*models.TransactionEntry)(nil)).
		ColumnExpr("coalesce(sum(amount), 0)").
		Where("credit_account_id = ?", account.ID).
		Scan(ctx, &credits)
	if err != nil {
		return 0, err
	}
	err = idb.NewSelect().Model((*models.TransactionEntry)(nil)).
		ColumnExpr("coalesce(sum(amount), 0)").
		Where("debit_account_id = ?", account.ID).
		Scan(ctx, &debits)
	if err != nil {
		return 0, err
	}
	return credits - debits, nil
}

func (b *Postgres) accountFor(ctx context.Context, accountType string, userID int64) (models.Account, error) {
	account := models.Account{}
	err := db.FromContext(ctx, b.DB).NewSelect().Model(&account).
		Where("user_id = ? AND type = ?", userID, accountType).
		Limit(1).Scan(ctx)
	return account, err
}
