package models

import (
	"time"
)

const (
	EntryTypePurchase = "purchase"
	EntryTypeDeposit  = "deposit"
)

// TransactionEntry : Transaction Entries Model. Balances are never stored,
// they are the sum of an account's credits minus its debits.
type TransactionEntry struct {
	ID              int64     `bun:",pk,autoincrement"`
	UserID          int64     `bun:",notnull"`
	User            *User     `bun:"rel:belongs-to,join:user_id=id"`
	CreditAccountID int64     `bun:",notnull"`
	CreditAccount   *Account  `bun:"rel:belongs-to,join:credit_account_id=id"`
	DebitAccountID  int64     `bun:",notnull"`
	DebitAccount    *Account  `bun:"rel:belongs-to,join:debit_account_id=id"`
	Amount          int64     `bun:",notnull"`
	KittyID         int64     `bun:",nullzero"`
	EntryType       string    `bun:",notnull"`
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
