package db

import (
	"context"

	"github.com/uptrace/bun"
)

type txKey struct{}

// WithTx stores a running transaction on the context so that ledger and
// bank operations invoked inside an atomic unit share it.
func WithTx(ctx context.Context, tx bun.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext returns the transaction carried by ctx, or fallback when the
// call runs outside an atomic unit.
func FromContext(ctx context.Context, fallback bun.IDB) bun.IDB {
	if tx, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return tx
	}
	return fallback
}
