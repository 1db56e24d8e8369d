package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// The journal writer lands a tick's records and the run counter bump in one
// transaction. The open handle travels through the context so the repos
// never know whether they run inside one.

type ctxTxKey struct{}

func txInto(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxTxKey{}, tx)
}

func txFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}
