package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager satisfies ports.TxManager over a gorm transaction. Repo calls
// made inside fn resolve their handle via txFrom and so join the same tx;
// any error from fn rolls the whole batch back.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txInto(ctx, tx))
	})
}
