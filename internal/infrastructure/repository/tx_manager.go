package repository

import (
	"context"

	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by db
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTransaction runs fn in a transaction. A nested call joins the outer one.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}
