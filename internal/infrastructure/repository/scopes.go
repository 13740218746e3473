package repository

import (
	"context"

	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/pkg/pagination"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key holding the active *gorm.DB transaction
const txKey ctxKey = "gorm_tx"

// conn returns the transaction stored in ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InvoiceFilter returns a GORM scope applying every set filter of params.
// The payment is always joined so the payment type can be matched.
func InvoiceFilter(params *domainRepo.InvoiceFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN payments ON payments.invoice_id = invoices.id")
		if params == nil {
			return db
		}

		if params.OwnerID != nil {
			db = db.Where("invoices.created_by = ?", *params.OwnerID)
		}
		if params.CreatedFrom != nil {
			db = db.Where("invoices.created_at >= ?", params.CreatedFrom.UTC())
		}
		if params.CreatedBefore != nil {
			db = db.Where("invoices.created_at < ?", params.CreatedBefore.UTC())
		}
		if params.MinTotal != nil {
			db = db.Where("invoices.total >= ?", *params.MinTotal)
		}
		if params.MaxTotal != nil {
			db = db.Where("invoices.total <= ?", *params.MaxTotal)
		}
		if params.PaymentType != nil {
			db = db.Where("payments.type = ?", string(*params.PaymentType))
		}
		return db
	}
}

// Paginate returns a GORM scope for offset pagination. Without a positive
// limit the query is left unbounded.
func Paginate(p *pagination.Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.Limited() {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Size())
	}
}
