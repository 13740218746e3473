package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/domain/enum"
	"github.com/sangkips/invoice-ticket-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create writes the invoice, its payment and its line items
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID returns the fully populated invoice, or nil if it does not exist
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	// List returns the page of matching invoices, newest first, and the total match count
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries.
// All set filters must hold. CreatedBefore is exclusive, the rest are inclusive.
type InvoiceFilterParams struct {
	OwnerID       *uuid.UUID
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
	PaymentType   *enum.PaymentType
	Pagination    *pagination.Params
}
