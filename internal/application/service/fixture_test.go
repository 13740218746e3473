package service

import (
	"testing"
	"time"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/sangkips/invoice-ticket-api/internal/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	invoices *InvoiceService
	tickets  *TicketService
	clock    time.Time
}

// newFixture wires the services over a fresh database. The invoice clock
// starts at 2024-05-14 10:30:00 UTC and advances one minute per invoice.
func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	invoiceRepo := repository.NewInvoiceRepository(db)

	f := &fixture{
		db: db,
		invoices: NewInvoiceService(invoiceRepo, repository.NewProductRepository(db),
			repository.NewTxManager(db), time.UTC, nil),
		tickets: NewTicketService(invoiceRepo, DefaultTicketOptions(), nil),
		clock:   time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC),
	}
	f.invoices.now = func() time.Time {
		now := f.clock
		f.clock = f.clock.Add(time.Minute)
		return now
	}
	return f
}

func (f *fixture) user(t *testing.T, name, login string) *entity.User {
	return testutil.CreateUser(t, f.db, name, login)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// cashInvoice is 10 x Water at 12.30 plus 2 x Ice-cream at 37.70, paid in cash
func cashInvoice(amount string) *CreateInvoiceInput {
	return &CreateInvoiceInput{
		Products: []InvoiceItemInput{
			{Name: "Water", Price: dec("12.3"), Quantity: intPtr(10)},
			{Name: "Ice-cream", Price: dec("37.7"), Quantity: intPtr(2)},
		},
		Payment: &PaymentInput{Type: "cash", Amount: dec(amount)},
	}
}
