package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/domain/enum"
	"github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"github.com/sangkips/invoice-ticket-api/pkg/ticket"
)

// Ticket labels
const (
	LabelTotal    = "СУМА"
	LabelCash     = "Готівка"
	LabelCashless = "Картка"
	LabelRest     = "Решта"
	ThankYouNote  = "Дякуємо за покупку!"

	TicketTimeLayout = "02.01.2006 15:04:05"
)

// TicketOptions controls the ticket layout
type TicketOptions struct {
	Width       int
	FooterWidth int
	Location    *time.Location
}

// DefaultTicketOptions matches 58mm receipt paper
func DefaultTicketOptions() TicketOptions {
	return TicketOptions{Width: 32, FooterWidth: 33, Location: time.UTC}
}

// TicketService renders invoices as plain-text receipts
type TicketService struct {
	invoiceRepo repository.InvoiceRepository
	opts        TicketOptions
	logger      *slog.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(invoiceRepo repository.InvoiceRepository, opts TicketOptions, logger *slog.Logger) *TicketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketService{invoiceRepo: invoiceRepo, opts: opts, logger: logger}
}

// Options returns the layout the service renders with
func (s *TicketService) Options() TicketOptions {
	return s.opts
}

// RenderInvoiceText loads an invoice and renders its ticket
func (s *TicketService) RenderInvoiceText(ctx context.Context, invoiceID uint) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load invoice", "invoice_id", invoiceID, "error", err)
		return "", apperror.Persistence(err)
	}
	if invoice == nil {
		return "", apperror.NewNotFoundErrorf("Invoice with ID = %d not found", invoiceID)
	}
	return FormatTicket(invoice, s.opts), nil
}

// FormatTicket renders a fully populated invoice as fixed-width text.
//
// Layout, top to bottom: the owner name centered, the line items separated by
// dashes, the total, the payment and the change, then the creation time and a
// thank-you note centered in the footer width. Blocks are separated by "=".
func FormatTicket(invoice *entity.Invoice, opts TicketOptions) string {
	if opts.Width <= 0 {
		opts.Width = DefaultTicketOptions().Width
	}
	if opts.FooterWidth <= 0 {
		opts.FooterWidth = opts.Width + 1
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	doc := ticket.NewDocument(opts.Width)

	doc.Centered(ticket.Capitalize(invoice.Owner.Name), opts.Width-8).
		Separator('=')

	if len(invoice.LineItems) == 0 {
		doc.Text("")
	}
	for i, item := range invoice.LineItems {
		if i > 0 {
			doc.Separator('-')
		}
		doc.Text(ticket.FormatQuantity(item.Quantity) + " x " + ticket.FormatMoney(item.UnitPrice)).
			AmountLine(item.Product.Name, ticket.FormatMoney(item.Total()))
	}

	doc.Separator('=').
		AmountLine(LabelTotal, ticket.FormatMoney(invoice.Total))

	if invoice.Payment != nil {
		doc.AmountLine(paymentLabel(invoice.Payment.Type), ticket.FormatMoney(invoice.Payment.Amount))
	}

	doc.AmountLine(LabelRest, ticket.FormatMoney(invoice.Rest)).
		Separator('=').
		CenteredIn(invoice.CreatedAt.In(opts.Location).Format(TicketTimeLayout), opts.FooterWidth).
		CenteredIn(ThankYouNote, opts.FooterWidth)

	return doc.String()
}

func paymentLabel(t enum.PaymentType) string {
	if t == enum.PaymentTypeCash {
		return LabelCash
	}
	return LabelCashless
}
