package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/domain/enum"
	"github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"github.com/sangkips/invoice-ticket-api/pkg/pagination"
	"github.com/sangkips/invoice-ticket-api/pkg/ticket"
	"github.com/shopspring/decimal"
)

// Date layouts accepted by the created_at filters
const (
	FilterDateLayout     = "02.01.2006"
	FilterDateTimeLayout = "02.01.2006 15:04:05"
)

// InvoiceService handles invoice creation and retrieval
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	consolidator *Consolidator
	tx           repository.TxManager
	location     *time.Location
	logger       *slog.Logger
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service. location is the timezone
// filter dates are interpreted in.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	tx repository.TxManager,
	location *time.Location,
	logger *slog.Logger,
) *InvoiceService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		consolidator: NewConsolidator(productRepo),
		tx:           tx,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

// InvoiceItemInput represents a product line of a new invoice
type InvoiceItemInput struct {
	Name        string
	Price       decimal.Decimal
	Description *string
	Quantity    *int // defaults to 1
}

// PaymentInput represents the payment of a new invoice
type PaymentInput struct {
	Type   string
	Amount decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	Products []InvoiceItemInput
	Payment  *PaymentInput
}

// CreateInvoice validates the input, computes total and change, and stores the
// invoice with its payment and line items in one transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, owner *entity.User, input *CreateInvoiceInput) (*entity.Invoice, error) {
	items, paymentType, err := validateCreateInvoice(input)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(entity.LineTotal(item.Price, item.Quantity))
	}
	total = ticket.Round(total)
	amount := ticket.Round(input.Payment.Amount)
	rest := ticket.Round(amount.Sub(total))

	if rest.IsNegative() {
		return nil, apperror.NewInsufficientPaymentError(total, amount)
	}

	invoice := &entity.Invoice{
		Total:     total,
		Rest:      rest,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		CreatedBy: owner.ID,
		Payment: &entity.Payment{
			Type:   paymentType,
			Amount: amount,
		},
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		lineItems, err := s.consolidator.Consolidate(ctx, items)
		if err != nil {
			return err
		}
		invoice.LineItems = lineItems
		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create invoice", "owner_id", owner.ID, "error", err)
		return nil, apperror.Persistence(err)
	}

	created, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if created == nil {
		return nil, apperror.Persistence(fmt.Errorf("invoice %d vanished after commit", invoice.ID))
	}

	s.logger.InfoContext(ctx, "invoice created",
		"invoice_id", created.ID,
		"owner_id", owner.ID,
		"items", len(created.LineItems),
		"total", created.Total.StringFixed(2),
	)
	return created, nil
}

func validateCreateInvoice(input *CreateInvoiceInput) ([]RequestedItem, enum.PaymentType, error) {
	var fieldErrors []apperror.FieldError
	addErr := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}

	if input == nil || len(input.Products) == 0 {
		addErr("products", "at least one product is required")
	}

	var items []RequestedItem
	if input != nil {
		items = make([]RequestedItem, 0, len(input.Products))
		for i, p := range input.Products {
			field := fmt.Sprintf("products.%d", i)
			name := strings.TrimSpace(p.Name)
			if name == "" {
				addErr(field+".name", "name is required")
			}
			if p.Price.IsNegative() {
				addErr(field+".price", "price must be greater than or equal to 0")
			}
			qty := 1
			if p.Quantity != nil {
				qty = *p.Quantity
			}
			if qty < 0 {
				addErr(field+".quantity", "quantity must be greater than or equal to 0")
			}
			items = append(items, RequestedItem{
				Name:        p.Name,
				Price:       ticket.Round(p.Price),
				Description: p.Description,
				Quantity:    qty,
			})
		}
	}

	var paymentType enum.PaymentType
	switch {
	case input == nil || input.Payment == nil:
		addErr("payment", "payment is required")
	default:
		t, err := enum.ParsePaymentType(input.Payment.Type)
		if err != nil {
			addErr("payment.type", "type must be one of: cash, cashless")
		}
		paymentType = t
		if input.Payment.Amount.IsNegative() {
			addErr("payment.amount", "amount must be greater than or equal to 0")
		}
	}

	if len(fieldErrors) > 0 {
		return nil, "", apperror.NewValidationError(fieldErrors)
	}
	return items, paymentType, nil
}

// ListInvoicesInput holds the raw query filters of an invoice listing
type ListInvoicesInput struct {
	FromCreatedAt *string
	ToCreatedAt   *string
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
	PaymentType   *string
	Page          int
	Limit         *int
}

// InvoicePage is one page of an invoice listing
type InvoicePage struct {
	Invoices    []entity.Invoice `json:"invoices"`
	CurrentPage int              `json:"current_page"`
	Limit       *int             `json:"limit"`
	LastPage    int              `json:"last_page"`
}

// ListInvoices returns the owner's invoices matching every given filter,
// newest first, paginated when a positive limit is given.
func (s *InvoiceService) ListInvoices(ctx context.Context, ownerID uuid.UUID, input *ListInvoicesInput) (*InvoicePage, error) {
	if input == nil {
		input = &ListInvoicesInput{}
	}
	params, err := s.filterParams(ownerID, input)
	if err != nil {
		return nil, err
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list invoices", "owner_id", ownerID, "error", err)
		return nil, apperror.Persistence(err)
	}
	if invoices == nil {
		invoices = []entity.Invoice{}
	}

	meta := pagination.NewPagination(params.Pagination, total)
	return &InvoicePage{
		Invoices:    invoices,
		CurrentPage: meta.CurrentPage,
		Limit:       meta.Limit,
		LastPage:    meta.LastPage,
	}, nil
}

func (s *InvoiceService) filterParams(ownerID uuid.UUID, input *ListInvoicesInput) (*repository.InvoiceFilterParams, error) {
	params := &repository.InvoiceFilterParams{
		OwnerID:    &ownerID,
		Pagination: &pagination.Params{Page: input.Page, Limit: input.Limit},
	}

	if input.FromCreatedAt != nil {
		from, _, err := s.parseFilterDate(*input.FromCreatedAt)
		if err != nil {
			return nil, apperror.NewInvalidFilterError("from_created_at", *input.FromCreatedAt, "expected dd.mm.yyyy or dd.mm.yyyy HH:MM:SS")
		}
		from = from.UTC()
		params.CreatedFrom = &from
	}
	if input.ToCreatedAt != nil {
		to, dateOnly, err := s.parseFilterDate(*input.ToCreatedAt)
		if err != nil {
			return nil, apperror.NewInvalidFilterError("to_created_at", *input.ToCreatedAt, "expected dd.mm.yyyy or dd.mm.yyyy HH:MM:SS")
		}
		// inclusive bound turned into an exclusive one
		if dateOnly {
			to = to.AddDate(0, 0, 1)
		} else {
			to = to.Add(time.Second)
		}
		to = to.UTC()
		params.CreatedBefore = &to
	}

	var fieldErrors []apperror.FieldError
	if input.MinTotal != nil {
		if input.MinTotal.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_total", Message: "min_total must be greater than or equal to 0"})
		}
		params.MinTotal = input.MinTotal
	}
	if input.MaxTotal != nil {
		if input.MaxTotal.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "max_total", Message: "max_total must be greater than or equal to 0"})
		}
		params.MaxTotal = input.MaxTotal
	}
	if input.PaymentType != nil {
		t, err := enum.ParsePaymentType(*input.PaymentType)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_type", Message: "payment_type must be one of: cash, cashless"})
		}
		params.PaymentType = &t
	}
	if err := params.Pagination.Validate(); err != nil {
		field := "limit"
		if input.Page < 0 {
			field = "page"
		}
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: err.Error()})
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return params, nil
}

// parseFilterDate parses a filter date in the service location and reports
// whether it was a bare date.
func (s *InvoiceService) parseFilterDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(FilterDateTimeLayout, value, s.location); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(FilterDateLayout, value, s.location)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
