package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create inserts the invoice row, then its payment and line items. Products
// must already exist; they are referenced by ProductID only.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	db := conn(ctx, r.db)

	if err := db.Omit(clause.Associations).Create(invoice).Error; err != nil {
		return translate(err, "Invoice already exists")
	}

	if invoice.Payment != nil {
		invoice.Payment.InvoiceID = invoice.ID
		if err := db.Create(invoice.Payment).Error; err != nil {
			return translate(err, "Invoice already has a payment")
		}
	}

	if len(invoice.LineItems) > 0 {
		for i := range invoice.LineItems {
			invoice.LineItems[i].InvoiceID = invoice.ID
			invoice.LineItems[i].ProductID = invoice.LineItems[i].Product.ID
		}
		if err := db.Omit(clause.Associations).Create(&invoice.LineItems).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	invoices := []entity.Invoice{invoice}
	if err := r.loadRelations(ctx, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	filtered := func() *gorm.DB {
		return conn(ctx, r.db).Model(&entity.Invoice{}).Scopes(InvoiceFilter(params))
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params != nil && params.Pagination.PastEnd(total) {
		return []entity.Invoice{}, total, nil
	}

	query := filtered().Select("invoices.*")
	if params != nil {
		query = query.Scopes(Paginate(params.Pagination))
	}
	err := query.
		Order("invoices.created_at DESC").
		Order("invoices.id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadRelations(ctx, invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// loadRelations fills owner, payment and line items of every invoice with one
// query per relation.
func (r *invoiceRepository) loadRelations(ctx context.Context, invoices []entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	db := conn(ctx, r.db)
	ids := make([]uint, 0, len(invoices))
	ownerIDs := make([]uuid.UUID, 0, len(invoices))
	seenOwner := make(map[uuid.UUID]bool)
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
		if !seenOwner[inv.CreatedBy] {
			seenOwner[inv.CreatedBy] = true
			ownerIDs = append(ownerIDs, inv.CreatedBy)
		}
	}

	var owners []entity.User
	if err := db.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return err
	}
	ownerByID := make(map[uuid.UUID]entity.User, len(owners))
	for _, u := range owners {
		ownerByID[u.ID] = u
	}

	var payments []entity.Payment
	if err := db.Where("invoice_id IN ?", ids).Find(&payments).Error; err != nil {
		return err
	}
	paymentByInvoice := make(map[uint]*entity.Payment, len(payments))
	for i := range payments {
		paymentByInvoice[payments[i].InvoiceID] = &payments[i]
	}

	var views []entity.LineItemView
	err := db.Table("line_items").
		Select("line_items.invoice_id, line_items.product_id, line_items.position, " +
			"products.name, products.price, products.description, " +
			"line_items.quantity, line_items.unit_price").
		Joins("JOIN products ON products.id = line_items.product_id").
		Where("line_items.invoice_id IN ?", ids).
		Order("line_items.invoice_id, line_items.position, line_items.id").
		Scan(&views).Error
	if err != nil {
		return err
	}
	itemsByInvoice := make(map[uint][]entity.LineItem, len(invoices))
	for _, v := range views {
		itemsByInvoice[v.InvoiceID] = append(itemsByInvoice[v.InvoiceID], v.LineItem())
	}

	for i := range invoices {
		invoices[i].Owner = ownerByID[invoices[i].CreatedBy]
		invoices[i].Payment = paymentByInvoice[invoices[i].ID]
		invoices[i].LineItems = itemsByInvoice[invoices[i].ID]
		if invoices[i].LineItems == nil {
			invoices[i].LineItems = []entity.LineItem{}
		}
	}
	return nil
}
