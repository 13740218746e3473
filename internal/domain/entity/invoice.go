package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Invoice is an append-only sale record with its payment and line items
type Invoice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`
	Rest      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`

	// Relationships
	Owner     User       `gorm:"foreignKey:CreatedBy" json:"created_by"`
	Payment   *Payment   `gorm:"foreignKey:InvoiceID" json:"payment"`
	LineItems []LineItem `gorm:"foreignKey:InvoiceID" json:"products"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// MarshalJSON converts decimal amounts to numbers for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	items := i.LineItems
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(&struct {
		Alias
		LineItems []LineItem `json:"products"`
		Total     float64    `json:"total"`
		Rest      float64    `json:"rest"`
	}{
		Alias:     Alias(i),
		LineItems: items,
		Total:     i.Total.InexactFloat64(),
		Rest:      i.Rest.InexactFloat64(),
	})
}

// LineItem links an invoice to a product with the quantity and the price it was sold at
type LineItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	InvoiceID uint            `gorm:"not null;index" json:"-"`
	ProductID uint            `gorm:"not null;index" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}

// LineTotal is unit price times quantity, rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Total returns the line total. It is derived, never stored.
func (li *LineItem) Total() decimal.Decimal {
	return LineTotal(li.UnitPrice, li.Quantity)
}

// MarshalJSON flattens the product into the line item
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description *string `json:"description"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
		Total       float64 `json:"total"`
	}{
		Name:        li.Product.Name,
		Price:       li.Product.Price.InexactFloat64(),
		Description: li.Product.Description,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice.InexactFloat64(),
		Total:       li.Total().InexactFloat64(),
	})
}

// LineItemView is the flat read-side projection of a line item joined with its product.
type LineItemView struct {
	InvoiceID   uint
	ProductID   uint
	Position    int
	Name        string
	Price       decimal.Decimal
	Description *string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineItem rebuilds the line item with its product from the view.
func (v LineItemView) LineItem() LineItem {
	return LineItem{
		InvoiceID: v.InvoiceID,
		ProductID: v.ProductID,
		Position:  v.Position,
		Quantity:  v.Quantity,
		UnitPrice: v.UnitPrice,
		Product: Product{
			ID:          v.ProductID,
			Name:        v.Name,
			Price:       v.Price,
			Description: v.Description,
		},
	}
}

// Payment is the single payment an invoice was settled with
type Payment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	InvoiceID uint             `gorm:"not null;uniqueIndex" json:"-"`
	Type      enum.PaymentType `gorm:"size:16;not null" json:"type"`
	Amount    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"-"`
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// MarshalJSON converts the amount to a number for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: p.Amount.InexactFloat64(),
	})
}
