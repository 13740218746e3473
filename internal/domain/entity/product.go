package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue entry identified by its (name, price) pair
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null;index:idx_product_identity,priority:1" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;index:idx_product_identity,priority:2" json:"-"`
	Description *string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Identity returns the (name, price) pair the product is matched by.
func (p *Product) Identity() ProductIdentity {
	return ProductIdentity{Name: p.Name, Price: p.Price}
}

// MarshalJSON renders the price as a number with two decimals
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.Price.InexactFloat64(),
	})
}

// ProductIdentity is the matching key of a product.
type ProductIdentity struct {
	Name  string
	Price decimal.Decimal
}

// Key is a comparable form of the identity, usable as a map key.
func (i ProductIdentity) Key() string {
	return i.Name + "\x00" + i.Price.StringFixed(2)
}
