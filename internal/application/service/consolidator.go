package service

import (
	"context"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RequestedItem is one product line as submitted by the client, price already rounded
type RequestedItem struct {
	Name        string
	Price       decimal.Decimal
	Description *string
	Quantity    int
}

func (i RequestedItem) identity() entity.ProductIdentity {
	return entity.ProductIdentity{Name: i.Name, Price: i.Price}
}

// Consolidator resolves requested items to catalogue products
type Consolidator struct {
	productRepo repository.ProductRepository
}

// NewConsolidator creates a new consolidator
func NewConsolidator(productRepo repository.ProductRepository) *Consolidator {
	return &Consolidator{productRepo: productRepo}
}

// Consolidate returns one line item per requested item, in request order.
// Items whose (name, price) already exists reuse that product untouched;
// the rest get a product created once per distinct identity.
func (c *Consolidator) Consolidate(ctx context.Context, items []RequestedItem) ([]entity.LineItem, error) {
	ids := make([]entity.ProductIdentity, len(items))
	for i, item := range items {
		ids[i] = item.identity()
	}

	byKey, err := c.productRepo.FindByIdentities(ctx, ids)
	if err != nil {
		return nil, err
	}

	var created []*entity.Product
	for _, item := range items {
		key := item.identity().Key()
		if _, ok := byKey[key]; ok {
			continue
		}
		p := &entity.Product{
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
		}
		byKey[key] = p
		created = append(created, p)
	}

	if err := c.productRepo.CreateBatch(ctx, created); err != nil {
		return nil, err
	}

	lineItems := make([]entity.LineItem, len(items))
	for i, item := range items {
		product := byKey[item.identity().Key()]
		lineItems[i] = entity.LineItem{
			ProductID: product.ID,
			Position:  i,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Product:   *product,
		}
	}
	return lineItems, nil
}
