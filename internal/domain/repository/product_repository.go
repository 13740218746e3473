package repository

import (
	"context"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// FindByIdentities returns, in one query, the existing products matching any of
	// the (name, price) pairs. When several rows share an identity the oldest wins.
	FindByIdentities(ctx context.Context, ids []entity.ProductIdentity) (map[string]*entity.Product, error)
	// CreateBatch inserts products and fills in their IDs
	CreateBatch(ctx context.Context, products []*entity.Product) error
}
