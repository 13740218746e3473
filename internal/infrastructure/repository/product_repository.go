package repository

import (
	"context"
	"strings"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/invoice-ticket-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByIdentities(ctx context.Context, ids []entity.ProductIdentity) (map[string]*entity.Product, error) {
	found := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	seen := make(map[string]bool, len(ids))
	conds := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids)*2)
	for _, id := range ids {
		if seen[id.Key()] {
			continue
		}
		seen[id.Key()] = true
		conds = append(conds, "(name = ? AND price = ?)")
		args = append(args, id.Name, id.Price)
	}

	var products []entity.Product
	err := conn(ctx, r.db).
		Where(strings.Join(conds, " OR "), args...).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	for i := range products {
		key := products[i].Identity().Key()
		if _, ok := found[key]; !ok {
			found[key] = &products[i]
		}
	}
	return found, nil
}

func (r *productRepository) CreateBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(products).Error
}
