package service

import (
	"context"
	"testing"

	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/sangkips/invoice-ticket-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidator_CreatesMissingProductsOnce(t *testing.T) {
	db := testutil.NewDB(t)
	c := NewConsolidator(repository.NewProductRepository(db))

	items, err := c.Consolidate(context.Background(), []RequestedItem{
		{Name: "Water", Price: dec("12.30"), Quantity: 1},
		{Name: "Bread", Price: dec("20.00"), Quantity: 2},
		{Name: "Water", Price: dec("12.30"), Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, items[0].ProductID, items[2].ProductID)
	assert.NotEqual(t, items[0].ProductID, items[1].ProductID)
	for i, item := range items {
		assert.Equal(t, i, item.Position)
		assert.NotZero(t, item.ProductID)
	}
	assert.Equal(t, 3, items[2].Quantity)

	var count int64
	require.NoError(t, db.Model(&entity.Product{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestConsolidator_ReusesExistingProduct(t *testing.T) {
	db := testutil.NewDB(t)
	existing := &entity.Product{Name: "Water", Price: dec("12.30"), Description: strPtr("still")}
	require.NoError(t, db.Create(existing).Error)

	c := NewConsolidator(repository.NewProductRepository(db))
	items, err := c.Consolidate(context.Background(), []RequestedItem{
		{Name: "Water", Price: dec("12.3"), Description: strPtr("sparkling"), Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, existing.ID, items[0].ProductID)

	var stored entity.Product
	require.NoError(t, db.First(&stored, existing.ID).Error)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "still", *stored.Description)
}

func TestConsolidator_PriceIsPartOfIdentity(t *testing.T) {
	db := testutil.NewDB(t)
	c := NewConsolidator(repository.NewProductRepository(db))

	items, err := c.Consolidate(context.Background(), []RequestedItem{
		{Name: "Water", Price: dec("12.30"), Quantity: 1},
		{Name: "Water", Price: dec("13.00"), Quantity: 1},
	})
	require.NoError(t, err)
	assert.NotEqual(t, items[0].ProductID, items[1].ProductID)
}
