package store

import (
	"context"
	"testing"

	"catalog-service/config"
	"catalog-service/internal/models"
	"catalog-service/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host: "localhost", Port: "5432",
		User: "catalog", Password: "secret",
		Name: "catalog_test", SSLMode: "disable",
		MaxOpenConns: 5,
	}
}

func TestProductRoundTrip(t *testing.T) {
	// This is an integration test - requires an actual database.
	t.Skip("Integration test - requires database")

	s, err := NewStore(testConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Bootstrap(ctx))

	rec := schema.ProductRecord{
		Name:      "Widget",
		Price:     9.99,
		Available: 1,
		Images:    `["a.png","b.png"]`,
	}

	id, err := s.InsertProduct(ctx, rec)
	require.NoError(t, err)
	assert.NotZero(t, id)

	rows, err := s.ListProducts(ctx)
	require.NoError(t, err)

	var found bool
	for _, row := range rows {
		if row.ID != id {
			continue
		}
		found = true
		p, anomalies := schema.DecodeProduct(row)
		assert.Empty(t, anomalies)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, 9.99, p.Price)
		assert.True(t, p.Available)
		assert.Equal(t, []string{"a.png", "b.png"}, p.Images)
	}
	assert.True(t, found)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	t.Skip("Integration test - requires database")

	s, err := NewStore(testConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Bootstrap(ctx))

	affected, err := s.UpdateProduct(ctx, 999999999, schema.ProductRecord{Name: "Ghost", Images: "[]"})
	assert.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = s.DeleteProduct(ctx, 999999999)
	assert.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSaleSurvivesProductDelete(t *testing.T) {
	t.Skip("Integration test - requires database")

	s, err := NewStore(testConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Bootstrap(ctx))

	id, err := s.InsertProduct(ctx, schema.ProductRecord{Name: "Widget", Images: "[]", Available: 1})
	require.NoError(t, err)

	sale := &models.Sale{ProductName: "Widget", Quantity: 2, Total: 19.98}
	require.NoError(t, s.InsertSale(ctx, sale))
	require.NotZero(t, sale.ID)

	_, err = s.DeleteProduct(ctx, id)
	require.NoError(t, err)

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)

	var found bool
	for _, got := range sales {
		if got.ID == sale.ID {
			found = true
			assert.Equal(t, "Widget", got.ProductName)
			assert.Equal(t, 2, got.Quantity)
		}
	}
	assert.True(t, found)
}
