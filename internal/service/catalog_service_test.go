package service

import (
	"context"
	"testing"

	"catalog-service/internal/schema"

	"github.com/stretchr/testify/assert"
)

func TestCreateProductRequiresName(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil)

	_, err := svc.CreateProduct(context.Background(), schema.ProductInput{Name: "   "})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProductRequiresName(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil)

	err := svc.UpdateProduct(context.Background(), 1, schema.ProductInput{})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestListAfterCreateScenario(t *testing.T) {
	// Full create-then-list behavior needs a database; the encode half of
	// the contract is covered in the schema package.
	t.Skip("Integration test - requires database")
}
