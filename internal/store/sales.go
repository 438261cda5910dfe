package store

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
)

// InsertSale appends a ledger row. The date column defaults to the insert
// timestamp; there are no update or delete paths for sales.
func (s *Store) InsertSale(ctx context.Context, sale *models.Sale) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err := s.db.GetContext(ctx, &sale.ID, `
		INSERT INTO sales (product_name, quantity, total)
		VALUES ($1, $2, $3)
		RETURNING id`,
		sale.ProductName, sale.Quantity, sale.Total)
	if err != nil {
		return fmt.Errorf("%w: insert sale: %v", ErrQuery, err)
	}
	return nil
}

// ListSales reads the ledger, newest first.
func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var sales []models.Sale
	err := s.db.SelectContext(ctx, &sales,
		"SELECT id, product_name, quantity, total, date FROM sales ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("%w: list sales: %v", ErrQuery, err)
	}
	return sales, nil
}
