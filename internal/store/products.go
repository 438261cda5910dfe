package store

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/schema"
)

// ListProducts reads every products row in whatever physical shape the
// table has. Columns absent from the detected layout stay null in the
// returned rows; the normalizer owns turning them into canonical values.
func (s *Store) ListProducts(ctx context.Context) ([]schema.ProductRow, error) {
	if err := s.Bootstrap(ctx); err != nil {
		return nil, err
	}
	layout := s.Layout()

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	cols := []string{"id", "name", "description", "price"}
	if layout.HasDiscount {
		cols = append(cols, "discount")
	}
	if layout.HasAvailable {
		cols = append(cols, "available")
	}
	if layout.ImageColumn != "" {
		cols = append(cols, layout.ImageColumn)
	}
	if layout.HasImages {
		cols = append(cols, "images")
	}

	query := fmt.Sprintf("SELECT %s FROM products ORDER BY id", strings.Join(cols, ", "))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrQuery, err)
	}
	defer rows.Close()

	var out []schema.ProductRow
	for rows.Next() {
		var r schema.ProductRow
		dest := []interface{}{&r.ID, &r.Name, &r.Description, &r.Price}
		if layout.HasDiscount {
			dest = append(dest, &r.Discount)
		}
		if layout.HasAvailable {
			dest = append(dest, &r.Available)
		}
		if layout.ImageColumn != "" {
			dest = append(dest, &r.Image)
		}
		if layout.HasImages {
			dest = append(dest, &r.Images)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan product row: %v", ErrQuery, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate products: %v", ErrQuery, err)
	}

	return out, nil
}

// InsertProduct writes a new row in the newest layout and returns the
// generated id.
func (s *Store) InsertProduct(ctx context.Context, rec schema.ProductRecord) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO products (name, description, price, discount, available, images)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		rec.Name, rec.Description, rec.Price, rec.Discount, rec.Available, rec.Images)
	if err != nil {
		return 0, fmt.Errorf("%w: insert product: %v", ErrQuery, err)
	}
	return id, nil
}

// UpdateProduct overwrites the row matching id. Reports how many rows
// matched; a miss is not an error.
func (s *Store) UpdateProduct(ctx context.Context, id int64, rec schema.ProductRecord) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, description = $2, price = $3, discount = $4, available = $5, images = $6
		WHERE id = $7`,
		rec.Name, rec.Description, rec.Price, rec.Discount, rec.Available, rec.Images, id)
	if err != nil {
		return 0, fmt.Errorf("%w: update product %d: %v", ErrQuery, id, err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// DeleteProduct removes the row matching id. A miss is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete product %d: %v", ErrQuery, id, err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
