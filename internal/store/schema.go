package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Layout describes which optional columns the live products table carries.
// The read path selects only what exists; the write path always writes the
// newest shape.
type Layout struct {
	ImageColumn  string // legacy scalar image column name, "" when absent
	HasImages    bool   // JSON-encoded array column
	HasAvailable bool
	HasDiscount  bool
}

// Bootstrap probes the physical schema over a single connection: it detects
// the products layout, widens the images column to text, and makes sure the
// sales ledger exists. Safe to call again after a degraded start; the read
// path retries it until the first success.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.probed {
		return nil
	}

	return s.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		layout, err := probeLayout(ctx, conn)
		if err != nil {
			return fmt.Errorf("%w: probe products layout: %v", ErrQuery, err)
		}
		s.layout = layout

		if layout.HasImages {
			// Older deployments created images as varchar(255), which
			// truncates multi-image payloads.
			_, _ = conn.ExecContext(ctx, `ALTER TABLE products ALTER COLUMN images TYPE text`)
		}

		_, err = conn.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS sales (
				id SERIAL PRIMARY KEY,
				product_name VARCHAR(255),
				quantity INTEGER,
				total NUMERIC,
				date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`)
		if err != nil {
			return fmt.Errorf("%w: create sales table: %v", ErrQuery, err)
		}

		s.probed = true
		return nil
	})
}

func probeLayout(ctx context.Context, conn *sqlx.Conn) (Layout, error) {
	rows, err := conn.QueryxContext(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = 'products'`)
	if err != nil {
		return Layout{}, err
	}
	defer rows.Close()

	var layout Layout
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return Layout{}, err
		}
		switch col {
		case "image", "image_main":
			layout.ImageColumn = col
		case "images":
			layout.HasImages = true
		case "available":
			layout.HasAvailable = true
		case "discount":
			layout.HasDiscount = true
		}
	}
	return layout, rows.Err()
}
