package models

import "time"

// Product is the canonical, client-facing shape of a catalog entry. The
// Images slice is never nil and Available is always concrete, regardless of
// which physical column layout the row came from.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount"`
	Available   bool     `json:"available"`
	Images      []string `json:"images"`
}

// Sale is an append-only ledger entry. ProductName is a snapshot taken at
// sale time, not a foreign key, so sales stay valid after the product is
// renamed or deleted.
type Sale struct {
	ID          int64     `db:"id" json:"id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Total       float64   `db:"total" json:"total"`
	Date        time.Time `db:"date" json:"date"`
}
