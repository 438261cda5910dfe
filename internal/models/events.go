package models

import "time"

// Event types
const (
	EventTypeProductCreated = "PRODUCT_CREATED"
	EventTypeProductUpdated = "PRODUCT_UPDATED"
	EventTypeProductDeleted = "PRODUCT_DELETED"
	EventTypeSaleRecorded   = "SALE_RECORDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent published when a product is created, updated or deleted
type ProductEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
}

// SaleRecordedEvent published when a sale is appended to the ledger
type SaleRecordedEvent struct {
	BaseEvent
	SaleID      int64   `json:"sale_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}
