package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/redisclient"
	"catalog-service/internal/schema"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrValidation marks a rejected payload. The HTTP layer maps it to a 400.
var ErrValidation = errors.New("invalid payload")

// CatalogService orchestrates product CRUD and the append-only sales
// ledger. The cache and event publisher are optional: a nil cache means
// every listing hits the store, a nil publisher means no events.
type CatalogService struct {
	store          *store.Store
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	store *store.Store,
	cache *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *CatalogService {
	return &CatalogService{
		store:          store,
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateProductResponse carries the generated identifier back to the client
type CreateProductResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// SaleRequest represents a sale to append to the ledger
type SaleRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// ListProducts returns every product in canonical form. A storage failure
// degrades to an empty listing: the failure is logged and counted, never
// propagated, so the read path stays available.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if s.cache != nil {
		cached, hit, err := s.cache.GetListing(ctx)
		if err != nil {
			s.logger.Warn("Listing cache read failed, falling through to store", zap.Error(err))
		} else if hit {
			util.CacheHitsTotal.Inc()
			return cached
		}
		util.CacheMissesTotal.Inc()
	}

	rows, err := s.store.ListProducts(ctx)
	if err != nil {
		util.ListFailuresTotal.Inc()
		s.logger.Error("Product listing failed, returning empty result", zap.Error(err))
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p, anomalies := schema.DecodeProduct(row)
		for _, field := range anomalies {
			util.DecodeAnomaliesTotal.WithLabelValues(field).Inc()
			s.logger.Warn("Malformed stored value decoded to default",
				zap.Int64("product_id", row.ID),
				zap.String("field", field))
		}
		products = append(products, p)
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, products); err != nil {
			s.logger.Warn("Failed to populate listing cache", zap.Error(err))
		}
	}

	return products
}

// CreateProduct encodes the payload to the newest storage shape and inserts
// a new row. Insert failures surface to the caller.
func (s *CatalogService) CreateProduct(ctx context.Context, input schema.ProductInput) (*CreateProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	rec := schema.EncodeProduct(input)
	if rec.Name == "" {
		util.WritesFailedTotal.WithLabelValues("create", "validation").Inc()
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	id, err := s.store.InsertProduct(ctx, rec)
	if err != nil {
		util.WritesFailedTotal.WithLabelValues("create", "store").Inc()
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created", zap.Int64("product_id", id), zap.String("name", rec.Name))

	s.invalidateListing(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductCreated, id, rec.Name)

	return &CreateProductResponse{Success: true, ID: id}, nil
}

// UpdateProduct overwrites the row matching id. Updating a missing id is a
// successful no-op: the statement matches zero rows and nothing changes.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input schema.ProductInput) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	rec := schema.EncodeProduct(input)
	if rec.Name == "" {
		util.WritesFailedTotal.WithLabelValues("update", "validation").Inc()
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	affected, err := s.store.UpdateProduct(ctx, id, rec)
	if err != nil {
		util.WritesFailedTotal.WithLabelValues("update", "store").Inc()
		return err
	}

	util.ProductsUpdatedTotal.Inc()
	if affected == 0 {
		s.logger.Info("Update matched no rows", zap.Int64("product_id", id))
	}

	s.invalidateListing(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductUpdated, id, rec.Name)

	return nil
}

// DeleteProduct removes the row matching id; a missing id is a successful
// no-op. Sales referencing the product stay untouched.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	affected, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		util.WritesFailedTotal.WithLabelValues("delete", "store").Inc()
		return err
	}

	util.ProductsDeletedTotal.Inc()
	if affected == 0 {
		s.logger.Info("Delete matched no rows", zap.Int64("product_id", id))
	}

	s.invalidateListing(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductDeleted, id, "")

	return nil
}

// RecordSale appends a row to the sales ledger. The product name is a
// snapshot; no referential check is made against the products table.
func (s *CatalogService) RecordSale(ctx context.Context, req SaleRequest) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.RecordSale")
	defer span.End()

	sale := &models.Sale{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Total:       req.Total,
	}

	if err := s.store.InsertSale(ctx, sale); err != nil {
		util.WritesFailedTotal.WithLabelValues("sale", "store").Inc()
		return err
	}

	util.SalesRecordedTotal.Inc()
	s.logger.Info("Sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.String("product_name", sale.ProductName),
		zap.Int("quantity", sale.Quantity))

	if s.eventPublisher != nil {
		event := &models.SaleRecordedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeSaleRecorded,
				Timestamp: time.Now(),
			},
			SaleID:      sale.ID,
			ProductName: sale.ProductName,
			Quantity:    sale.Quantity,
			Total:       sale.Total,
		}
		if err := s.eventPublisher.PublishSaleRecorded(ctx, event); err != nil {
			s.logger.Error("Failed to publish SaleRecorded event", zap.Error(err))
		}
	}

	return nil
}

// ListSales returns the ledger, newest first.
func (s *CatalogService) ListSales(ctx context.Context) ([]models.Sale, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListSales")
	defer span.End()

	return s.store.ListSales(ctx)
}

func (s *CatalogService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing cache", zap.Error(err))
	}
}

func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, id int64, name string) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.ProductEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		ProductID: id,
		Name:      strings.TrimSpace(name),
	}
	if err := s.eventPublisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish product event",
			zap.String("event_type", eventType), zap.Error(err))
	}
}
