package worker

import (
	"context"
	"log"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// AuditWorker consumes the catalog event stream and turns it into a
// structured audit trail plus per-type metrics. It is read-only: handler
// failures are logged and the message is committed anyway.
type AuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer) *AuditWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler()

	eventHandler.OnProductEvent(func(ctx context.Context, event *models.ProductEvent) error {
		util.AuditEventsTotal.WithLabelValues(event.EventType).Inc()
		logger.Info("audit",
			zap.String("event_type", event.EventType),
			zap.String("event_id", event.EventID),
			zap.Int64("product_id", event.ProductID),
			zap.String("name", event.Name),
			zap.Time("at", event.Timestamp))
		return nil
	})

	eventHandler.OnSaleRecorded(func(ctx context.Context, event *models.SaleRecordedEvent) error {
		util.AuditEventsTotal.WithLabelValues(event.EventType).Inc()
		logger.Info("audit",
			zap.String("event_type", event.EventType),
			zap.String("event_id", event.EventID),
			zap.Int64("sale_id", event.SaleID),
			zap.String("product_name", event.ProductName),
			zap.Int("quantity", event.Quantity),
			zap.Float64("total", event.Total))
		return nil
	})

	return &AuditWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	log.Println("Starting audit worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	log.Println("Stopping audit worker...")
	return w.consumer.Close()
}
