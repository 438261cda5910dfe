package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "Total number of products created",
	})

	ProductsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "Total number of product updates applied",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "Total number of products deleted",
	})

	SalesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_sales_recorded_total",
		Help: "Total number of sales appended to the ledger",
	})

	WritesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_writes_failed_total",
		Help: "Total number of failed catalog writes",
	}, []string{"op", "reason"})

	ListFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_list_failures_total",
		Help: "Listings that degraded to an empty result because the store failed",
	})

	DecodeAnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_decode_anomalies_total",
		Help: "Stored values that were malformed and decoded to a safe default",
	}, []string{"field"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Product listings served from cache",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Product listings that fell through to the store",
	})

	AuditEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_audit_events_total",
		Help: "Catalog events observed by the audit worker",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
