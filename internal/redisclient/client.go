package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const listingKey = "catalog:products"

// Client caches the product listing. Every cache failure is soft: callers
// fall through to the database.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to Redis and verifies connectivity.
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetListing returns the cached product listing and whether it was found.
func (c *Client) GetListing(ctx context.Context) ([]models.Product, bool, error) {
	data, err := c.rdb.Get(ctx, listingKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		// Unreadable cache entries are dropped, not served.
		_ = c.rdb.Del(ctx, listingKey).Err()
		return nil, false, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return products, true, nil
}

// SetListing stores the product listing with the configured TTL.
func (c *Client) SetListing(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return c.rdb.Set(ctx, listingKey, data, c.ttl).Err()
}

// InvalidateListing drops the cached listing after any product write.
func (c *Client) InvalidateListing(ctx context.Context) error {
	return c.rdb.Del(ctx, listingKey).Err()
}
