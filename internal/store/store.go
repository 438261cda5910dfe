package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-service/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store executes parameterized statements against the relational store
// through a bounded connection pool. When the pool is at capacity callers
// queue on acquisition instead of failing.
type Store struct {
	db           *sqlx.DB
	queryTimeout time.Duration

	mu     sync.Mutex
	layout Layout
	probed bool
}

// NewStore opens the pool. A failed connectivity probe is reported, not
// fatal: the caller may keep serving in a degraded state and data
// operations fail with ErrConnectivity until the store is reachable.
func NewStore(cfg config.DatabaseConfig) (*Store, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{
		db:           db,
		queryTimeout: time.Duration(cfg.QueryTimeout) * time.Second,
	}

	if err := db.Ping(); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	return s, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Layout returns the physical products layout detected by Bootstrap.
func (s *Store) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// WithConn runs fn against a single pooled connection, for multi-statement
// sequences like the startup schema probe. The connection goes back to the
// pool on every exit path.
func (s *Store) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// opCtx applies the configured statement timeout, if any.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
