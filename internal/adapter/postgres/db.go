package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("postgres: handle closed")

func Connect(ctx context.Context, connString string, maxConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// Handle owns the process-wide connection pool. The pool is dialed on the
// first successful Acquire and shared afterwards; a failed dial is retried
// on the next call.
type Handle struct {
	dsn      string
	maxConns int32

	mu     sync.Mutex
	pool   *pgxpool.Pool
	closed bool
}

func NewHandle(dsn string, maxConns int32) *Handle {
	return &Handle{dsn: dsn, maxConns: maxConns}
}

func (h *Handle) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.pool != nil {
		return h.pool, nil
	}

	pool, err := Connect(ctx, h.dsn, h.maxConns)
	if err != nil {
		return nil, err
	}
	h.pool = pool
	return pool, nil
}

// Ping reports whether the pool is established and reachable.
func (h *Handle) Ping(ctx context.Context) error {
	h.mu.Lock()
	pool := h.pool
	h.mu.Unlock()

	if pool == nil {
		return errors.New("postgres: not connected")
	}
	return pool.Ping(ctx)
}

func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pool != nil {
		h.pool.Close()
		h.pool = nil
	}
	h.closed = true
}
