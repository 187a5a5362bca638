package idempotency

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portidempotency "github.com/alanyang/folio/internal/port/idempotency"
)

var _ portidempotency.Store = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Check looks up an existing idempotency key. Returns the stored response,
// whether the key exists, and any error.
func (r *Repository) Check(ctx context.Context, key string) (portidempotency.Record, bool, error) {
	query := `SELECT status_code, result_body FROM processed_operations WHERE idempotency_key = $1`

	var rec portidempotency.Record
	err := r.pool.QueryRow(ctx, query, key).Scan(&rec.Status, &rec.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return portidempotency.Record{}, false, nil
		}
		return portidempotency.Record{}, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	return rec, true, nil
}

// Store records a processed operation keyed by the idempotency key.
// The first stored response for a key wins.
func (r *Repository) Store(ctx context.Context, key, opType string, rec portidempotency.Record) error {
	query := `
		INSERT INTO processed_operations (idempotency_key, operation_type, status_code, result_body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (idempotency_key) DO NOTHING`

	body := rec.Body
	if body == nil {
		body = []byte{}
	}
	_, err := r.pool.Exec(ctx, query, key, opType, rec.Status, body)
	if err != nil {
		return fmt.Errorf("storing idempotency key: %w", err)
	}
	return nil
}
