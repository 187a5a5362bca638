package idempotency

import "context"

//go:generate mockgen -destination=../../mocks/idempotency_store.go -package=mocks -mock_names=Store=MockIdempotencyStore . Store

// Record is the response first produced for an idempotency key.
type Record struct {
	Status int
	Body   []byte
}

type Store interface {
	// Check returns the stored record for key and whether one exists.
	Check(ctx context.Context, key string) (Record, bool, error)
	Store(ctx context.Context, key, opType string, rec Record) error
}
