package shared

import (
	"context"

	"stayhub/internal/infra"
)

// UnitOfWork owns transaction boundaries so use cases stay decoupled from
// the concrete pool and can run against fakes.
type UnitOfWork interface {
	// Within: default-isolation transaction for write operations
	Within(ctx context.Context, fn func(tx infra.DBTX) error) error
	// WithinSerializable: SERIALIZABLE transaction with bounded retry on
	// serialization failure
	WithinSerializable(ctx context.Context, fn func(tx infra.DBTX) error) error
	// DB: non-transactional query surface for single reads
	DB() infra.DBTX
}
