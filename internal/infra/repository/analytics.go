package repository

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AnalyticsRepository struct {
	db infra.DBTX
}

func NewAnalyticsRepository(db infra.DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CountByStatus groups stored bookings by status, optionally scoped to one
// property. Plain read-committed reads; analytics carries no safety invariant.
func (r *AnalyticsRepository) CountByStatus(ctx context.Context, db infra.DBTX, propertyID *uuid.UUID) (map[string]int64, error) {
	const q = `
		SELECT status, count(*)
		FROM bookings
		WHERE $1::uuid IS NULL OR property_id = $1
		GROUP BY status`

	rows, err := db.Query(ctx, q, pgconv.UUIDPtrToPgtype(propertyID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}

	return counts, nil
}

// SumRevenueMinor sums total_minor over the given status set. COALESCE keeps
// the empty table a zero, never an error.
func (r *AnalyticsRepository) SumRevenueMinor(ctx context.Context, db infra.DBTX, propertyID *uuid.UUID, statuses []string) (int64, error) {
	const q = `
		SELECT COALESCE(SUM(total_minor), 0)
		FROM bookings
		WHERE ($1::uuid IS NULL OR property_id = $1)
		  AND status = ANY($2)`

	var sum int64
	if err := db.QueryRow(ctx, q, pgconv.UUIDPtrToPgtype(propertyID), statuses).Scan(&sum); err != nil {
		return 0, infra.WrapRepoErr("failed to sum booking revenue", err)
	}

	return sum, nil
}
