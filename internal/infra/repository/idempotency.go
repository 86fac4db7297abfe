package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct {
	db infra.DBTX
}

func NewIdempotencyRepository(db infra.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// TryInsert claims the key. ON CONFLICT DO NOTHING keeps the first writer's
// row; Get afterwards tells the caller which case it is in.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, db infra.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	const q = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`

	if _, err := db.Exec(ctx, q, key, userID, endpoint, requestHash, expiresAt); err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, db infra.DBTX, key, userID uuid.UUID) (*readmodel.IdempotencyKeyRM, error) {
	const q = `
		SELECT key, user_id, endpoint, request_hash, status, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	var (
		rm        readmodel.IdempotencyKeyRM
		resultID  pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := db.QueryRow(ctx, q, key, userID).Scan(
		&rm.Key, &rm.UserID, &rm.Endpoint, &rm.RequestHash, &rm.Status, &resultID, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rm.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultID)
	rm.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)

	return &rm, nil
}

// ClaimExpired takes over a key whose expiry has passed. Expiry is checked
// at read/claim time; there is no background eviction.
func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, db infra.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	const q = `
		UPDATE idempotency_keys
		SET request_hash = $3, status = 'processing', result_booking_id = NULL, expires_at = $4
		WHERE key = $1 AND user_id = $2 AND expires_at <= now()`

	tag, err := db.Exec(ctx, q, key, userID, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, tx infra.DBTX, key, userID, resultBookingID uuid.UUID) error {
	const q = `
		UPDATE idempotency_keys
		SET status = 'completed', result_booking_id = $3
		WHERE key = $1 AND user_id = $2`

	if _, err := tx.Exec(ctx, q, key, userID, resultBookingID); err != nil {
		return infra.WrapRepoErr("failed to mark idempotency key completed", err)
	}

	return nil
}
