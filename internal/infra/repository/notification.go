package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
)

// NotificationJobRepository stores outbound notification jobs for a worker
// to deliver. Rows are written after the booking transaction commits; the
// booking itself never depends on them.
type NotificationJobRepository struct {
	db infra.DBTX
}

func NewNotificationJobRepository(db infra.DBTX) *NotificationJobRepository {
	return &NotificationJobRepository{db: db}
}

func (r *NotificationJobRepository) CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	const q = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := db.Exec(ctx, q, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}
