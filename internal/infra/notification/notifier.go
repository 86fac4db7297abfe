package notification

import (
	"context"
	"encoding/json"

	"stayhub/internal/infra/repository"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

// JobNotifier records notification jobs in the outbox table. Callers run it
// after commit; delivery is the worker's problem, not the request path's.
type JobNotifier struct {
	jobRepo *repository.NotificationJobRepository
	db      *pgxpool.Pool
	clock   clock.Clock
}

func NewJobNotifier(jobRepo *repository.NotificationJobRepository, db *pgxpool.Pool, clk clock.Clock) *JobNotifier {
	return &JobNotifier{
		jobRepo: jobRepo,
		db:      db,
		clock:   clk,
	}
}

func (n *JobNotifier) NotifyHost(ctx context.Context, ev usecase.NotificationEvent) error {
	return n.enqueue(ctx, "host", ev)
}

func (n *JobNotifier) NotifyGuest(ctx context.Context, ev usecase.NotificationEvent) error {
	return n.enqueue(ctx, "guest", ev)
}

func (n *JobNotifier) enqueue(ctx context.Context, kind string, ev usecase.NotificationEvent) error {
	payload, err := json.Marshal(map[string]string{
		"booking_id":  ev.BookingID.String(),
		"property_id": ev.PropertyID.String(),
		"guest_id":    ev.GuestID.String(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification payload")
	}

	if err := n.jobRepo.CreateJob(ctx, n.db, kind, ev.Topic, payload, n.clock.Now()); err != nil {
		return errs.Wrap(err, "failed to enqueue notification job")
	}
	return nil
}
