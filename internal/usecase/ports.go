package usecase

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) (uuid.UUID, error)
	FindOccupiedPeriods(ctx context.Context, tx infra.DBTX, propertyID uuid.UUID, exclude *uuid.UUID) ([]booking.StayPeriod, error)
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error)
	FindForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error)
	UpdateStatusCAS(ctx context.Context, tx infra.DBTX, id uuid.UUID, from, to booking.Status) (bool, error)
	Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error
	FindByGuestID(ctx context.Context, db infra.DBTX, guestID uuid.UUID) ([]*readmodel.BookingListRM, error)
}

type PropertyRepository interface {
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.PropertyRM, error)
	FindActive(ctx context.Context, db infra.DBTX) ([]*readmodel.PropertyRM, error)
}

type AvailabilityBlockRepository interface {
	Create(ctx context.Context, tx infra.DBTX, blk *booking.AvailabilityBlock) (uuid.UUID, error)
	FindPeriods(ctx context.Context, db infra.DBTX, propertyID uuid.UUID) ([]booking.StayPeriod, error)
	FindByPropertyID(ctx context.Context, db infra.DBTX, propertyID uuid.UUID) ([]*readmodel.AvailabilityBlockRM, error)
}

type AnalyticsRepository interface {
	CountByStatus(ctx context.Context, db infra.DBTX, propertyID *uuid.UUID) (map[string]int64, error)
	SumRevenueMinor(ctx context.Context, db infra.DBTX, propertyID *uuid.UUID, statuses []string) (int64, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, db infra.DBTX, email string) (*readmodel.AuthorizedUserRM, error)
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.AuthorizedUserRM, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, db infra.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, db infra.DBTX, key, userID uuid.UUID) (*readmodel.IdempotencyKeyRM, error)
	ClaimExpired(ctx context.Context, db infra.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, tx infra.DBTX, key, userID, resultBookingID uuid.UUID) error
}

// NotificationEvent is the narrow payload handed to the notification
// collaborator. Dispatch is fire-and-forget after commit.
type NotificationEvent struct {
	BookingID  uuid.UUID
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	Topic      string
}

type Notifier interface {
	NotifyHost(ctx context.Context, ev NotificationEvent) error
	NotifyGuest(ctx context.Context, ev NotificationEvent) error
}

// CodeStore is the identity collaborator's one-time login code storage.
type CodeStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
}
