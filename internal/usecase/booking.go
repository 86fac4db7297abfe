package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound       = errors.New("property not found")
	ErrPropertyInactive       = errors.New("property is not active")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidStayRange       = errors.New("invalid stay range")
	ErrBookingConflict        = errors.New("range conflicts with an existing reservation")
	ErrHostBlockConflict      = errors.New("range conflicts with a host availability block")
	ErrStaleStatus            = errors.New("booking status changed concurrently")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrForbidden              = errors.New("actor is not allowed to perform this action")
	ErrIdempotencyKeyRequired = errors.New("idempotency-key header required")
	ErrDuplicateRequest       = errors.New("duplicate request with different parameters")

	// Error markers for categorization
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

type CreateBookingParams struct {
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
}

type BookingUseCase interface {
	Quote(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (booking.Breakdown, error)
	CreateBooking(ctx context.Context, params CreateBookingParams, guestID uuid.UUID, idempotencyKey uuid.UUID) (*readmodel.BookingRM, error)
	TransitionBooking(ctx context.Context, id uuid.UUID, action booking.Action, actor booking.Actor) (*readmodel.BookingRM, error)
	DeleteBooking(ctx context.Context, id uuid.UUID, actor booking.Actor) error
	GetBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
	GetGuestBookings(ctx context.Context, guestID uuid.UUID) ([]*readmodel.BookingListRM, error)
}

type bookingUseCaseImpl struct {
	bookingRepo     BookingRepository
	propertyRepo    PropertyRepository
	blockRepo       AvailabilityBlockRepository
	idempotencyRepo IdempotencyRepository
	notifier        Notifier
	uow             shared.UnitOfWork
	clock           clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	blockRepo AvailabilityBlockRepository,
	idempotencyRepo IdempotencyRepository,
	notifier Notifier,
	uow shared.UnitOfWork,
	clock clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo:     bookingRepo,
		propertyRepo:    propertyRepo,
		blockRepo:       blockRepo,
		idempotencyRepo: idempotencyRepo,
		notifier:        notifier,
		uow:             uow,
		clock:           clock,
	}
}

// Quote prices a stay without reserving anything. The same calculator runs
// at booking time, so a quote matches the later breakdown exactly.
func (u *bookingUseCaseImpl) Quote(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (booking.Breakdown, error) {
	prop, err := u.loadActiveProperty(ctx, propertyID)
	if err != nil {
		return booking.Breakdown{}, err
	}

	bd := booking.ComputeBreakdown(prop.NightlyRate(), checkIn, checkOut)
	if bd.Nights <= 0 {
		return booking.Breakdown{}, ErrInvalidStayRange
	}

	return bd, nil
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	guestID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*readmodel.BookingRM, error) {
	requestHash := calculateRequestHash(params)
	keyExpiry := u.clock.Now().Add(24 * time.Hour)

	replayed, err := u.handleIdempotency(ctx, idempotencyKey, guestID, requestHash, keyExpiry)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	prop, err := u.loadActiveProperty(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}

	period, err := booking.NewStayPeriod(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	entity, err := booking.NewBooking(prop, guestID, period)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPropertyInactive):
			return nil, ErrPropertyInactive
		case errors.Is(err, booking.ErrZeroNights):
			return nil, ErrInvalidStayRange
		default:
			return nil, errs.Mark(err, ErrInvalidStayRange)
		}
	}

	// Guard check and insert form one critical section under serializable
	// isolation; two overlapping requests cannot both observe "available".
	var bookingID uuid.UUID
	err = u.uow.WithinSerializable(ctx, func(tx infra.DBTX) error {
		occupied, err := u.bookingRepo.FindOccupiedPeriods(ctx, tx, prop.ID(), nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		blocks, err := u.blockRepo.FindPeriods(ctx, tx, prop.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		switch booking.FindConflict(period, occupied, blocks) {
		case booking.ConflictReservation:
			return ErrBookingConflict
		case booking.ConflictHostBlock:
			return ErrHostBlockConflict
		}

		id, err := u.bookingRepo.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := u.idempotencyRepo.MarkCompleted(ctx, tx, idempotencyKey, guestID, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort host notification, off the critical path. Its failure
	// must never fail or roll back the booking.
	u.dispatchNotification(ctx, u.notifier.NotifyHost, NotificationEvent{
		BookingID:  bookingID,
		PropertyID: prop.ID(),
		GuestID:    guestID,
		Topic:      "booking_requested",
	})

	rm, err := u.bookingRepo.FindByID(ctx, u.uow.DB(), bookingID)
	if err != nil {
		// The booking is committed at this point; a read hiccup must not
		// surface as a failure to the caller.
		slog.Warn("booking read-back failed, serving creation snapshot",
			"booking_id", bookingID, "error", err)
		return bookingSnapshotRM(bookingID, entity, prop, u.clock.Now()), nil
	}

	return rm, nil
}

func (u *bookingUseCaseImpl) TransitionBooking(
	ctx context.Context,
	id uuid.UUID,
	action booking.Action,
	actor booking.Actor,
) (*readmodel.BookingRM, error) {
	var result *readmodel.BookingRM
	err := u.uow.Within(ctx, func(tx infra.DBTX) error {
		// Re-read the current status inside the transaction so a stale
		// transition is rejected, never silently overwritten.
		current, err := u.bookingRepo.FindForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		prop, err := u.propertyRepo.FindByID(ctx, tx, current.PropertyID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		from := booking.Status(current.Status)
		if err := booking.AuthorizeTransition(action, actor, current.GuestID, prop.HostID); err != nil {
			return errs.Mark(err, ErrForbidden)
		}
		next, err := booking.NextStatus(from, action)
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		swapped, err := u.bookingRepo.UpdateStatusCAS(ctx, tx, id, from, next)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !swapped {
			return ErrStaleStatus
		}

		result, err = u.bookingRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.dispatchNotification(ctx, u.notifier.NotifyGuest, NotificationEvent{
		BookingID:  result.ID,
		PropertyID: result.PropertyID,
		GuestID:    result.GuestID,
		Topic:      "booking_" + result.Status,
	})

	return result, nil
}

// DeleteBooking is the admin-only hard delete, irreversible and distinct
// from cancellation.
func (u *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id uuid.UUID, actor booking.Actor) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return u.uow.Within(ctx, func(tx infra.DBTX) error {
		if err := u.bookingRepo.Delete(ctx, tx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	rm, err := u.bookingRepo.FindByID(ctx, u.uow.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm, nil
}

func (u *bookingUseCaseImpl) GetGuestBookings(ctx context.Context, guestID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	rms, err := u.bookingRepo.FindByGuestID(ctx, u.uow.DB(), guestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rms, nil
}

func (u *bookingUseCaseImpl) loadActiveProperty(ctx context.Context, propertyID uuid.UUID) (*property.Property, error) {
	rm, err := u.propertyRepo.FindByID(ctx, u.uow.DB(), propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	prop := property.ReconstructProperty(
		rm.ID, rm.HostID, rm.Name, rm.NightlyRate,
		property.Status(rm.Status), rm.CreatedAt, rm.UpdatedAt,
	)
	if !prop.IsActive() {
		return nil, ErrPropertyInactive
	}

	return prop, nil
}

func (u *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key, guestID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*readmodel.BookingRM, error) {
	if err := u.idempotencyRepo.TryInsert(ctx, u.uow.DB(), key, guestID, "POST /bookings", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	existing, err := u.idempotencyRepo.Get(ctx, u.uow.DB(), key, guestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Expiry is checked at read time; a stale key is reclaimed in place.
	if u.clock.Now().After(existing.ExpiresAt) {
		claimed, err := u.idempotencyRepo.ClaimExpired(ctx, u.uow.DB(), key, guestID, requestHash, expiresAt)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if claimed {
			return nil, nil
		}
		existing, err = u.idempotencyRepo.Get(ctx, u.uow.DB(), key, guestID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking id")
		}
		return u.bookingRepo.FindByID(ctx, u.uow.DB(), *existing.ResultBookingID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateRequest
		}
		// Our own freshly claimed key; proceed with creation.
		return nil, nil

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (u *bookingUseCaseImpl) dispatchNotification(ctx context.Context, send func(context.Context, NotificationEvent) error, ev NotificationEvent) {
	if err := send(ctx, ev); err != nil {
		slog.Warn("notification dispatch failed",
			"topic", ev.Topic,
			"booking_id", ev.BookingID,
			"error", err)
	}
}

func bookingSnapshotRM(id uuid.UUID, b *booking.Booking, prop *property.Property, now time.Time) *readmodel.BookingRM {
	return &readmodel.BookingRM{
		ID:           id,
		PropertyID:   b.PropertyID(),
		PropertyName: prop.Name(),
		GuestID:      b.GuestID(),
		CheckIn:      b.Period().CheckIn(),
		CheckOut:     b.Period().CheckOut(),
		Status:       b.Status().String(),
		Breakdown:    b.Breakdown(),
		TotalMinor:   b.TotalMinor(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func calculateRequestHash(params CreateBookingParams) string {
	data, _ := json.Marshal(map[string]string{
		"property_id": params.PropertyID.String(),
		"check_in":    params.CheckIn.Format(time.DateOnly),
		"check_out":   params.CheckOut.Format(time.DateOnly),
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
