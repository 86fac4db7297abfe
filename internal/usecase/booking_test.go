//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// fakeUnitOfWork runs closures inline; repositories ignore the DBTX anyway.
type fakeUnitOfWork struct {
	withinCalls       int
	serializableCalls int
}

func (f *fakeUnitOfWork) Within(_ context.Context, fn func(tx infra.DBTX) error) error {
	f.withinCalls++
	return fn(nil)
}

func (f *fakeUnitOfWork) WithinSerializable(_ context.Context, fn func(tx infra.DBTX) error) error {
	f.serializableCalls++
	return fn(nil)
}

func (f *fakeUnitOfWork) DB() infra.DBTX { return nil }

type fakeBookingRepo struct {
	createFn        func(b *booking.Booking) (uuid.UUID, error)
	occupiedFn      func(propertyID uuid.UUID) ([]booking.StayPeriod, error)
	findByIDFn      func(id uuid.UUID) (*readmodel.BookingRM, error)
	findForUpdateFn func(id uuid.UUID) (*readmodel.BookingRM, error)
	casFn           func(id uuid.UUID, from, to booking.Status) (bool, error)
	deleteFn        func(id uuid.UUID) error
	findByGuestFn   func(guestID uuid.UUID) ([]*readmodel.BookingListRM, error)
}

func (f *fakeBookingRepo) Create(_ context.Context, _ infra.DBTX, b *booking.Booking) (uuid.UUID, error) {
	return f.createFn(b)
}

func (f *fakeBookingRepo) FindOccupiedPeriods(_ context.Context, _ infra.DBTX, propertyID uuid.UUID, _ *uuid.UUID) ([]booking.StayPeriod, error) {
	return f.occupiedFn(propertyID)
}

func (f *fakeBookingRepo) FindByID(_ context.Context, _ infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error) {
	return f.findByIDFn(id)
}

func (f *fakeBookingRepo) FindForUpdate(_ context.Context, _ infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error) {
	return f.findForUpdateFn(id)
}

func (f *fakeBookingRepo) UpdateStatusCAS(_ context.Context, _ infra.DBTX, id uuid.UUID, from, to booking.Status) (bool, error) {
	return f.casFn(id, from, to)
}

func (f *fakeBookingRepo) Delete(_ context.Context, _ infra.DBTX, id uuid.UUID) error {
	return f.deleteFn(id)
}

func (f *fakeBookingRepo) FindByGuestID(_ context.Context, _ infra.DBTX, guestID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	return f.findByGuestFn(guestID)
}

type fakePropertyRepo struct {
	findByIDFn func(id uuid.UUID) (*readmodel.PropertyRM, error)
}

func (f *fakePropertyRepo) FindByID(_ context.Context, _ infra.DBTX, id uuid.UUID) (*readmodel.PropertyRM, error) {
	return f.findByIDFn(id)
}

func (f *fakePropertyRepo) FindActive(context.Context, infra.DBTX) ([]*readmodel.PropertyRM, error) {
	return nil, nil
}

type fakeBlockRepo struct {
	periodsFn func(propertyID uuid.UUID) ([]booking.StayPeriod, error)
}

func (f *fakeBlockRepo) Create(context.Context, infra.DBTX, *booking.AvailabilityBlock) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeBlockRepo) FindPeriods(_ context.Context, _ infra.DBTX, propertyID uuid.UUID) ([]booking.StayPeriod, error) {
	return f.periodsFn(propertyID)
}

func (f *fakeBlockRepo) FindByPropertyID(context.Context, infra.DBTX, uuid.UUID) ([]*readmodel.AvailabilityBlockRM, error) {
	return nil, nil
}

type fakeIdempotencyRepo struct {
	insertedHash    string
	completedWithID *uuid.UUID
	getFn           func() (*readmodel.IdempotencyKeyRM, error)
	claimFn         func() (bool, error)
	tryInsertErr    error
}

func (f *fakeIdempotencyRepo) TryInsert(_ context.Context, _ infra.DBTX, _, _ uuid.UUID, _, requestHash string, _ time.Time) error {
	f.insertedHash = requestHash
	return f.tryInsertErr
}

func (f *fakeIdempotencyRepo) Get(context.Context, infra.DBTX, uuid.UUID, uuid.UUID) (*readmodel.IdempotencyKeyRM, error) {
	return f.getFn()
}

func (f *fakeIdempotencyRepo) ClaimExpired(context.Context, infra.DBTX, uuid.UUID, uuid.UUID, string, time.Time) (bool, error) {
	return f.claimFn()
}

func (f *fakeIdempotencyRepo) MarkCompleted(_ context.Context, _ infra.DBTX, _, _, resultBookingID uuid.UUID) error {
	f.completedWithID = &resultBookingID
	return nil
}

type fakeNotifier struct {
	events  []usecase.NotificationEvent
	sendErr error
}

func (f *fakeNotifier) NotifyHost(_ context.Context, ev usecase.NotificationEvent) error {
	f.events = append(f.events, ev)
	return f.sendErr
}

func (f *fakeNotifier) NotifyGuest(_ context.Context, ev usecase.NotificationEvent) error {
	f.events = append(f.events, ev)
	return f.sendErr
}

type BookingUseCaseTestSuite struct {
	suite.Suite
	uc          usecase.BookingUseCase
	uow         *fakeUnitOfWork
	bookingRepo *fakeBookingRepo
	propRepo    *fakePropertyRepo
	blockRepo   *fakeBlockRepo
	idemRepo    *fakeIdempotencyRepo
	notifier    *fakeNotifier
	clk         *clock.MockClock

	now        time.Time
	propertyID uuid.UUID
	hostID     uuid.UUID
	guestID    uuid.UUID
	idemKey    uuid.UUID
	params     usecase.CreateBookingParams

	createdID uuid.UUID
}

func TestBookingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(BookingUseCaseTestSuite))
}

func (s *BookingUseCaseTestSuite) SetupTest() {
	s.now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s.clk = clock.NewMockClock(s.now)
	s.propertyID = uuid.New()
	s.hostID = uuid.New()
	s.guestID = uuid.New()
	s.idemKey = uuid.New()
	s.createdID = uuid.Nil
	s.params = usecase.CreateBookingParams{
		PropertyID: s.propertyID,
		CheckIn:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
	}

	s.uow = &fakeUnitOfWork{}
	s.notifier = &fakeNotifier{}

	s.propRepo = &fakePropertyRepo{
		findByIDFn: func(uuid.UUID) (*readmodel.PropertyRM, error) {
			return &readmodel.PropertyRM{
				ID:          s.propertyID,
				HostID:      s.hostID,
				Name:        "Seaside Cabin",
				NightlyRate: 100000,
				Status:      "active",
			}, nil
		},
	}

	s.blockRepo = &fakeBlockRepo{
		periodsFn: func(uuid.UUID) ([]booking.StayPeriod, error) { return nil, nil },
	}

	s.bookingRepo = &fakeBookingRepo{
		occupiedFn: func(uuid.UUID) ([]booking.StayPeriod, error) { return nil, nil },
		createFn: func(b *booking.Booking) (uuid.UUID, error) {
			s.createdID = b.ID()
			return b.ID(), nil
		},
		findByIDFn: func(id uuid.UUID) (*readmodel.BookingRM, error) {
			return &readmodel.BookingRM{
				ID:           id,
				PropertyID:   s.propertyID,
				PropertyName: "Seaside Cabin",
				GuestID:      s.guestID,
				CheckIn:      s.params.CheckIn,
				CheckOut:     s.params.CheckOut,
				Status:       "pending",
				TotalMinor:   36012500,
			}, nil
		},
	}

	s.idemRepo = &fakeIdempotencyRepo{}
	s.idemRepo.getFn = func() (*readmodel.IdempotencyKeyRM, error) {
		return &readmodel.IdempotencyKeyRM{
			Key:         s.idemKey,
			UserID:      s.guestID,
			Status:      "processing",
			RequestHash: s.idemRepo.insertedHash,
			ExpiresAt:   s.now.Add(24 * time.Hour),
		}, nil
	}
	s.idemRepo.claimFn = func() (bool, error) { return false, nil }

	s.uc = usecase.NewBookingUseCase(
		s.bookingRepo, s.propRepo, s.blockRepo, s.idemRepo, s.notifier, s.uow, s.clk,
	)
}

func (s *BookingUseCaseTestSuite) TestCreateBooking() {
	ctx := context.Background()

	s.Run("creates a pending booking and notifies the host", func() {
		s.SetupTest()

		rm, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.Require().NoError(err)
		s.Equal(s.createdID, rm.ID)
		s.Equal("pending", rm.Status)
		s.Equal(1, s.uow.serializableCalls)
		s.Require().NotNil(s.idemRepo.completedWithID)
		s.Equal(s.createdID, *s.idemRepo.completedWithID)
		s.Require().Len(s.notifier.events, 1)
		s.Equal("booking_requested", s.notifier.events[0].Topic)
		s.Equal(s.createdID, s.notifier.events[0].BookingID)
	})

	s.Run("notification failure never fails the booking", func() {
		s.SetupTest()
		s.notifier.sendErr = errs.New("smtp down")

		rm, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.Require().NoError(err)
		s.Equal(s.createdID, rm.ID)
		s.Len(s.notifier.events, 1)
	})

	s.Run("read-back failure after commit serves the creation snapshot", func() {
		s.SetupTest()
		s.bookingRepo.findByIDFn = func(uuid.UUID) (*readmodel.BookingRM, error) {
			return nil, errs.New("connection reset")
		}

		rm, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.Require().NoError(err)
		s.Equal(s.createdID, rm.ID)
		s.Equal("pending", rm.Status)
		s.Equal("Seaside Cabin", rm.PropertyName)
		s.Equal(s.guestID, rm.GuestID)
		s.Equal(int64(36012500), rm.TotalMinor)
	})

	s.Run("replays a completed request without touching the guard", func() {
		s.SetupTest()
		existingID := uuid.New()
		s.idemRepo.getFn = func() (*readmodel.IdempotencyKeyRM, error) {
			return &readmodel.IdempotencyKeyRM{
				Key:             s.idemKey,
				UserID:          s.guestID,
				Status:          "completed",
				ResultBookingID: &existingID,
				ExpiresAt:       s.now.Add(24 * time.Hour),
			}, nil
		}

		rm, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.Require().NoError(err)
		s.Equal(existingID, rm.ID)
		s.Equal(uuid.Nil, s.createdID)
		s.Zero(s.uow.serializableCalls)
		s.Empty(s.notifier.events)
	})

	s.Run("rejects a processing key carrying different parameters", func() {
		s.SetupTest()
		s.idemRepo.getFn = func() (*readmodel.IdempotencyKeyRM, error) {
			return &readmodel.IdempotencyKeyRM{
				Key:         s.idemKey,
				UserID:      s.guestID,
				Status:      "processing",
				RequestHash: "someone-elses-hash",
				ExpiresAt:   s.now.Add(24 * time.Hour),
			}, nil
		}

		_, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.ErrorIs(err, usecase.ErrDuplicateRequest)
		s.Equal(uuid.Nil, s.createdID)
	})

	s.Run("reclaims an expired key and proceeds", func() {
		s.SetupTest()
		s.idemRepo.getFn = func() (*readmodel.IdempotencyKeyRM, error) {
			return &readmodel.IdempotencyKeyRM{
				Key:         s.idemKey,
				UserID:      s.guestID,
				Status:      "processing",
				RequestHash: s.idemRepo.insertedHash,
				ExpiresAt:   s.now.Add(-time.Hour),
			}, nil
		}
		s.idemRepo.claimFn = func() (bool, error) { return true, nil }

		rm, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.Require().NoError(err)
		s.Equal(s.createdID, rm.ID)
		s.Equal(1, s.uow.serializableCalls)
	})

	s.Run("overlapping reservation maps to the reservation conflict", func() {
		s.SetupTest()
		s.bookingRepo.occupiedFn = func(uuid.UUID) ([]booking.StayPeriod, error) {
			p, err := booking.NewStayPeriod(s.params.CheckIn, s.params.CheckOut)
			s.Require().NoError(err)
			return []booking.StayPeriod{p}, nil
		}

		_, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.ErrorIs(err, usecase.ErrBookingConflict)
		s.Equal(uuid.Nil, s.createdID)
	})

	s.Run("overlapping host block maps to its own conflict", func() {
		s.SetupTest()
		s.blockRepo.periodsFn = func(uuid.UUID) ([]booking.StayPeriod, error) {
			p, err := booking.NewStayPeriod(s.params.CheckIn, s.params.CheckOut)
			s.Require().NoError(err)
			return []booking.StayPeriod{p}, nil
		}

		_, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.ErrorIs(err, usecase.ErrHostBlockConflict)
		s.Equal(uuid.Nil, s.createdID)
	})

	s.Run("inactive property is rejected before the guard", func() {
		s.SetupTest()
		s.propRepo.findByIDFn = func(uuid.UUID) (*readmodel.PropertyRM, error) {
			return &readmodel.PropertyRM{
				ID: s.propertyID, HostID: s.hostID, Name: "Seaside Cabin",
				NightlyRate: 100000, Status: "inactive",
			}, nil
		}

		_, err := s.uc.CreateBooking(ctx, s.params, s.guestID, s.idemKey)

		s.ErrorIs(err, usecase.ErrPropertyInactive)
		s.Zero(s.uow.serializableCalls)
	})
}

func (s *BookingUseCaseTestSuite) TestTransitionBooking() {
	ctx := context.Background()
	bookingID := uuid.New()

	pendingRM := func() *readmodel.BookingRM {
		return &readmodel.BookingRM{
			ID:         bookingID,
			PropertyID: s.propertyID,
			GuestID:    s.guestID,
			Status:     "pending",
		}
	}

	s.Run("host approval swaps the status and notifies the guest", func() {
		s.SetupTest()
		host := booking.Actor{ID: s.hostID, Role: user.RoleHost}
		s.bookingRepo.findForUpdateFn = func(uuid.UUID) (*readmodel.BookingRM, error) { return pendingRM(), nil }
		var gotFrom, gotTo booking.Status
		s.bookingRepo.casFn = func(_ uuid.UUID, from, to booking.Status) (bool, error) {
			gotFrom, gotTo = from, to
			return true, nil
		}
		s.bookingRepo.findByIDFn = func(id uuid.UUID) (*readmodel.BookingRM, error) {
			rm := pendingRM()
			rm.Status = "approved"
			return rm, nil
		}

		rm, err := s.uc.TransitionBooking(ctx, bookingID, booking.ActionApprove, host)

		s.Require().NoError(err)
		s.Equal("approved", rm.Status)
		s.Equal(booking.StatusPending, gotFrom)
		s.Equal(booking.StatusApproved, gotTo)
		s.Require().Len(s.notifier.events, 1)
		s.Equal("booking_approved", s.notifier.events[0].Topic)
	})

	s.Run("lost compare-and-swap surfaces as a concurrency conflict", func() {
		s.SetupTest()
		host := booking.Actor{ID: s.hostID, Role: user.RoleHost}
		s.bookingRepo.findForUpdateFn = func(uuid.UUID) (*readmodel.BookingRM, error) { return pendingRM(), nil }
		s.bookingRepo.casFn = func(uuid.UUID, booking.Status, booking.Status) (bool, error) {
			return false, nil
		}

		_, err := s.uc.TransitionBooking(ctx, bookingID, booking.ActionApprove, host)

		s.ErrorIs(err, usecase.ErrStaleStatus)
		s.Empty(s.notifier.events)
	})

	s.Run("terminal status rejects further transitions", func() {
		s.SetupTest()
		host := booking.Actor{ID: s.hostID, Role: user.RoleHost}
		s.bookingRepo.findForUpdateFn = func(uuid.UUID) (*readmodel.BookingRM, error) {
			rm := pendingRM()
			rm.Status = "cancelled"
			return rm, nil
		}

		_, err := s.uc.TransitionBooking(ctx, bookingID, booking.ActionApprove, host)

		s.ErrorIs(err, usecase.ErrInvalidTransition)
		s.Empty(s.notifier.events)
	})

	s.Run("guest cannot approve", func() {
		s.SetupTest()
		guest := booking.Actor{ID: s.guestID, Role: user.RoleGuest}
		s.bookingRepo.findForUpdateFn = func(uuid.UUID) (*readmodel.BookingRM, error) { return pendingRM(), nil }
		casCalled := false
		s.bookingRepo.casFn = func(uuid.UUID, booking.Status, booking.Status) (bool, error) {
			casCalled = true
			return true, nil
		}

		_, err := s.uc.TransitionBooking(ctx, bookingID, booking.ActionApprove, guest)

		s.ErrorIs(err, usecase.ErrForbidden)
		s.False(casCalled)
	})
}

func (s *BookingUseCaseTestSuite) TestDeleteBooking() {
	ctx := context.Background()
	bookingID := uuid.New()

	s.Run("non-admin is rejected before any database work", func() {
		s.SetupTest()
		host := booking.Actor{ID: s.hostID, Role: user.RoleHost}

		err := s.uc.DeleteBooking(ctx, bookingID, host)

		s.ErrorIs(err, usecase.ErrForbidden)
		s.Zero(s.uow.withinCalls)
	})

	s.Run("admin hard delete", func() {
		s.SetupTest()
		admin := booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}
		var deleted uuid.UUID
		s.bookingRepo.deleteFn = func(id uuid.UUID) error {
			deleted = id
			return nil
		}

		err := s.uc.DeleteBooking(ctx, bookingID, admin)

		s.Require().NoError(err)
		s.Equal(bookingID, deleted)
	})
}
