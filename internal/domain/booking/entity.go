package booking

import (
	"errors"
	"time"

	"stayhub/internal/domain/property"

	"github.com/google/uuid"
)

var (
	ErrPropertyInactive = errors.New("property is not active")
	ErrZeroNights       = errors.New("stay must cover at least one night")
)

// Booking holds the price breakdown computed at creation time as an
// immutable snapshot; it is never recomputed from live property rates.
type Booking struct {
	id         uuid.UUID
	propertyID uuid.UUID
	guestID    uuid.UUID
	period     StayPeriod
	status     Status
	breakdown  Breakdown
	totalMinor int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking prices the stay and creates a pending booking. Availability is
// not checked here; the guard runs inside the same transaction as the insert.
func NewBooking(prop *property.Property, guestID uuid.UUID, period StayPeriod) (*Booking, error) {
	if !prop.IsActive() {
		return nil, ErrPropertyInactive
	}

	bd := ComputeBreakdown(prop.NightlyRate(), period.CheckIn(), period.CheckOut())
	if bd.Nights <= 0 {
		return nil, ErrZeroNights
	}

	return &Booking{
		id:         uuid.New(),
		propertyID: prop.ID(),
		guestID:    guestID,
		period:     period,
		status:     StatusPending,
		breakdown:  bd,
		totalMinor: bd.TotalMinor,
	}, nil
}

func ReconstructBooking(
	id, propertyID, guestID uuid.UUID,
	period StayPeriod,
	status Status,
	breakdown Breakdown,
	totalMinor int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		propertyID: propertyID,
		guestID:    guestID,
		period:     period,
		status:     status,
		breakdown:  breakdown,
		totalMinor: totalMinor,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Apply validates authorization and the transition table, then mutates the
// status. On any error the booking is left unchanged.
func (b *Booking) Apply(action Action, actor Actor, propertyHostID uuid.UUID) error {
	if err := AuthorizeTransition(action, actor, b.guestID, propertyHostID); err != nil {
		return err
	}
	next, err := NextStatus(b.status, action)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID    { return b.guestID }
func (b *Booking) Period() StayPeriod    { return b.period }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Breakdown() Breakdown  { return b.breakdown }
func (b *Booking) TotalMinor() int64     { return b.totalMinor }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
