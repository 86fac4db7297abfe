package booking

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock is a host-declared blackout range on a property. It has
// no guest and behaves as a permanent occupant of its range.
type AvailabilityBlock struct {
	id         uuid.UUID
	propertyID uuid.UUID
	period     StayPeriod
	reason     *string
	createdAt  time.Time
}

func NewAvailabilityBlock(propertyID uuid.UUID, period StayPeriod, reason *string) *AvailabilityBlock {
	return &AvailabilityBlock{
		id:         uuid.New(),
		propertyID: propertyID,
		period:     period,
		reason:     reason,
	}
}

func ReconstructAvailabilityBlock(id, propertyID uuid.UUID, period StayPeriod, reason *string, createdAt time.Time) *AvailabilityBlock {
	return &AvailabilityBlock{
		id:         id,
		propertyID: propertyID,
		period:     period,
		reason:     reason,
		createdAt:  createdAt,
	}
}

func (b *AvailabilityBlock) ID() uuid.UUID         { return b.id }
func (b *AvailabilityBlock) PropertyID() uuid.UUID { return b.propertyID }
func (b *AvailabilityBlock) Period() StayPeriod    { return b.period }
func (b *AvailabilityBlock) Reason() *string       { return b.reason }
func (b *AvailabilityBlock) CreatedAt() time.Time  { return b.createdAt }
