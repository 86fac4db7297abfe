package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName        = errors.New("property name must not be empty")
	ErrInvalidNightlyRate = errors.New("nightly rate must be positive")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

// Property is a rentable listing. NightlyRate is in major currency units;
// minor-unit conversion happens only in the price breakdown.
type Property struct {
	id          uuid.UUID
	hostID      uuid.UUID
	name        string
	nightlyRate float64
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProperty(hostID uuid.UUID, name string, nightlyRate float64) (*Property, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if nightlyRate <= 0 {
		return nil, ErrInvalidNightlyRate
	}
	return &Property{
		id:          uuid.New(),
		hostID:      hostID,
		name:        name,
		nightlyRate: nightlyRate,
		status:      StatusActive,
	}, nil
}

func ReconstructProperty(
	id, hostID uuid.UUID,
	name string,
	nightlyRate float64,
	status Status,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:          id,
		hostID:      hostID,
		name:        name,
		nightlyRate: nightlyRate,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Property) ID() uuid.UUID        { return p.id }
func (p *Property) HostID() uuid.UUID    { return p.hostID }
func (p *Property) Name() string         { return p.name }
func (p *Property) NightlyRate() float64 { return p.nightlyRate }
func (p *Property) Status() Status       { return p.status }
func (p *Property) IsActive() bool       { return p.status == StatusActive }
func (p *Property) CreatedAt() time.Time { return p.createdAt }
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

func (p *Property) Deactivate() {
	p.status = StatusInactive
}
