package readmodel

import (
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for the read side)

type BookingRM struct {
	ID           uuid.UUID         `json:"id"`
	PropertyID   uuid.UUID         `json:"property_id"`
	PropertyName string            `json:"property_name"`
	GuestID      uuid.UUID         `json:"guest_id"`
	CheckIn      time.Time         `json:"check_in"`
	CheckOut     time.Time         `json:"check_out"`
	Status       string            `json:"status"`
	Breakdown    booking.Breakdown `json:"breakdown"`
	TotalMinor   int64             `json:"total_minor"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type BookingListRM struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Status       string    `json:"status"`
	TotalMinor   int64     `json:"total_minor"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertyRM struct {
	ID          uuid.UUID `json:"id"`
	HostID      uuid.UUID `json:"host_id"`
	Name        string    `json:"name"`
	NightlyRate float64   `json:"nightly_rate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AvailabilityBlockRM struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type IdempotencyKeyRM struct {
	Key             uuid.UUID `json:"key"`
	UserID          uuid.UUID `json:"user_id"`
	Endpoint        string    `json:"endpoint"`
	RequestHash     string    `json:"request_hash"`
	Status          string    `json:"status"`
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time `json:"expires_at"`
}
