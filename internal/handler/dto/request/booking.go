package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDateFormat = errors.New("dates must be formatted as YYYY-MM-DD")

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
}

// ParseDates validates the date-only wire format. Range ordering is the
// domain's job, not the DTO's.
func (r CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(time.DateOnly, r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	checkOut, err = time.Parse(time.DateOnly, r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	return checkIn, checkOut, nil
}

// QuoteRequest shares the creation wire shape; a quote is a dry run of the
// same calculation.
type QuoteRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
}

func (r QuoteRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	return CreateBookingRequest{CheckIn: r.CheckIn, CheckOut: r.CheckOut}.ParseDates()
}
