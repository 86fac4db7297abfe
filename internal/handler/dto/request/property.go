package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required"`
	EndDate    string    `json:"end_date" binding:"required"`
	Reason     *string   `json:"reason,omitempty"`
}

func (r CreateBlockRequest) ParseDates() (start, end time.Time, err error) {
	return CreateBookingRequest{CheckIn: r.StartDate, CheckOut: r.EndDate}.ParseDates()
}

func (r CreateBlockRequest) GetReason() *string {
	if r.Reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
