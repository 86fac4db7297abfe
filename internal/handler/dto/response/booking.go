package response

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BreakdownResponse struct {
	Nights      int     `json:"nights"`
	Base        float64 `json:"base"`
	CleaningFee float64 `json:"cleaningFee"`
	ServiceFee  float64 `json:"serviceFee"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	TotalMinor  int64   `json:"totalMinor"`
}

type BookingResponse struct {
	ID           uuid.UUID         `json:"id"`
	PropertyID   uuid.UUID         `json:"propertyId"`
	PropertyName string            `json:"propertyName"`
	GuestID      uuid.UUID         `json:"guestId"`
	CheckIn      string            `json:"checkIn"`
	CheckOut     string            `json:"checkOut"`
	Status       string            `json:"status"`
	Breakdown    BreakdownResponse `json:"breakdown"`
	TotalMinor   int64             `json:"totalMinor"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"propertyId"`
	PropertyName string    `json:"propertyName"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	Status       string    `json:"status"`
	TotalMinor   int64     `json:"totalMinor"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromBreakdown(bd booking.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Nights:      bd.Nights,
		Base:        bd.Base,
		CleaningFee: bd.Cleaning,
		ServiceFee:  bd.Service,
		Subtotal:    bd.Subtotal,
		Tax:         bd.Tax,
		Total:       bd.Total,
		TotalMinor:  bd.TotalMinor,
	}
}

func FromBookingRM(rm *readmodel.BookingRM) *BookingResponse {
	return &BookingResponse{
		ID:           rm.ID,
		PropertyID:   rm.PropertyID,
		PropertyName: rm.PropertyName,
		GuestID:      rm.GuestID,
		CheckIn:      rm.CheckIn.Format(time.DateOnly),
		CheckOut:     rm.CheckOut.Format(time.DateOnly),
		Status:       rm.Status,
		Breakdown:    FromBreakdown(rm.Breakdown),
		TotalMinor:   rm.TotalMinor,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromBookingListRM(rm *readmodel.BookingListRM) *BookingListResponse {
	return &BookingListResponse{
		ID:           rm.ID,
		PropertyID:   rm.PropertyID,
		PropertyName: rm.PropertyName,
		CheckIn:      rm.CheckIn.Format(time.DateOnly),
		CheckOut:     rm.CheckOut.Format(time.DateOnly),
		Status:       rm.Status,
		TotalMinor:   rm.TotalMinor,
		CreatedAt:    rm.CreatedAt,
	}
}
