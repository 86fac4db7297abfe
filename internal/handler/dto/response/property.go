package response

import (
	"time"

	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	HostID      uuid.UUID `json:"hostId"`
	Name        string    `json:"name"`
	NightlyRate float64   `json:"nightlyRate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AvailabilityBlockResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromPropertyRM(rm *readmodel.PropertyRM) *PropertyResponse {
	return &PropertyResponse{
		ID:          rm.ID,
		HostID:      rm.HostID,
		Name:        rm.Name,
		NightlyRate: rm.NightlyRate,
		Status:      rm.Status,
		CreatedAt:   rm.CreatedAt,
	}
}

func FromAvailabilityBlockRM(rm *readmodel.AvailabilityBlockRM) *AvailabilityBlockResponse {
	return &AvailabilityBlockResponse{
		ID:         rm.ID,
		PropertyID: rm.PropertyID,
		StartDate:  rm.StartDate.Format(time.DateOnly),
		EndDate:    rm.EndDate.Format(time.DateOnly),
		Reason:     rm.Reason,
		CreatedAt:  rm.CreatedAt,
	}
}
