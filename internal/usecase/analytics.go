package usecase

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// RevenueStatuses is the declared policy for which bookings count toward
// revenue. Refunded stays keep their recognized amount; pending and
// cancelled ones never had any.
var RevenueStatuses = []booking.Status{
	booking.StatusApproved,
	booking.StatusCompleted,
	booking.StatusRefunded,
}

type AnalyticsUseCase interface {
	Summarize(ctx context.Context, propertyID *uuid.UUID) (*readmodel.SummaryRM, error)
}

type analyticsUseCaseImpl struct {
	analyticsRepo AnalyticsRepository
	db            infra.DBTX
}

func NewAnalyticsUseCase(analyticsRepo AnalyticsRepository, db infra.DBTX) AnalyticsUseCase {
	return &analyticsUseCaseImpl{
		analyticsRepo: analyticsRepo,
		db:            db,
	}
}

// Summarize is read-only and returns zero values on empty data, never an
// error for emptiness.
func (u *analyticsUseCaseImpl) Summarize(ctx context.Context, propertyID *uuid.UUID) (*readmodel.SummaryRM, error) {
	byStatus, err := u.analyticsRepo.CountByStatus(ctx, u.db, propertyID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	statuses := make([]string, len(RevenueStatuses))
	for i, s := range RevenueStatuses {
		statuses[i] = s.String()
	}
	revenue, err := u.analyticsRepo.SumRevenueMinor(ctx, u.db, propertyID, statuses)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &readmodel.SummaryRM{
		Total:        total,
		ByStatus:     byStatus,
		RevenueMinor: revenue,
	}, nil
}
