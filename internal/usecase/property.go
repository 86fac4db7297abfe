package usecase

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotPropertyHost = errors.New("actor does not own this property")

type CreateBlockParams struct {
	PropertyID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
}

type PropertyUseCase interface {
	GetActiveProperties(ctx context.Context) ([]*readmodel.PropertyRM, error)
	CreateBlock(ctx context.Context, params CreateBlockParams, actor booking.Actor) (*readmodel.AvailabilityBlockRM, error)
	GetBlocks(ctx context.Context, propertyID uuid.UUID) ([]*readmodel.AvailabilityBlockRM, error)
}

type propertyUseCaseImpl struct {
	propertyRepo PropertyRepository
	blockRepo    AvailabilityBlockRepository
	uow          shared.UnitOfWork
}

func NewPropertyUseCase(propertyRepo PropertyRepository, blockRepo AvailabilityBlockRepository, uow shared.UnitOfWork) PropertyUseCase {
	return &propertyUseCaseImpl{
		propertyRepo: propertyRepo,
		blockRepo:    blockRepo,
		uow:          uow,
	}
}

func (u *propertyUseCaseImpl) GetActiveProperties(ctx context.Context) ([]*readmodel.PropertyRM, error) {
	rms, err := u.propertyRepo.FindActive(ctx, u.uow.DB())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rms, nil
}

// CreateBlock records a host blackout range. Existing bookings are not
// touched; the block only stops new ones.
func (u *propertyUseCaseImpl) CreateBlock(ctx context.Context, params CreateBlockParams, actor booking.Actor) (*readmodel.AvailabilityBlockRM, error) {
	prop, err := u.propertyRepo.FindByID(ctx, u.uow.DB(), params.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.IsAdmin() && actor.ID != prop.HostID {
		return nil, errs.Mark(ErrNotPropertyHost, ErrForbidden)
	}

	period, err := booking.NewStayPeriod(params.StartDate, params.EndDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	blk := booking.NewAvailabilityBlock(params.PropertyID, period, params.Reason)

	var id uuid.UUID
	err = u.uow.Within(ctx, func(tx infra.DBTX) error {
		created, err := u.blockRepo.Create(ctx, tx, blk)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &readmodel.AvailabilityBlockRM{
		ID:         id,
		PropertyID: params.PropertyID,
		StartDate:  period.CheckIn(),
		EndDate:    period.CheckOut(),
		Reason:     params.Reason,
	}, nil
}

func (u *propertyUseCaseImpl) GetBlocks(ctx context.Context, propertyID uuid.UUID) ([]*readmodel.AvailabilityBlockRM, error) {
	rms, err := u.blockRepo.FindByPropertyID(ctx, u.uow.DB(), propertyID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rms, nil
}
