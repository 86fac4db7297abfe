package repository

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityBlockRepository struct {
	db infra.DBTX
}

func NewAvailabilityBlockRepository(db infra.DBTX) *AvailabilityBlockRepository {
	return &AvailabilityBlockRepository{db: db}
}

func (r *AvailabilityBlockRepository) Create(ctx context.Context, tx infra.DBTX, blk *booking.AvailabilityBlock) (uuid.UUID, error) {
	const q = `
		INSERT INTO availability_blocks (id, property_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, q,
		blk.ID(),
		blk.PropertyID(),
		pgconv.DateToPgtype(blk.Period().CheckIn()),
		pgconv.DateToPgtype(blk.Period().CheckOut()),
		pgconv.StringPtrToPgtype(blk.Reason()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create availability block", err)
	}

	return id, nil
}

// FindPeriods returns every block range for the property. Blocks always
// occupy their range, so no status filter applies.
func (r *AvailabilityBlockRepository) FindPeriods(ctx context.Context, db infra.DBTX, propertyID uuid.UUID) ([]booking.StayPeriod, error) {
	const q = `SELECT start_date, end_date FROM availability_blocks WHERE property_id = $1`

	rows, err := db.Query(ctx, q, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability blocks", err)
	}
	defer rows.Close()

	var periods []booking.StayPeriod
	for rows.Next() {
		var start, end pgtype.Date
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability block", err)
		}
		p, err := booking.NewStayPeriod(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
		if err != nil {
			return nil, infra.WrapRepoErr("stored availability block has invalid range", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability blocks", err)
	}

	return periods, nil
}

func (r *AvailabilityBlockRepository) FindByPropertyID(ctx context.Context, db infra.DBTX, propertyID uuid.UUID) ([]*readmodel.AvailabilityBlockRM, error) {
	const q = `
		SELECT id, property_id, start_date, end_date, reason, created_at
		FROM availability_blocks
		WHERE property_id = $1
		ORDER BY start_date`

	rows, err := db.Query(ctx, q, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability blocks", err)
	}
	defer rows.Close()

	var result []*readmodel.AvailabilityBlockRM
	for rows.Next() {
		var (
			rm         readmodel.AvailabilityBlockRM
			start, end pgtype.Date
			reason     pgtype.Text
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(&rm.ID, &rm.PropertyID, &start, &end, &reason, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability block row", err)
		}
		rm.StartDate = pgconv.DateFromPgtype(start)
		rm.EndDate = pgconv.DateFromPgtype(end)
		rm.Reason = pgconv.StringPtrFromPgtype(reason)
		rm.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability block rows", err)
	}

	return result, nil
}
