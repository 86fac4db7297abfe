package repository

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyRepository struct {
	db infra.DBTX
}

func NewPropertyRepository(db infra.DBTX) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, host_id, name, nightly_rate, status, created_at, updated_at`

func (r *PropertyRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.PropertyRM, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	rm, err := scanPropertyRM(db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by id", err)
	}
	return rm, nil
}

func (r *PropertyRepository) FindActive(ctx context.Context, db infra.DBTX) ([]*readmodel.PropertyRM, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE status = 'active' ORDER BY name`

	rows, err := db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active properties", err)
	}
	defer rows.Close()

	var result []*readmodel.PropertyRM
	for rows.Next() {
		rm, err := scanPropertyRM(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan property row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate properties", err)
	}

	return result, nil
}

func scanPropertyRM(row rowScanner) (*readmodel.PropertyRM, error) {
	var (
		rm                   readmodel.PropertyRM
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&rm.ID, &rm.HostID, &rm.Name, &rm.NightlyRate, &rm.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rm.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	rm.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &rm, nil
}
