package repository

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, db infra.DBTX, email string) (*readmodel.AuthorizedUserRM, error) {
	const q = `
		SELECT id, email, role, password_hash, is_active
		FROM users
		WHERE email = $1`

	var rm readmodel.AuthorizedUserRM
	err := db.QueryRow(ctx, q, email).Scan(&rm.ID, &rm.Email, &rm.Role, &rm.PasswordHash, &rm.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &rm, nil
}

func (r *UserRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	const q = `
		SELECT id, email, role, password_hash, is_active
		FROM users
		WHERE id = $1`

	var rm readmodel.AuthorizedUserRM
	err := db.QueryRow(ctx, q, id).Scan(&rm.ID, &rm.Email, &rm.Role, &rm.PasswordHash, &rm.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}

	return &rm, nil
}
