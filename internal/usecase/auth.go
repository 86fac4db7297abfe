package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase/readmodel"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidLoginCode   = errors.New("invalid or expired login code")
)

type TokenPair struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// AuthUseCase is the identity collaborator. It hands verified actor id and
// role to the booking core via tokens; the core itself never sees one.
type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (*TokenPair, *readmodel.AuthorizedUserRM, error)
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (*TokenPair, *readmodel.AuthorizedUserRM, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	codeStore  CodeStore
	jwtService *jwt.Service
	db         infra.DBTX
}

func NewAuthUseCase(userRepo UserRepository, codeStore CodeStore, jwtService *jwt.Service, db infra.DBTX) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		codeStore:  codeStore,
		jwtService: jwtService,
		db:         db,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*TokenPair, *readmodel.AuthorizedUserRM, error) {
	rm, err := u.loadActiveUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if err := password.ComparePassword(rm.PasswordHash, plainPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := u.issueTokens(rm)
	if err != nil {
		return nil, nil, err
	}

	return pair, rm, nil
}

// RequestLoginCode issues a one-time code for the address. The response is
// identical whether or not the account exists, so the endpoint cannot be
// used to probe for registered emails.
func (u *authUseCaseImpl) RequestLoginCode(ctx context.Context, email string) error {
	if _, err := u.loadActiveUser(ctx, email); err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserInactive) {
			return nil
		}
		return err
	}

	code, err := u.codeStore.Issue(ctx, email)
	if err != nil {
		return errs.Wrap(err, "failed to issue login code")
	}

	// Delivery belongs to the notification collaborator; the code is never
	// returned to the caller.
	slog.Info("login code issued", "email", email, "code_length", len(code))
	return nil
}

func (u *authUseCaseImpl) VerifyLoginCode(ctx context.Context, email, code string) (*TokenPair, *readmodel.AuthorizedUserRM, error) {
	ok, err := u.codeStore.Verify(ctx, email, code)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to verify login code")
	}
	if !ok {
		return nil, nil, ErrInvalidLoginCode
	}

	rm, err := u.loadActiveUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	pair, err := u.issueTokens(rm)
	if err != nil {
		return nil, nil, err
	}

	return pair, rm, nil
}

func (u *authUseCaseImpl) loadActiveUser(ctx context.Context, email string) (*readmodel.AuthorizedUserRM, error) {
	rm, err := u.userRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rm.IsActive {
		return nil, ErrUserInactive
	}
	return rm, nil
}

func (u *authUseCaseImpl) issueTokens(rm *readmodel.AuthorizedUserRM) (*TokenPair, error) {
	role, err := user.NewRole(rm.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored user has invalid role")
	}

	token, err := u.jwtService.GenerateToken(rm.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &TokenPair{
		AccessToken: token,
		ExpiresIn:   u.jwtService.TokenDuration(),
	}, nil
}
