package components

import (
	"stayhub/internal/infra"
	"stayhub/internal/infra/identity"
	"stayhub/internal/infra/notification"
	repo_impl "stayhub/internal/infra/repository"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewPropertyRepository,
			fx.As(new(usecase.PropertyRepository)),
		),
		fx.Annotate(
			repo_impl.NewAvailabilityBlockRepository,
			fx.As(new(usecase.AvailabilityBlockRepository)),
		),
		fx.Annotate(
			repo_impl.NewAnalyticsRepository,
			fx.As(new(usecase.AnalyticsRepository)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(usecase.IdempotencyRepository)),
		),
		repo_impl.NewNotificationJobRepository,
		fx.Annotate(
			notification.NewJobNotifier,
			fx.As(new(usecase.Notifier)),
		),
		fx.Annotate(
			NewCodeStore,
			fx.As(new(usecase.CodeStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}

func NewCodeStore(rdb *redis.Client, cfg config.Config, clk clock.Clock) *identity.CodeStore {
	return identity.NewCodeStore(rdb, cfg.Login.TTL, clk)
}
