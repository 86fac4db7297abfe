package components

import (
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		shared.NewUnitOfWork,
		usecase.NewTokenValidator,
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewPropertyUseCase,
		usecase.NewAnalyticsUseCase,
	),
)
