// Package usecase contains the business logic of the gate service
package usecase

import (
	"go.uber.org/fx"
)

// Module provides all use cases for fx dependency injection
var Module = fx.Module("usecase",
	fx.Provide(NewSessionStore),
	fx.Provide(NewVerifierUseCase),
	fx.Provide(NewLedgerUseCase),
	fx.Provide(NewRegistrationUseCase),
	fx.Provide(NewStatsUseCase),
)
