//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	"github.com/abhinavomanakuttan/leaf-net/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideRateLimiter,

		// Data layer
		ProvidePriceStore,
		ProvidePublisher,

		// Agent adapters
		ProvideClimateAgent,
		ProvideSatelliteAgent,
		ProvideVisionAgent,
		ProvideMarketAgent,

		// Synthesis
		ProvideSynthesizer,
		ProvideGrowthPlanner,

		// Use cases
		ProvideOrchestrateUseCase,
		ProvideMarketIntelligenceUseCase,

		// HTTP
		ProvideAPIHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
