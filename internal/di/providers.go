// Package di builds the application object graph.
package di

import (
	"fmt"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/service"
	"github.com/abhinavomanakuttan/leaf-net/internal/handler/api"
	internalrepo "github.com/abhinavomanakuttan/leaf-net/internal/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/service/ratelimit"
	"github.com/abhinavomanakuttan/leaf-net/internal/services/agents"
	"github.com/abhinavomanakuttan/leaf-net/internal/services/synthesis"
	"github.com/abhinavomanakuttan/leaf-net/internal/usecase"
	"github.com/abhinavomanakuttan/leaf-net/pkg/cache"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/metrics"
	"github.com/abhinavomanakuttan/leaf-net/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the agent-result cache. With redis enabled the
// memory layer fronts it, otherwise memory alone serves.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideRateLimiter creates the shared upstream rate limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvidePriceStore creates the CSV-backed price store.
func ProvidePriceStore(cfg *config.Config, log *logger.Logger) repository.PriceStore {
	return internalrepo.NewCSVPriceStore(cfg.Market.DataDir, cfg.Market.SeriesTTL, log)
}

// ProvidePublisher creates the assessment publisher, a noop when kafka
// is disabled.
func ProvidePublisher(cfg *config.Config, log *logger.Logger) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	return internalrepo.NewKafkaAssessmentPublisher(cfg, log)
}

// ProvideClimateAgent creates the climate risk adapter.
func ProvideClimateAgent(cfg *config.Config, c cache.Service, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) service.ClimateAgent {
	return agents.NewClimateService(cfg, c, lim, m, log)
}

// ProvideSatelliteAgent creates the vegetation health adapter.
func ProvideSatelliteAgent(cfg *config.Config, c cache.Service, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) service.SatelliteAgent {
	return agents.NewSatelliteService(cfg, c, lim, m, log)
}

// ProvideVisionAgent creates the leaf-image classification adapter.
func ProvideVisionAgent(cfg *config.Config, lim *ratelimit.Limiter, m repository.Metrics, log *logger.Logger) service.VisionAgent {
	return agents.NewVisionService(cfg, lim, m, log)
}

// ProvideMarketAgent creates the mandi market adapter.
func ProvideMarketAgent(store repository.PriceStore, m repository.Metrics, log *logger.Logger) service.MarketAgent {
	return agents.NewMarketService(store, m, log)
}

// ProvideSynthesizer creates the LLM synthesis delegate.
func ProvideSynthesizer(cfg *config.Config, m repository.Metrics, log *logger.Logger) service.Synthesizer {
	return synthesis.New(cfg, m, log)
}

// ProvideGrowthPlanner creates the profit roadmap planner.
func ProvideGrowthPlanner(cfg *config.Config, m repository.Metrics, log *logger.Logger) service.GrowthPlanner {
	return synthesis.NewPlanner(cfg, m, log)
}

// ProvideOrchestrateUseCase creates the fan-out orchestration use case.
func ProvideOrchestrateUseCase(
	cfg *config.Config,
	climate service.ClimateAgent,
	satellite service.SatelliteAgent,
	marketAgent service.MarketAgent,
	synthesizer service.Synthesizer,
	publisher repository.Publisher,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.OrchestrateUseCase {
	return usecase.NewOrchestrateUseCase(usecase.OrchestrateDeps{
		Climate:     climate,
		Satellite:   satellite,
		Market:      marketAgent,
		Synthesizer: synthesizer,
		Publisher:   publisher,
		Metrics:     m,
		Log:         log,
		APIKey:      cfg.Synthesis.APIKey,
	})
}

// ProvideMarketIntelligenceUseCase creates the market pipeline use case.
func ProvideMarketIntelligenceUseCase(
	agent service.MarketAgent,
	store repository.PriceStore,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.MarketIntelligenceUseCase {
	return usecase.NewMarketIntelligenceUseCase(agent, store, m, log)
}

// ProvideAPIHandler creates the HTTP route handler.
func ProvideAPIHandler(
	vision service.VisionAgent,
	climate service.ClimateAgent,
	satellite service.SatelliteAgent,
	orchestrate *usecase.OrchestrateUseCase,
	market *usecase.MarketIntelligenceUseCase,
	planner service.GrowthPlanner,
	log *logger.Logger,
) *api.Handler {
	return api.NewHandler(vision, climate, satellite, orchestrate, market, planner, log)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	handler *api.Handler,
	publisher repository.Publisher,
	c cache.Service,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, handler, publisher, c, log)
}
