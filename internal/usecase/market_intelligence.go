package usecase

import (
	"context"
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/service"
	"github.com/abhinavomanakuttan/leaf-net/internal/services/market"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// MarketIntelligenceUseCase runs the standalone market pipeline: load
// the series, derive momentum and buyer signal, compose the trade
// recommendation and shape everything for display.
type MarketIntelligenceUseCase struct {
	agent   service.MarketAgent
	store   repository.PriceStore
	metrics repository.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewMarketIntelligenceUseCase(agent service.MarketAgent, store repository.PriceStore, m repository.Metrics, log *logger.Logger) *MarketIntelligenceUseCase {
	return &MarketIntelligenceUseCase{agent: agent, store: store, metrics: m, log: log, now: time.Now}
}

// Summary builds the full intelligence response for region+commodity.
func (uc *MarketIntelligenceUseCase) Summary(ctx context.Context, req models.MarketIntelligenceRequest) (models.MarketSummary, error) {
	started := uc.now()

	raw, err := uc.agent.Data(ctx, req.Region, req.Commodity)
	if err != nil {
		return models.MarketSummary{}, err
	}

	series, err := uc.store.Series(ctx, req.Region, req.Commodity, req.Days)
	if err != nil {
		// The price card still renders without a trend window.
		uc.log.Warn("price series unavailable",
			logger.String("region", req.Region),
			logger.String("commodity", req.Commodity),
			logger.Error(err))
		series = nil
	}

	raw.BuyerSignal = market.ComputeBuyerSignal(raw.Arrival, raw.Trend)
	momentum := market.ComputePriceMomentum(series)
	raw.Momentum = &momentum

	rec := market.ComputeTradeRecommendation(raw.Trend, raw.BuyerSignal, momentum.Direction, "Low")

	uc.metrics.RecordLatency("market_intelligence", time.Since(started).Seconds())
	return market.ToMarketSummary(raw, momentum, rec, series, uc.now()), nil
}

// Data returns the raw enriched market block for region+commodity.
func (uc *MarketIntelligenceUseCase) Data(ctx context.Context, region, commodity string) (models.MarketResult, error) {
	return uc.agent.Data(ctx, region, commodity)
}

// Filters reports the dataset topology available on disk.
func (uc *MarketIntelligenceUseCase) Filters(ctx context.Context) (models.MarketFilters, error) {
	return uc.store.Filters(ctx)
}

// Records returns one page of raw rows. Store failures degrade to an
// empty page with the reason attached, mirroring the rest of the
// market surface: always a well-formed body.
func (uc *MarketIntelligenceUseCase) Records(ctx context.Context, req models.MarketRecordsRequest) models.RecordsPage {
	page, err := uc.store.Records(ctx, req.Region, req.Commodity, req.Page, req.PageSize)
	if err != nil {
		return models.RecordsPage{
			Records:  []models.RecordRow{},
			Total:    0,
			Page:     req.Page,
			PageSize: req.PageSize,
			Error:    err.Error(),
		}
	}
	return page
}
