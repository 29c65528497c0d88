package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// marketDateFormat renders arrival dates on market payloads.
const marketDateFormat = "02 Jan 2006"

// MarketService summarizes current mandi conditions from the regional
// price datasets. Failures never escape as errors: they become a
// structured "unavailable" result so downstream synthesis always has a
// well-formed market block.
type MarketService struct {
	store   repository.PriceStore
	metrics repository.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewMarketService(store repository.PriceStore, m repository.Metrics, log *logger.Logger) *MarketService {
	return &MarketService{store: store, metrics: m, log: log, now: time.Now}
}

// Data loads the latest and previous observation for region+commodity
// and derives price change, trend and arrival date.
func (s *MarketService) Data(ctx context.Context, region, commodity string) (models.MarketResult, error) {
	latest, prev, err := s.store.Latest(ctx, region, commodity)
	if err != nil {
		s.metrics.RecordAgentCall(models.SourceMarket, "error")
		s.metrics.RecordError("empty_data")
		s.log.Warn("market data unavailable",
			logger.String("region", region),
			logger.String("commodity", commodity),
			logger.Error(err))
		return s.unavailable(region, commodity, err), nil
	}

	modalPrice := latest.ModalPrice
	minPrice := latest.MinPrice
	if minPrice == 0 {
		minPrice = modalPrice
	}
	maxPrice := latest.MaxPrice
	if maxPrice == 0 {
		maxPrice = modalPrice
	}

	prevPrice := modalPrice
	priceChange := 0.0
	trend := "stable"
	if prev != nil {
		prevPrice = prev.ModalPrice
		if prevPrice == 0 {
			prevPrice = modalPrice
		}
		priceChange = util.Round2(modalPrice - prevPrice)
		if priceChange > 0 {
			trend = "up"
		} else if priceChange < 0 {
			trend = "down"
		}
	}

	arrivalDate := "Unknown"
	if !latest.ArrivalDate.IsZero() {
		arrivalDate = latest.ArrivalDate.Format(marketDateFormat)
	}

	result := models.MarketResult{
		Commodity:   orDash(latest.Commodity, commodity),
		Variety:     orDash(latest.Variety, ""),
		Grade:       orDash(latest.Grade, ""),
		MarketName:  orDash(latest.MarketName, ""),
		District:    orDash(latest.District, ""),
		StateName:   orDash(latest.StateName, ""),
		MandiPrice:  modalPrice,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		PrevPrice:   prevPrice,
		PriceChange: priceChange,
		Arrival:     0.0,
		Trend:       trend,
		ArrivalDate: arrivalDate,
		DataSource:  fmt.Sprintf("%s.csv", region),
		LastUpdated: util.FormatDisplayTime(s.now()),
		Status:      "success",
	}

	s.metrics.RecordAgentCall(models.SourceMarket, "success")
	s.metrics.RecordLastPrice(region, result.Commodity, modalPrice)
	return result, nil
}

// unavailable is the structured stand-in for any market data failure.
func (s *MarketService) unavailable(region, commodity string, cause error) models.MarketResult {
	return models.MarketResult{
		Commodity:   commodity,
		Variety:     "—",
		Grade:       "—",
		MarketName:  "—",
		District:    "—",
		StateName:   region,
		Trend:       "unknown",
		ArrivalDate: "—",
		DataSource:  "Error",
		LastUpdated: util.FormatDisplayTime(s.now()),
		Status:      "error",
		Error:       cause.Error(),
	}
}

func orDash(v, fallback string) string {
	if v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return "—"
}
