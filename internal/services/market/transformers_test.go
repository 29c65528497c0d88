package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
)

func TestToPriceCard(t *testing.T) {
	card := ToPriceCard(models.MarketResult{
		Commodity:   "Banana",
		Variety:     "Nendran",
		MandiPrice:  4400,
		PrevPrice:   4000,
		PriceChange: 400,
		Trend:       "up",
		Status:      "success",
	})
	assert.Equal(t, 10.0, card.ChangePct)
	assert.Equal(t, "↑", card.TrendIcon)
	assert.Equal(t, "success", card.Status)
}

func TestToPriceCardMissingPrev(t *testing.T) {
	// No previous price: fall back to the modal price, zero change.
	card := ToPriceCard(models.MarketResult{MandiPrice: 4400, Trend: "stable"})
	assert.Equal(t, 4400.0, card.PrevPrice)
	assert.Equal(t, 0.0, card.ChangePct)
	assert.Equal(t, "→", card.TrendIcon)
	assert.Equal(t, "error", card.Status)
}

func TestToChartSeries(t *testing.T) {
	chart := ToChartSeries([]models.PriceObservation{
		{Date: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), Price: 4400.333, SampleCount: 2},
		{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Price: 4500, SampleCount: 1},
	})
	assert.Equal(t, []string{"14 Jan", "15 Jan"}, chart.Labels)
	assert.Equal(t, []float64{4400.33, 4500}, chart.Price)
	assert.Equal(t, []int{2, 1}, chart.Arrival)
}

func TestToChartSeriesEmpty(t *testing.T) {
	chart := ToChartSeries(nil)
	assert.NotNil(t, chart.Labels)
	assert.Empty(t, chart.Labels)
	assert.Empty(t, chart.Price)
	assert.Empty(t, chart.Arrival)
}

func TestToMarketSummary(t *testing.T) {
	now := time.Date(2025, 1, 20, 14, 30, 0, 0, time.UTC)
	summary := ToMarketSummary(
		models.MarketResult{Commodity: "Banana", StateName: "Kerala", MarketName: "Kottayam"},
		models.MomentumSummary{Direction: "rising"},
		models.TradeRecommendation{Action: "BUY"},
		nil,
		now,
	)
	assert.Equal(t, "Kerala", summary.Context.State)
	assert.Equal(t, "Agmarknet CSV", summary.Context.Source)
	assert.Equal(t, "20 Jan 2025 02:30 PM", summary.GeneratedAt)
	assert.Equal(t, "rising", summary.Momentum.Direction)
	assert.Equal(t, "BUY", summary.Recommendation.Action)
}

func TestToMarketSummaryKeepsSource(t *testing.T) {
	summary := ToMarketSummary(
		models.MarketResult{DataSource: "Kerala_Kottayam.csv"},
		models.MomentumSummary{}, models.TradeRecommendation{}, nil, time.Now(),
	)
	assert.Equal(t, "Kerala_Kottayam.csv", summary.Context.Source)
}
