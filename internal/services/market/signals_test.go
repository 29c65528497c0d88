package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
)

func obs(day int, price float64) models.PriceObservation {
	return models.PriceObservation{
		Date:        time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Price:       price,
		SampleCount: 1,
	}
}

func TestComputeBuyerSignal(t *testing.T) {
	tests := []struct {
		arrival float64
		trend   string
		want    string
	}{
		{60, "up", "Strong Demand"},
		{60, "down", "Oversupply"},
		{10, "up", "Scarcity Premium"},
		{10, "down", "Weak Demand"},
		{60, "stable", "Stable"},
		// exactly 50 tonnes is not high arrival
		{50, "stable", "Stable"},
		{50, "up", "Scarcity Premium"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeBuyerSignal(tt.arrival, tt.trend),
			"arrival=%v trend=%s", tt.arrival, tt.trend)
	}
}

func TestComputePriceMomentumRising(t *testing.T) {
	m := ComputePriceMomentum([]models.PriceObservation{obs(1, 100), obs(2, 110)})
	assert.Equal(t, "rising", m.Direction)
	assert.Equal(t, 10.0, m.ChangePct)
	assert.Equal(t, 10.0, m.Volatility)
	assert.Equal(t, 110.0, m.High)
	assert.Equal(t, 100.0, m.Low)
	assert.Equal(t, 2, m.PeriodDays)
}

func TestComputePriceMomentumFalling(t *testing.T) {
	m := ComputePriceMomentum([]models.PriceObservation{obs(1, 100), obs(2, 95), obs(3, 90)})
	assert.Equal(t, "falling", m.Direction)
	assert.Equal(t, -10.0, m.ChangePct)
	assert.Equal(t, 5.0, m.Volatility)
}

func TestComputePriceMomentumNeutralWithinBand(t *testing.T) {
	// +1% change stays neutral
	m := ComputePriceMomentum([]models.PriceObservation{obs(1, 100), obs(2, 101)})
	assert.Equal(t, "neutral", m.Direction)
}

func TestComputePriceMomentumTooFewPoints(t *testing.T) {
	for _, series := range [][]models.PriceObservation{
		nil,
		{obs(1, 100)},
		{obs(1, 0), obs(2, 0)}, // zero prices are excluded
	} {
		m := ComputePriceMomentum(series)
		assert.Equal(t, "neutral", m.Direction)
		assert.Zero(t, m.ChangePct)
		assert.Zero(t, m.Volatility)
	}
}

func TestComputePriceMomentumIgnoresZeroPrices(t *testing.T) {
	m := ComputePriceMomentum([]models.PriceObservation{obs(1, 100), obs(2, 0), obs(3, 110)})
	assert.Equal(t, "rising", m.Direction)
	assert.Equal(t, 10.0, m.ChangePct)
}

func TestComputeTradeRecommendationSell(t *testing.T) {
	rec := ComputeTradeRecommendation("down", "Oversupply", "falling", "High")
	require.Equal(t, "SELL", rec.Action)
	assert.Equal(t, -6, rec.Score)
	assert.Equal(t, 95, rec.Confidence)
	assert.Equal(t, "Falling prices and weak demand signal oversupply.", rec.Reason)
}

func TestComputeTradeRecommendationBuy(t *testing.T) {
	rec := ComputeTradeRecommendation("up", "Strong Demand", "rising", "Low")
	require.Equal(t, "BUY", rec.Action)
	assert.Equal(t, 4, rec.Score)
	assert.Equal(t, 90, rec.Confidence)
}

func TestComputeTradeRecommendationHold(t *testing.T) {
	rec := ComputeTradeRecommendation("stable", "Stable", "neutral", "Low")
	require.Equal(t, "HOLD", rec.Action)
	assert.Equal(t, 0, rec.Score)
	assert.Equal(t, 50, rec.Confidence)
}

func TestComputeTradeRecommendationRiskPenalty(t *testing.T) {
	// An otherwise-BUY market drops to HOLD under high disease risk.
	low := ComputeTradeRecommendation("up", "Scarcity Premium", "rising", "Low")
	high := ComputeTradeRecommendation("up", "Scarcity Premium", "rising", "High")
	assert.Equal(t, "BUY", low.Action)
	assert.Equal(t, "HOLD", high.Action)
	assert.Equal(t, low.Score-2, high.Score)
}
