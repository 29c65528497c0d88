// Package market derives economic signals from mandi price data.
// Everything in this package is pure computation: no I/O, no clocks
// beyond formatting done by callers.
package market

import (
	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// highArrivalTonnes is the arrival volume above which a market day
// counts as high-arrival. Exactly 50 is not high.
const highArrivalTonnes = 50.0

// ComputeBuyerSignal derives buyer activity from arrival volume and
// price trend.
func ComputeBuyerSignal(arrival float64, trend string) string {
	high := arrival > highArrivalTonnes
	switch {
	case high && trend == "up":
		return "Strong Demand"
	case high && trend == "down":
		return "Oversupply"
	case !high && trend == "up":
		return "Scarcity Premium"
	case !high && trend == "down":
		return "Weak Demand"
	}
	return "Stable"
}

// ComputePriceMomentum summarizes an ascending price series. Fewer than
// two positive-price points yields a neutral summary.
func ComputePriceMomentum(series []models.PriceObservation) models.MomentumSummary {
	prices := make([]float64, 0, len(series))
	for _, obs := range series {
		if obs.Price > 0 {
			prices = append(prices, obs.Price)
		}
	}
	if len(prices) < 2 {
		return models.MomentumSummary{Direction: "neutral"}
	}

	first, last := prices[0], prices[len(prices)-1]
	var changePct float64
	if first != 0 {
		changePct = util.Round2((last - first) / first * 100)
	}

	// Volatility: mean absolute day-over-day delta.
	var sum float64
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	volatility := util.Round2(sum / float64(len(prices)-1))

	direction := "neutral"
	if changePct > 2 {
		direction = "rising"
	} else if changePct < -2 {
		direction = "falling"
	}

	high, low := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}

	return models.MomentumSummary{
		Direction:  direction,
		ChangePct:  changePct,
		Volatility: volatility,
		High:       high,
		Low:        low,
		PeriodDays: len(series),
	}
}

// ComputeTradeRecommendation combines trend, buyer signal, momentum and
// climate risk into a BUY/HOLD/SELL verdict.
func ComputeTradeRecommendation(trend, buyerSignal, momentum, riskLevel string) models.TradeRecommendation {
	score := 0

	switch trend {
	case "up":
		score += 2
	case "down":
		score -= 2
	}

	switch momentum {
	case "rising":
		score++
	case "falling":
		score--
	}

	switch buyerSignal {
	case "Strong Demand", "Scarcity Premium":
		score++
	case "Oversupply", "Weak Demand":
		score--
	}

	switch riskLevel {
	case "High":
		score -= 2
	case "Moderate":
		score--
	}

	var action, reason string
	switch {
	case score >= 3:
		action = "BUY"
		reason = "Strong price momentum with high buyer demand."
	case score <= -2:
		action = "SELL"
		reason = "Falling prices and weak demand signal oversupply."
	default:
		action = "HOLD"
		reason = "Mixed signals — monitor for 3–5 days before acting."
	}

	confidence := 50 + abs(score)*10
	if confidence > 95 {
		confidence = 95
	}

	return models.TradeRecommendation{
		Action:     action,
		Reason:     reason,
		Confidence: confidence,
		Score:      score,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
