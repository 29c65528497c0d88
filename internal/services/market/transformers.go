package market

import (
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// summaryTimeFormat is the long display stamp on summaries.
const summaryTimeFormat = "02 Jan 2006 03:04 PM"

// ToPriceCard shapes an enriched market result into the price card.
func ToPriceCard(m models.MarketResult) models.PriceCard {
	prev := m.PrevPrice
	if prev == 0 {
		prev = m.MandiPrice
	}

	var changePct float64
	if prev != 0 {
		changePct = util.Round2(m.PriceChange / prev * 100)
	}

	icon := "→"
	switch m.Trend {
	case "up":
		icon = "↑"
	case "down":
		icon = "↓"
	}

	status := m.Status
	if status == "" {
		status = "error"
	}

	return models.PriceCard{
		Commodity:   m.Commodity,
		Variety:     m.Variety,
		Grade:       m.Grade,
		MarketName:  m.MarketName,
		District:    m.District,
		StateName:   m.StateName,
		ModalPrice:  m.MandiPrice,
		MinPrice:    m.MinPrice,
		MaxPrice:    m.MaxPrice,
		PrevPrice:   prev,
		PriceChange: m.PriceChange,
		ChangePct:   changePct,
		Trend:       m.Trend,
		TrendIcon:   icon,
		Arrival:     m.Arrival,
		BuyerSignal: m.BuyerSignal,
		Date:        m.ArrivalDate,
		LastUpdated: m.LastUpdated,
		Status:      status,
	}
}

// ToChartSeries turns a daily series into column-oriented chart data,
// with per-date sample counts as the arrival axis.
func ToChartSeries(series []models.PriceObservation) models.ChartSeries {
	chart := models.ChartSeries{
		Labels:  make([]string, 0, len(series)),
		Price:   make([]float64, 0, len(series)),
		Arrival: make([]int, 0, len(series)),
	}
	for _, obs := range series {
		chart.Labels = append(chart.Labels, util.FormatChartLabel(obs.Date))
		chart.Price = append(chart.Price, util.Round2(obs.Price))
		chart.Arrival = append(chart.Arrival, obs.SampleCount)
	}
	return chart
}

// ToMarketSummary composes the full intelligence response.
func ToMarketSummary(
	m models.MarketResult,
	momentum models.MomentumSummary,
	rec models.TradeRecommendation,
	series []models.PriceObservation,
	now time.Time,
) models.MarketSummary {
	source := m.DataSource
	if source == "" {
		source = "Agmarknet CSV"
	}
	return models.MarketSummary{
		PriceCard:      ToPriceCard(m),
		Momentum:       momentum,
		Recommendation: rec,
		Context: models.MarketContext{
			State:     m.StateName,
			Commodity: m.Commodity,
			Market:    m.MarketName,
			Source:    source,
		},
		Chart:       ToChartSeries(series),
		GeneratedAt: now.Format(summaryTimeFormat),
	}
}
