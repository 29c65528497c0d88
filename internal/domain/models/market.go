package models

import "time"

// PriceObservation is one point of a daily price series. Multiple rows
// for the same arrival date are collapsed into a single observation
// before construction.
type PriceObservation struct {
	Date        time.Time
	Price       float64
	SampleCount int
}

// MarketRecord is one raw mandi row as loaded from the regional dataset.
type MarketRecord struct {
	StateName     string
	District      string
	MarketName    string
	Commodity     string
	Variety       string
	Grade         string
	ArrivalDate   time.Time
	MinPrice      float64
	MaxPrice      float64
	ModalPrice    float64
	CommodityCode string
}

// RecordRow is the display shape of one raw record.
type RecordRow struct {
	State         string  `json:"state"`
	District      string  `json:"district"`
	Market        string  `json:"market"`
	Commodity     string  `json:"commodity"`
	Variety       string  `json:"variety"`
	Grade         string  `json:"grade"`
	ArrivalDate   string  `json:"arrival_date"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	ModalPrice    float64 `json:"modal_price"`
	CommodityCode string  `json:"commodity_code"`
}

// RecordsPage is a paginated slice of raw market records, newest first.
type RecordsPage struct {
	Records  []RecordRow `json:"records"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Error    string      `json:"error,omitempty"`
}

// MarketFilters describes what the regional datasets can answer:
// state -> districts, and region dataset -> commodities.
type MarketFilters struct {
	Topology    map[string][]string `json:"topology"`
	Commodities map[string][]string `json:"commodities"`
}

// MomentumSummary aggregates a price window into a directional reading.
type MomentumSummary struct {
	Direction  string  `json:"momentum"`
	ChangePct  float64 `json:"change_pct"`
	Volatility float64 `json:"volatility"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	PeriodDays int     `json:"period_days"`
}

// TradeRecommendation is the deterministic BUY/HOLD/SELL verdict.
type TradeRecommendation struct {
	Action     string `json:"action"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
	Score      int    `json:"score"`
}

// PriceCard is the latest-price block shaped for display.
type PriceCard struct {
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety"`
	Grade       string  `json:"grade"`
	MarketName  string  `json:"market_name"`
	District    string  `json:"district"`
	StateName   string  `json:"state_name"`
	ModalPrice  float64 `json:"modal_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	PrevPrice   float64 `json:"prev_price"`
	PriceChange float64 `json:"price_change"`
	ChangePct   float64 `json:"change_pct"`
	Trend       string  `json:"trend"`
	TrendIcon   string  `json:"trend_icon"`
	Arrival     float64 `json:"arrival"`
	BuyerSignal string  `json:"buyer_signal"`
	Date        string  `json:"date"`
	LastUpdated string  `json:"last_updated"`
	Status      string  `json:"status"`
}

// ChartSeries is the column-oriented shape chart widgets consume.
// Arrival carries the per-date sample count.
type ChartSeries struct {
	Labels  []string  `json:"labels"`
	Price   []float64 `json:"price"`
	Arrival []int     `json:"arrival"`
}

// MarketContext echoes which dataset answered the request.
type MarketContext struct {
	State     string `json:"state"`
	Commodity string `json:"commodity"`
	Market    string `json:"market"`
	Source    string `json:"source"`
}

// MarketSummary is the full market-intelligence response body.
type MarketSummary struct {
	PriceCard      PriceCard           `json:"price_card"`
	Momentum       MomentumSummary     `json:"momentum"`
	Recommendation TradeRecommendation `json:"recommendation"`
	Context        MarketContext       `json:"context"`
	Chart          ChartSeries         `json:"chart"`
	GeneratedAt    string              `json:"generated_at"`
}
