package models

import "encoding/json"

// Agent source names used as keys in merged orchestration payloads.
const (
	SourceClimate   = "climate"
	SourceSatellite = "satellite"
	SourceVision    = "vision"
	SourceMarket    = "market"
)

// AgentResult is the closed set of payloads an agent invocation can
// produce: one success variant per source, an error record, or a raw
// pre-supplied payload passed through untouched.
type AgentResult interface {
	Source() string
	agentResult()
}

// ClimateResult is the Climate Risk Agent output.
type ClimateResult struct {
	Temperature         float64 `json:"temperature"`
	Humidity            float64 `json:"humidity"`
	WindSpeed           float64 `json:"wind_speed"`
	Rainfall            float64 `json:"rainfall"`
	RiskLevel           string  `json:"risk_level"`
	OutbreakProbability float64 `json:"outbreak_probability"`
	ForecastSummary     string  `json:"forecast_summary"`
	LastUpdated         string  `json:"last_updated"`
}

func (ClimateResult) Source() string { return SourceClimate }
func (ClimateResult) agentResult()   {}

// SatelliteResult is the Satellite Health Agent output.
type SatelliteResult struct {
	NDVIScore        float64 `json:"ndvi_score"`
	VegetationStress string  `json:"vegetation_stress"`
	HealthTrend      string  `json:"health_trend"`
	DataSource       string  `json:"data_source"`
	CoveragePeriod   string  `json:"coverage_period"`
	LastUpdated      string  `json:"last_updated"`
}

func (SatelliteResult) Source() string { return SourceSatellite }
func (SatelliteResult) agentResult()   {}

// Prediction is one label/confidence pair from the vision model.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// VisionResult is the Vision Detection Agent output.
type VisionResult struct {
	DiseaseName    string       `json:"disease_name"`
	Confidence     float64      `json:"confidence"`
	SeverityStage  string       `json:"severity_stage"`
	TopPredictions []Prediction `json:"top_predictions"`
	AnalyzedAt     string       `json:"analyzed_at"`
}

func (VisionResult) Source() string { return SourceVision }
func (VisionResult) agentResult()   {}

// MarketResult is the Market Intelligence Agent output.
type MarketResult struct {
	Commodity   string           `json:"commodity"`
	Variety     string           `json:"variety"`
	Grade       string           `json:"grade"`
	MarketName  string           `json:"market_name"`
	District    string           `json:"district"`
	StateName   string           `json:"state_name"`
	MandiPrice  float64          `json:"mandi_price"`
	MinPrice    float64          `json:"min_price"`
	MaxPrice    float64          `json:"max_price"`
	PrevPrice   float64          `json:"prev_price"`
	PriceChange float64          `json:"price_change"`
	Arrival     float64          `json:"arrival"`
	Trend       string           `json:"trend"`
	BuyerSignal string           `json:"buyer_signal,omitempty"`
	Momentum    *MomentumSummary `json:"momentum,omitempty"`
	ArrivalDate string           `json:"arrival_date"`
	DataSource  string           `json:"source"`
	LastUpdated string           `json:"last_updated"`
	Status      string           `json:"status"`
	Error       string           `json:"error,omitempty"`
}

func (MarketResult) Source() string { return SourceMarket }
func (MarketResult) agentResult()   {}

// AgentError is the canonical failure record for one agent invocation.
// It never carries domain fields.
type AgentError struct {
	SourceName string `json:"agent"`
	Message    string `json:"error"`
	Status     string `json:"status"`
}

func (e AgentError) Source() string { return e.SourceName }
func (AgentError) agentResult()     {}

// NewAgentError builds an error record for source.
func NewAgentError(source string, err error) AgentError {
	return AgentError{SourceName: source, Message: err.Error(), Status: "error"}
}

// RawResult carries a caller-supplied agent payload through the
// orchestration untouched, malformed or not.
type RawResult struct {
	Name    string
	Payload json.RawMessage
}

func (r RawResult) Source() string { return r.Name }
func (RawResult) agentResult()     {}

func (r RawResult) MarshalJSON() ([]byte, error) {
	if len(r.Payload) == 0 {
		return []byte("null"), nil
	}
	return r.Payload, nil
}
