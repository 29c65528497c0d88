package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordAgentCall(string, string)          {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLastPrice(string, string, float64) {}
func (noopMetrics) RecordLatency(string, float64)           {}

type stubClimate struct {
	calls  int32
	result models.ClimateResult
	err    error
}

func (s *stubClimate) Risk(context.Context, float64, float64) (models.ClimateResult, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.result, s.err
}

type stubSatellite struct {
	result models.SatelliteResult
	err    error
}

func (s *stubSatellite) Health(context.Context, float64, float64) (models.SatelliteResult, error) {
	return s.result, s.err
}

type stubMarket struct {
	result models.MarketResult
	err    error
}

func (s *stubMarket) Data(context.Context, string, string) (models.MarketResult, error) {
	return s.result, s.err
}

type stubSynthesizer struct {
	assessment models.Assessment
	err        error
	seen       map[string]models.AgentResult
	octx       models.OrchestrationContext
}

func (s *stubSynthesizer) Synthesize(_ context.Context, agents map[string]models.AgentResult, octx models.OrchestrationContext) (models.Assessment, error) {
	s.seen = agents
	s.octx = octx
	return s.assessment, s.err
}

func newTestUseCase(climate *stubClimate, satellite *stubSatellite, market *stubMarket, synth *stubSynthesizer) *OrchestrateUseCase {
	return NewOrchestrateUseCase(OrchestrateDeps{
		Climate:     climate,
		Satellite:   satellite,
		Market:      market,
		Synthesizer: synth,
		Metrics:     noopMetrics{},
		Log:         logger.NewNop(),
		APIKey:      "test-key",
	})
}

func TestRunMergesAllAgents(t *testing.T) {
	climate := &stubClimate{result: models.ClimateResult{RiskLevel: "High", OutbreakProbability: 82}}
	satellite := &stubSatellite{result: models.SatelliteResult{NDVIScore: 0.71}}
	market := &stubMarket{result: models.MarketResult{Commodity: "Banana", Status: "success"}}
	synth := &stubSynthesizer{assessment: models.Assessment{OverallStatus: "Confirmed", ConsensusScore: 88}}

	uc := newTestUseCase(climate, satellite, market, synth)
	resp, err := uc.Run(context.Background(), models.OrchestrateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Confirmed", resp.OverallStatus)
	assert.Equal(t, 88, resp.ConsensusScore)
	assert.Equal(t, climate.result, resp.Climate)
	assert.Equal(t, satellite.result, resp.Satellite)
	assert.Equal(t, market.result, resp.Market)
	// No image was supplied, so there is no vision block at all.
	assert.Nil(t, resp.Vision)

	require.Len(t, synth.seen, 3)
	assert.Equal(t, "Kerala_Kottayam", synth.octx.Region)
	assert.Equal(t, "Banana", synth.octx.Commodity)
}

func TestRunAgentFailureBecomesErrorRecord(t *testing.T) {
	climate := &stubClimate{err: errors.New("open-meteo: status 503")}
	satellite := &stubSatellite{result: models.SatelliteResult{NDVIScore: 0.55}}
	market := &stubMarket{result: models.MarketResult{Status: "success"}}
	synth := &stubSynthesizer{assessment: models.Assessment{OverallStatus: "Confirmed"}}

	uc := newTestUseCase(climate, satellite, market, synth)
	resp, err := uc.Run(context.Background(), models.OrchestrateRequest{})
	require.NoError(t, err, "one failing agent must not fail the run")

	agentErr, ok := resp.Climate.(models.AgentError)
	require.True(t, ok, "climate should hold an error record, got %T", resp.Climate)
	assert.Equal(t, "error", agentErr.Status)
	assert.Contains(t, agentErr.Message, "503")
	// The healthy agents still contributed.
	assert.Equal(t, satellite.result, resp.Satellite)
	require.Len(t, synth.seen, 3)
}

func TestRunSuppliedPayloadSkipsAgent(t *testing.T) {
	climate := &stubClimate{result: models.ClimateResult{RiskLevel: "Low"}}
	satellite := &stubSatellite{}
	market := &stubMarket{}
	synth := &stubSynthesizer{}

	supplied := json.RawMessage(`{"risk_level":"High","outbreak_probability":91.5}`)
	uc := newTestUseCase(climate, satellite, market, synth)
	resp, err := uc.Run(context.Background(), models.OrchestrateRequest{Climate: supplied})
	require.NoError(t, err)

	assert.Equal(t, int32(0), atomic.LoadInt32(&climate.calls), "supplied payload must short the agent call")
	raw, ok := resp.Climate.(models.RawResult)
	require.True(t, ok)
	out, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.JSONEq(t, string(supplied), string(out))
}

func TestRunVisionPayloadPassesThrough(t *testing.T) {
	uc := newTestUseCase(&stubClimate{}, &stubSatellite{}, &stubMarket{}, &stubSynthesizer{})

	vision := json.RawMessage(`{"disease_name":"Tomato — Late Blight","confidence":94.2}`)
	resp, err := uc.Run(context.Background(), models.OrchestrateRequest{Vision: vision})
	require.NoError(t, err)
	require.NotNil(t, resp.Vision)
	assert.Equal(t, models.SourceVision, resp.Vision.Source())
}

func TestRunSynthesisParseErrorFallsBack(t *testing.T) {
	synth := &stubSynthesizer{
		err: &models.SynthesisParseError{Raw: "I cannot answer in JSON", Err: errors.New("invalid character 'I'")},
	}
	uc := newTestUseCase(&stubClimate{}, &stubSatellite{}, &stubMarket{}, synth)

	resp, err := uc.Run(context.Background(), models.OrchestrateRequest{})
	require.NoError(t, err, "undecodable synthesis must degrade, not fail")
	assert.Equal(t, "Under Review", resp.OverallStatus)
	assert.Equal(t, 0, resp.ConsensusScore)
	assert.Equal(t, "HOLD", resp.AIRecommendation)
	assert.Equal(t, "I cannot answer in JSON", resp.ChemicalAdvisory.Notes)
	require.Len(t, resp.Conflicts, 1)
}

func TestRunSynthesisHardErrorPropagates(t *testing.T) {
	synth := &stubSynthesizer{err: errors.New("groq: status 500")}
	uc := newTestUseCase(&stubClimate{}, &stubSatellite{}, &stubMarket{}, synth)

	_, err := uc.Run(context.Background(), models.OrchestrateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestRunMissingAPIKeyAbortsBeforeFanOut(t *testing.T) {
	climate := &stubClimate{}
	uc := NewOrchestrateUseCase(OrchestrateDeps{
		Climate:     climate,
		Satellite:   &stubSatellite{},
		Market:      &stubMarket{},
		Synthesizer: &stubSynthesizer{},
		Metrics:     noopMetrics{},
		Log:         logger.NewNop(),
	})

	_, err := uc.Run(context.Background(), models.OrchestrateRequest{})
	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_CONFIGURATION", appErr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&climate.calls))
}

func TestResolveContextExplicitCoordinates(t *testing.T) {
	uc := newTestUseCase(&stubClimate{}, &stubSatellite{}, &stubMarket{}, &stubSynthesizer{})

	lat, lon := 12.97, 77.59
	octx := uc.resolveContext(models.OrchestrateRequest{Region: "Karnataka_Bangalore", Lat: &lat, Lon: &lon})
	assert.Equal(t, 12.97, octx.Lat)
	assert.Equal(t, 77.59, octx.Lon)

	// One coordinate alone is not enough; fall back to the region map.
	octx = uc.resolveContext(models.OrchestrateRequest{Region: "Kerala_Kottayam", Lat: &lat})
	assert.Equal(t, 9.59, octx.Lat)
	assert.Equal(t, 76.52, octx.Lon)
}
