package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOutbreakProbabilityWorstCase(t *testing.T) {
	// 24°C at 90%+ humidity, heavy rain and still air maxes every band.
	got := ComputeOutbreakProbability(24, 95, 25, 2)
	assert.Equal(t, 100.0, got)
}

func TestComputeOutbreakProbabilityDryAndWindy(t *testing.T) {
	got := ComputeOutbreakProbability(40, 30, 0, 25)
	assert.Equal(t, 0.0, got)
}

func TestComputeOutbreakProbabilityTemperaturePeak(t *testing.T) {
	at24 := ComputeOutbreakProbability(24, 0, 0, 25)
	at20 := ComputeOutbreakProbability(20, 0, 0, 25)
	at28 := ComputeOutbreakProbability(28, 0, 0, 25)
	assert.Equal(t, 40.0, at24)
	assert.Equal(t, 24.0, at20)
	assert.Equal(t, 24.0, at28)
	// Marginal bands either side of the sweet spot score a flat 10.
	assert.Equal(t, 10.0, ComputeOutbreakProbability(15, 0, 0, 25))
	assert.Equal(t, 10.0, ComputeOutbreakProbability(32, 0, 0, 25))
}

func TestComputeOutbreakProbabilityHumidityBands(t *testing.T) {
	tests := []struct {
		humidity float64
		want     float64
	}{
		{95, 30}, {90, 30}, {85, 25}, {75, 15}, {65, 8}, {50, 0},
	}
	for _, tt := range tests {
		got := ComputeOutbreakProbability(40, tt.humidity, 0, 25)
		assert.Equal(t, tt.want, got, "humidity=%v", tt.humidity)
	}
}

func TestClassifyRisk(t *testing.T) {
	assert.Equal(t, "High", ClassifyRisk(70))
	assert.Equal(t, "Moderate", ClassifyRisk(69.9))
	assert.Equal(t, "Moderate", ClassifyRisk(40))
	assert.Equal(t, "Low", ClassifyRisk(39.9))
	assert.Equal(t, "Low", ClassifyRisk(0))
}

func TestForecastSummaryLowRisk(t *testing.T) {
	got := forecastSummary(35, 40, 0, "Low")
	assert.Equal(t, "Current conditions show low disease risk. Temperature at 35°C with 40% humidity.", got)
}

func TestForecastSummaryHighRisk(t *testing.T) {
	got := forecastSummary(24, 90, 12, "High")
	assert.Contains(t, got, "high humidity, warm temperatures, recent precipitation")
	assert.Contains(t, got, "Immediate preventive action recommended.")
}
