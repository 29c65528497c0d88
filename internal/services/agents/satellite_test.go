package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeVegetationHealthOptimal(t *testing.T) {
	// Ideal sun, temperature at the 22.5°C peak, moderate humidity and
	// rain hit every band's maximum.
	got := ComputeVegetationHealth(6, 22.5, 70, 10)
	assert.Equal(t, 1.0, got)
}

func TestComputeVegetationHealthHarsh(t *testing.T) {
	got := ComputeVegetationHealth(0, 0, 20, 0)
	assert.Equal(t, 0.16, got)
}

func TestComputeVegetationHealthTemperaturePeak(t *testing.T) {
	base := func(temp float64) float64 { return ComputeVegetationHealth(0, temp, 0, 0) }
	// 22.5 earns the full 0.30; the edges of the 15–30 band earn half.
	assert.Equal(t, 0.43, base(22.5))
	assert.Equal(t, 0.28, base(15))
	assert.Equal(t, 0.28, base(30))
	// Marginal bands get a flat 0.10.
	assert.Equal(t, 0.23, base(10))
	assert.Equal(t, 0.23, base(35))
}

func TestComputeVegetationHealthFloodingStress(t *testing.T) {
	moderate := ComputeVegetationHealth(6, 22.5, 70, 10)
	flooded := ComputeVegetationHealth(6, 22.5, 70, 50)
	assert.Greater(t, moderate, flooded)
}

func TestClassifyStress(t *testing.T) {
	assert.Equal(t, "Low", ClassifyStress(0.65))
	assert.Equal(t, "Moderate", ClassifyStress(0.64))
	assert.Equal(t, "Moderate", ClassifyStress(0.45))
	assert.Equal(t, "High", ClassifyStress(0.44))
	assert.Equal(t, "High", ClassifyStress(0.25))
	assert.Equal(t, "Severe", ClassifyStress(0.24))
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, "Improving", ClassifyTrend(0.70, 0.60))
	assert.Equal(t, "Declining", ClassifyTrend(0.60, 0.70))
	assert.Equal(t, "Stable", ClassifyTrend(0.65, 0.62))
	assert.Equal(t, "Stable", ClassifyTrend(0.62, 0.65))
}

func TestCleanSeriesDropsFillValues(t *testing.T) {
	got := cleanSeries(map[string]float64{
		"20250103": 3,
		"20250101": 1,
		"20250102": -999,
	})
	assert.Equal(t, []float64{1, 3}, got)
}
