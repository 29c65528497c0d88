package service

import (
	"context"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
)

// ClimateAgent scores disease outbreak risk from weather conditions.
type ClimateAgent interface {
	Risk(ctx context.Context, lat, lon float64) (models.ClimateResult, error)
}

// SatelliteAgent estimates vegetation health from remote sensing data.
type SatelliteAgent interface {
	Health(ctx context.Context, lat, lon float64) (models.SatelliteResult, error)
}

// VisionAgent classifies a leaf photograph.
type VisionAgent interface {
	Analyze(ctx context.Context, image []byte) (models.VisionResult, error)
}

// MarketAgent summarizes current mandi conditions for a commodity.
type MarketAgent interface {
	Data(ctx context.Context, region, commodity string) (models.MarketResult, error)
}

// Synthesizer turns the merged agent payloads into a structured
// verdict. A reply that cannot be decoded surfaces as
// *models.SynthesisParseError.
type Synthesizer interface {
	Synthesize(ctx context.Context, agents map[string]models.AgentResult, octx models.OrchestrationContext) (models.Assessment, error)
}

// GrowthPlanner produces a financial and technology roadmap for a
// farmer profile.
type GrowthPlanner interface {
	Roadmap(ctx context.Context, profile models.GrowthProfile) (models.GrowthRoadmap, error)
}
