package repository

import (
	"context"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
)

// Metrics records domain-level measurements.
type Metrics interface {
	RecordAgentCall(agent, result string)
	RecordError(errType string)
	RecordLastPrice(region, commodity string, price float64)
	RecordLatency(operation string, seconds float64)
}

// Publisher emits completed assessments to downstream consumers.
type Publisher interface {
	PublishAssessment(ctx context.Context, region string, resp models.OrchestrationResponse) error
	Close() error
}
