package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	agentCalls     *prometheus.CounterVec
	agentErrors    *prometheus.CounterVec
	lastModalPrice *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		agentCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leafnet_agent_calls_total",
				Help: "Total number of agent invocations by source and outcome",
			},
			[]string{"agent", "result"},
		),
		agentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leafnet_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastModalPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "leafnet_last_modal_price",
				Help: "Last observed modal price per region and commodity",
			},
			[]string{"region", "commodity"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "leafnet_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAgentCall records one agent invocation outcome ("ok" or "error").
func (r *Recorder) RecordAgentCall(agent, result string) {
	r.agentCalls.WithLabelValues(agent, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.agentErrors.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last modal price for a region+commodity.
func (r *Recorder) RecordLastPrice(region, commodity string, price float64) {
	r.lastModalPrice.WithLabelValues(region, commodity).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
