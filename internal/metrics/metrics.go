// Package metrics exposes Prometheus collectors for tool invocations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Outcome labels for weather_mcp_tool_calls_total.
const (
	OutcomeSuccess   = "success"
	OutcomeSoftError = "soft_error"
	OutcomeNotFound  = "not_found"
	OutcomeBadInput  = "bad_request"
	OutcomeFailed    = "execution_error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	toolCalls        *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	gatherer         prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of weather provider requests by result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		gatherer: reg,
	}
	reg.MustRegister(m.toolCalls, m.upstreamDuration)
	return m
}

// ObserveCall counts one tool invocation.
func (m *Metrics) ObserveCall(tool, outcome string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// ObserveUpstream records one upstream round trip. result is "ok", "status_<code>" or "transport".
func (m *Metrics) ObserveUpstream(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(result).Observe(d.Seconds())
}

// CallCount returns the current counter value for (tool, outcome).
func (m *Metrics) CallCount(tool, outcome string) float64 {
	if m == nil {
		return 0
	}
	c, err := m.toolCalls.GetMetricWithLabelValues(tool, outcome)
	if err != nil {
		return 0
	}
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0
	}
	return pb.GetCounter().GetValue()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
