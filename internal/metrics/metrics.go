// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taxwiser"

// Metrics holds the server's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests   *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
	fieldsChanged prometheus.Histogram
	autosaves     *prometheus.CounterVec
	assistant     *prometheus.CounterVec
}

// New registers the collectors on a fresh registry. sessions reports the
// number of open sessions at scrape time.
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		fieldsChanged: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recompute_changed_fields",
			Help:      "Fields whose value or signal changed per edit.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		autosaves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autosaves_total",
			Help:      "Background saves triggered by navigation, by result.",
		}, []string{"result"}),
		assistant: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_replies_total",
			Help:      "Assistant replies by kind.",
		}, []string{"kind"}),
	}

	if sessions != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_sessions",
			Help:      "Returns currently in progress.",
		}, func() float64 { return float64(sessions()) })
	}
	reg.MustRegister(collectors.NewGoCollector())

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// ObserveRecompute records how many fields one edit changed.
func (m *Metrics) ObserveRecompute(changed int) {
	if m == nil {
		return
	}
	m.fieldsChanged.Observe(float64(changed))
}

// Autosave records a background save result: "ok" or "error".
func (m *Metrics) Autosave(result string) {
	if m == nil {
		return
	}
	m.autosaves.WithLabelValues(result).Inc()
}

// AssistantReply records the kind of an assistant answer.
func (m *Metrics) AssistantReply(kind string) {
	if m == nil {
		return
	}
	m.assistant.WithLabelValues(kind).Inc()
}
