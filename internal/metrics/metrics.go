package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa os contadores do cliente web: chamadas à API remota e
// requisições servidas.
type Metrics struct {
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpTotal        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psique",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the backend API",
		}, []string{"resource", "method", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psique",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psique",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by the web client",
		}, []string{"route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.upstreamTotal, m.upstreamDuration, m.httpTotal)
	return m
}

// ObserveUpstream registra uma chamada à API. outcome é "ok", "http_<status>",
// "network" ou "request".
func (m *Metrics) ObserveUpstream(resource, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(resource, method, outcome).Inc()
	m.upstreamDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
