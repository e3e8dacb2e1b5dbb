package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	checks   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "podgraph",
			Name:      "access_checks_total",
			Help:      "Access check requests, labeled by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "podgraph",
			Name:      "access_check_duration_seconds",
			Help:      "Latency of access check requests.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.checks, m.duration)
	return m
}

const (
	outcomeOK       = "ok"
	outcomeNoACR    = "no_acr"
	outcomeBadInput = "bad_input"
	outcomeError    = "error"
)
