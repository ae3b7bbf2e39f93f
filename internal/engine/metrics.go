package engine

import (
	"errors"
	"time"

	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/prometheus/client_golang/prometheus"
)

var durationBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600}

type metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "udeploy",
			Name:      "deployments_total",
			Help:      "Number of finished deployments",
		}, []string{"platform", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "udeploy",
			Name:      "deployment_duration_seconds",
			Help:      "Time from request to final deployment status",
			Buckets:   durationBuckets,
		}, []string{"platform"}),
	}

	if registerer == nil {
		return m
	}

	m.total = register(registerer, m.total)
	m.duration = register(registerer, m.duration)

	return m
}

// register reuses an already registered collector of the same shape, so
// several engines can share one registry.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}

	return collector
}

func (m *metrics) observe(d *deployments.Deployment, started time.Time) {
	m.total.WithLabelValues(d.Platform, string(d.Status)).Inc()
	m.duration.WithLabelValues(d.Platform).Observe(time.Since(started).Seconds())
}
