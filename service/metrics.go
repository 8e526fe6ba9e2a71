package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports tree activity on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	inserts *prometheus.CounterVec
	depth   prometheus.Gauge
	size    prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "inserts_total",
			Help:      "Insert calls by outcome.",
		}, []string{"result"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arbor",
			Name:      "depth",
			Help:      "Deepest insertion level seen, root at 0.",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arbor",
			Name:      "values",
			Help:      "Distinct values held by the tree.",
		}),
	}
	m.Registry.MustRegister(m.inserts, m.depth, m.size)
	return m
}

func (m *Metrics) observe(inserted bool, depth, size int) {
	if inserted {
		m.inserts.WithLabelValues("inserted").Inc()
	} else {
		m.inserts.WithLabelValues("duplicate").Inc()
	}
	m.depth.Set(float64(depth))
	m.size.Set(float64(size))
}
