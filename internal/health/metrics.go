package health

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var probeBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics records probe outcomes. A nil *Metrics records nothing.
type Metrics struct {
	up       *prometheus.GaugeVec
	duration *prometheus.HistogramVec
	checks   *prometheus.CounterVec
}

// NewMetrics creates the health collectors and registers them with reg.
// Collectors already registered under the same names are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ukp",
			Subsystem: "health",
			Name:      "dependency_up",
			Help:      "Whether the last probe of a dependency succeeded (1) or failed (0).",
		}, []string{"dependency"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ukp",
			Subsystem: "health",
			Name:      "probe_duration_seconds",
			Help:      "Latency distribution of dependency probes.",
			Buckets:   probeBuckets,
		}, []string{"dependency"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ukp",
			Subsystem: "health",
			Name:      "checks_total",
			Help:      "Count of aggregate health checks by outcome.",
		}, []string{"mode", "status"}),
	}

	if reg == nil {
		return m, nil
	}

	if err := reg.Register(m.up); err != nil {
		existing, err := existingCollector(err)
		if err != nil {
			return nil, err
		}
		m.up = existing.(*prometheus.GaugeVec)
	}
	if err := reg.Register(m.duration); err != nil {
		existing, err := existingCollector(err)
		if err != nil {
			return nil, err
		}
		m.duration = existing.(*prometheus.HistogramVec)
	}
	if err := reg.Register(m.checks); err != nil {
		existing, err := existingCollector(err)
		if err != nil {
			return nil, err
		}
		m.checks = existing.(*prometheus.CounterVec)
	}

	return m, nil
}

func existingCollector(err error) (prometheus.Collector, error) {
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return are.ExistingCollector, nil
	}
	return nil, err
}

func (m *Metrics) observeProbe(dependency string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	up := 1.0
	if err != nil {
		up = 0
	}
	m.up.WithLabelValues(dependency).Set(up)
	m.duration.WithLabelValues(dependency).Observe(elapsed.Seconds())
}

func (m *Metrics) observeCheck(mode string, healthy bool) {
	if m == nil {
		return
	}
	status := StatusHealthy
	if !healthy {
		status = StatusUnhealthy
	}
	m.checks.WithLabelValues(mode, status.String()).Inc()
}
