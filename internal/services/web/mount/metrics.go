package mount

import (
	"time"

	"github.com/louisbranch/festival/internal/services/web/platform/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// unknownUnitLabel replaces unregistered names in metric labels so request
// input cannot grow label cardinality.
const unknownUnitLabel = "unknown"

// Metrics records dispatcher outcomes.
type Metrics struct {
	mounts      *prometheus.CounterVec
	loadSeconds *prometheus.HistogramVec
}

// NewMetrics registers dispatcher metrics with reg. Dispatchers built over
// the same registry share one set of series.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		mounts: observability.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "festival_unit_mounts_total",
			Help: "Unit mount attempts by unit and outcome.",
		}, []string{"unit", "outcome"})),
		loadSeconds: observability.Register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "festival_unit_load_seconds",
			Help:    "Time spent loading and rendering a unit.",
			Buckets: prometheus.DefBuckets,
		}, []string{"unit"})),
	}
}

func (m *Metrics) observeOutcome(unit string, status Status) {
	if m == nil {
		return
	}
	if unit == "" || status == StatusUnknownUnit {
		unit = unknownUnitLabel
	}
	m.mounts.WithLabelValues(unit, status.String()).Inc()
}

func (m *Metrics) observeLoad(unit string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.loadSeconds.WithLabelValues(unit).Observe(elapsed.Seconds())
}
