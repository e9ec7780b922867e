package document

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the document generation collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Generated *prometheus.CounterVec
	Dangling  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Unrouted  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Generated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tailoring_documents_generated_total",
				Help: "Documents generated, by tenant and outcome",
			},
			[]string{"tenant", "outcome"},
		),
		Dangling: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tailoring_dangling_drd_references_total",
				Help: "Requirement references to DRDs missing from the catalog",
			},
			[]string{"tenant"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tailoring_document_generation_duration_seconds",
				Help:    "Duration of document generation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tenant"},
		),
		Unrouted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "tailoring_documents_unrouted_total",
				Help: "Document requests for tenants without a document service",
			},
		),
	}
}

func (m *Metrics) observe(tenantID string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Generated.WithLabelValues(tenantID, outcome).Inc()
	m.Duration.WithLabelValues(tenantID).Observe(time.Since(started).Seconds())
}

func (m *Metrics) dangling(tenantID string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Dangling.WithLabelValues(tenantID).Add(float64(n))
}

func (m *Metrics) unrouted() {
	if m == nil {
		return
	}
	m.Unrouted.Inc()
}
