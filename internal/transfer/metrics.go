package transfer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ytget/transfer-panel/internal/model"
)

// Metrics holds the Prometheus collectors fed by a Service. A nil *Metrics
// records nothing.
type Metrics struct {
	Transfers *prometheus.CounterVec // finished transfers by final status
	Bytes     prometheus.Counter
	Active    prometheus.Gauge
	Queued    prometheus.Gauge
	Duration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transfers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_panel_transfers_total",
				Help: "Total number of finished transfers",
			},
			[]string{"status"},
		),
		Bytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transfer_panel_transferred_bytes_total",
				Help: "Bytes written by finished transfers",
			},
		),
		Active: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transfer_panel_transfers_active",
				Help: "Number of transfers holding a slot",
			},
		),
		Queued: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transfer_panel_transfers_queued",
				Help: "Number of transfers waiting for a slot",
			},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_panel_transfer_duration_seconds",
				Help:    "Time from slot acquisition to final status",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 1800},
			},
		),
	}
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.Active.Inc()
}

func (m *Metrics) finished(status model.TaskStatus, bytes int64, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Active.Dec()
	m.Transfers.WithLabelValues(status.String()).Inc()
	if status == model.TaskStatusCompleted && bytes > 0 {
		m.Bytes.Add(float64(bytes))
	}
	m.Duration.Observe(elapsed.Seconds())
}

func (m *Metrics) queued(n int) {
	if m == nil {
		return
	}
	m.Queued.Set(float64(n))
}
