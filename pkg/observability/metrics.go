package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors updated by the silo engine.
type Metrics struct {
	// Saves counts snapshot flushes, partitioned by outcome ("ok"/"error").
	Saves *prometheus.CounterVec

	// Sweeps counts expiry sweep runs.
	Sweeps prometheus.Counter

	// RecordsExpired counts records removed by expiry sweeps.
	RecordsExpired prometheus.Counter

	// Records tracks the current record count (not expiry-aware, like Len).
	Records prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg registers on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "silo",
			Name:      "snapshot_saves_total",
			Help:      "Snapshot flushes to the persistence adapter, by outcome.",
		}, []string{"outcome"}),
		Sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "silo",
			Name:      "expiry_sweeps_total",
			Help:      "Expiry sweep runs.",
		}),
		RecordsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "silo",
			Name:      "records_expired_total",
			Help:      "Records removed because their TTL elapsed.",
		}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "silo",
			Name:      "records",
			Help:      "Current record count, including stale records not yet swept.",
		}),
	}

	reg.MustRegister(m.Saves, m.Sweeps, m.RecordsExpired, m.Records)
	return m
}

// ObserveSave records a flush outcome.
func (m *Metrics) ObserveSave(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Saves.WithLabelValues("error").Inc()
		return
	}
	m.Saves.WithLabelValues("ok").Inc()
}

// ObserveSweep records a sweep run and how many records it removed.
func (m *Metrics) ObserveSweep(expired int) {
	if m == nil {
		return
	}
	m.Sweeps.Inc()
	m.RecordsExpired.Add(float64(expired))
}

// SetRecords updates the record-count gauge.
func (m *Metrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.Records.Set(float64(n))
}
