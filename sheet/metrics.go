package sheet

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	rules        prometheus.Gauge
	failures     prometheus.Counter
	removedRules prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		rules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "animseq",
			Subsystem: "sheet",
			Name:      "rules",
			Help:      "Number of keyframe rules currently in the shared sheet.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "animseq",
			Subsystem: "sheet",
			Name:      "insert_failures_total",
			Help:      "Rules rejected by the sheet.",
		}),
		removedRules: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "animseq",
			Subsystem: "sheet",
			Name:      "rules_removed_total",
			Help:      "Rules removed on unmount.",
		}),
	}
	reg.MustRegister(m.rules, m.failures, m.removedRules)
	return m
}

// The helpers below are safe on a nil receiver so a registry without metrics
// skips them.

func (m *metrics) set(n int) {
	if m != nil {
		m.rules.Set(float64(n))
	}
}

func (m *metrics) failed() {
	if m != nil {
		m.failures.Inc()
	}
}

func (m *metrics) removed() {
	if m != nil {
		m.removedRules.Inc()
	}
}
