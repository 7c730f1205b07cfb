package fbcanal

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/huangjunwen/fbcanal/event"
)

// Metrics are prometheus counters of a Plugin. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	events       *prometheus.CounterVec
	discarded    prometheus.Counter
	segments     *prometheus.CounterVec
	decodeErrors prometheus.Counter
}

// NewMetrics creates Metrics and registers them to reg (if not nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fbcanal_events_total",
			Help: "Events appended to segment documents",
		}, []string{"kind"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fbcanal_events_discarded_total",
			Help: "Buffered events thrown away by rollbacks",
		}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fbcanal_segments_total",
			Help: "Finished segments",
		}, []string{"result"}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fbcanal_decode_errors_total",
			Help: "Records that failed to decode",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.events, m.discarded, m.segments, m.decodeErrors)
	}
	return m
}

func (m *Metrics) eventAppended(kind event.Kind) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) eventsDiscarded(tnx int64, n int) {
	if m == nil {
		return
	}
	m.discarded.Add(float64(n))
}

func (m *Metrics) segmentFinished(written bool) {
	if m == nil {
		return
	}
	result := "skipped"
	if written {
		result = "written"
	}
	m.segments.WithLabelValues(result).Inc()
}

func (m *Metrics) decodeFailed() {
	if m == nil {
		return
	}
	m.decodeErrors.Inc()
}
