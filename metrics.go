package undofsm

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a Machine reports to.
// The history gauges describe a single machine; to track several machines on one
// registry, give each its own Metrics on a prometheus.WrapRegistererWith registerer.
type Metrics struct {
	changes       *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	historyLength prometheus.Gauge
	historyCursor prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "undofsm_state_changes_total",
				Help: "Total number of settled state changes",
			},
			[]string{"kind", "to"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "undofsm_rejected_events_total",
				Help: "Total number of events with no transition from the current state",
			},
			[]string{"state", "event"},
		),
		historyLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "undofsm_history_length",
			Help: "Number of recorded history entries",
		}),
		historyCursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "undofsm_history_cursor",
			Help: "Index of the active history entry, -1 when history is empty",
		}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.changes, err = register(reg, m.changes); err != nil {
		return nil, err
	}
	if m.rejected, err = register(reg, m.rejected); err != nil {
		return nil, err
	}
	if m.historyLength, err = register(reg, m.historyLength); err != nil {
		return nil, err
	}
	if m.historyCursor, err = register(reg, m.historyCursor); err != nil {
		return nil, err
	}
	return m, nil
}

// register adopts an already registered identical collector instead of failing
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) observeChange(c Change, h *history) {
	if m == nil {
		return
	}
	m.changes.WithLabelValues(c.Kind.String(), string(c.To)).Inc()
	m.observeHistory(h)
}

func (m *Metrics) observeHistory(h *history) {
	if m == nil {
		return
	}
	m.historyLength.Set(float64(len(h.entries)))
	m.historyCursor.Set(float64(h.cursor))
}

func (m *Metrics) observeRejected(state StateID, event EventID) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(string(state), string(event)).Inc()
}
