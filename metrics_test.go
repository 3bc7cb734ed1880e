package undofsm

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	m, err := New(DefaultConfig(), WithMetrics(metrics))
	require.NoError(t, err)

	require.NoError(t, m.Trigger(EventStudy))
	require.NoError(t, m.Trigger(EventGetHungry))
	require.True(t, m.Undo())
	require.Error(t, m.Trigger(EventGetUp))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.changes.WithLabelValues("init", "normal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.changes.WithLabelValues("trigger", "busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.changes.WithLabelValues("trigger", "hungry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.changes.WithLabelValues("undo", "busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rejected.WithLabelValues("busy", "get_up")))

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.historyLength))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.historyCursor))

	m.ClearHistory()
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.historyLength))
	assert.Equal(t, -1.0, testutil.ToFloat64(metrics.historyCursor))
}

func TestMetricsReuseRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = New(DefaultConfig(), WithMetrics(second))
	require.NoError(t, err)

	// Both share the collectors registered first
	assert.Equal(t, 1.0, testutil.ToFloat64(first.changes.WithLabelValues("init", "normal")))
}

func TestMetricsWrappedRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()

	for _, name := range []string{"left", "right"} {
		metrics, err := NewMetrics(prometheus.WrapRegistererWith(prometheus.Labels{"machine": name}, reg))
		require.NoError(t, err)
		_, err = New(DefaultConfig(), WithMetrics(metrics))
		require.NoError(t, err)
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "undofsm_history_length" {
			assert.Len(t, mf.GetMetric(), 2)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics
	m, err := New(DefaultConfig(), WithMetrics(metrics))
	require.NoError(t, err)
	require.NoError(t, m.Trigger(EventStudy))
	m.ClearHistory()
}

func TestUnregisteredMetrics(t *testing.T) {
	metrics, err := NewMetrics(nil)
	require.NoError(t, err)

	m, err := New(DefaultConfig(), WithMetrics(metrics))
	require.NoError(t, err)
	require.NoError(t, m.Trigger(EventStudy))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.historyLength))
}
