package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(_ *testing.T) {
	reg := prometheus.NewRegistry()

	_ = metrics.NewMetrics(reg)
}

func TestNewMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()

	mtr := metrics.NewMetrics(reg)
	mtr.RowsExtracted.Add(3)
	mtr.RowsInserted.WithLabelValues("employees").Inc()

	assert.InDelta(t, 3, testutil.ToFloat64(mtr.RowsExtracted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(mtr.RowsInserted.WithLabelValues("employees")), 0)
}
