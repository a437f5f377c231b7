package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronJobMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	const job = "receipt-status-reconcile"
	m.Observe(job, 250*time.Millisecond, nil)
	m.Observe(job, time.Second, errors.New("db down"))
	m.Observe(job, 100*time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(job, resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(job, resultFailure)))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastSuccess.WithLabelValues(job)))

	families, err := reg.Gather()
	require.NoError(t, err)
	histogram := findHistogram(t, families, "mixtrack_cron_job_duration_seconds")
	assert.Equal(t, uint64(3), histogram.GetSampleCount())
	assert.InDelta(t, 1.35, histogram.GetSampleSum(), 1e-9)
}

func TestCronJobMetricsFailureDoesNotStampLastSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.Observe("", time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("unknown", resultFailure)))
	count, err := testutil.GatherAndCount(reg, "mixtrack_cron_job_last_success_timestamp_seconds")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNilCronJobMetricsIsNoop(t *testing.T) {
	m := NewCronJobMetrics(nil)
	assert.Nil(t, m)
	m.Observe("job", time.Second, nil)
}

func findHistogram(t *testing.T, families []*dto.MetricFamily, name string) *dto.Histogram {
	t.Helper()
	for _, family := range families {
		if family.GetName() == name {
			require.NotEmpty(t, family.GetMetric())
			return family.GetMetric()[0].GetHistogram()
		}
	}
	t.Fatalf("metric %q not gathered", name)
	return nil
}
