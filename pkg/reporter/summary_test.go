package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

func Test_summarize(t *testing.T) {
	latency := func(v float64) *float64 { return &v }
	ranked := []*dnsbench.Provider{
		{AvgResponseTime: latency(0.01)},
		{AvgResponseTime: latency(0.02)},
		{AvgResponseTime: latency(0.03)},
		{AvgResponseTime: latency(0.04)},
	}

	s, ok := summarize(ranked)

	require.True(t, ok)
	assert.InDelta(t, 0.01, s.Min, 1e-9)
	assert.InDelta(t, 0.025, s.Mean, 1e-9)
	assert.InDelta(t, 0.025, s.Median, 1e-9)
	assert.InDelta(t, 0.04, s.P90, 1e-9)
	assert.InDelta(t, 0.04, s.Max, 1e-9)
}

func Test_summarize_single(t *testing.T) {
	avg := 0.05

	s, ok := summarize([]*dnsbench.Provider{{AvgResponseTime: &avg}})

	require.True(t, ok)
	assert.InDelta(t, 0.05, s.P90, 1e-9)
	assert.InDelta(t, 0.05, s.Median, 1e-9)
}

func Test_summarize_empty(t *testing.T) {
	_, ok := summarize([]*dnsbench.Provider{{Name: "unbenchmarked"}})

	assert.False(t, ok)
}

func Test_histogram_clampsFastLatencies(t *testing.T) {
	tooFast := 0.0
	ranked := []*dnsbench.Provider{{AvgResponseTime: &tooFast}}

	hist := histogram(ranked)

	assert.Equal(t, int64(1), hist.TotalCount())
	assert.True(t, hist.ValuesAreEquivalent(int64(time.Microsecond), hist.Min()))
}

func Test_histogram_tracksLatenciesAboveDefaultTimeout(t *testing.T) {
	slow := (10 * time.Second).Seconds()
	fast := (20 * time.Millisecond).Seconds()
	ranked := []*dnsbench.Provider{{AvgResponseTime: &fast}, {AvgResponseTime: &slow}}

	hist := histogram(ranked)

	assert.Equal(t, int64(2), hist.TotalCount())
	assert.InEpsilon(t, float64(10*time.Second), float64(hist.Max()), 0.01)
	assert.Greater(t, hist.Max(), int64(dnsbench.DefaultTimeout))
}
