package reporter

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/montanaflynn/stats"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

const (
	histMin       = int64(time.Microsecond)
	histPrecision = 2
)

// summary holds statistics of the average response times of ranked providers, all values are in seconds.
type summary struct {
	Min    float64
	Mean   float64
	Median float64
	P90    float64
	Max    float64
}

func latencies(ranked []*dnsbench.Provider) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(ranked))
	for _, p := range ranked {
		if p.AvgResponseTime != nil {
			data = append(data, *p.AvgResponseTime)
		}
	}
	return data
}

// summarize computes statistics of provider latencies, it returns false when there is nothing to summarize.
func summarize(ranked []*dnsbench.Provider) (summary, bool) {
	data := latencies(ranked)
	if data.Len() == 0 {
		return summary{}, false
	}
	var s summary
	var err error
	if s.Min, err = data.Min(); err != nil {
		return summary{}, false
	}
	if s.Max, err = data.Max(); err != nil {
		return summary{}, false
	}
	if s.Mean, err = data.Mean(); err != nil {
		return summary{}, false
	}
	if s.Median, err = data.Median(); err != nil {
		return summary{}, false
	}
	if s.P90, err = data.PercentileNearestRank(90); err != nil {
		return summary{}, false
	}
	return s, true
}

// histogram records provider latencies in nanoseconds. The trackable range covers at least
// dnsbench.DefaultTimeout and grows to the slowest latency, latencies under a microsecond are clamped.
func histogram(ranked []*dnsbench.Provider) *hdrhistogram.Histogram {
	data := latencies(ranked)
	values := make([]int64, 0, len(data))
	highest := int64(dnsbench.DefaultTimeout)
	for _, v := range data {
		ns := max(int64(v*float64(time.Second)), histMin)
		highest = max(highest, ns)
		values = append(values, ns)
	}

	hist := hdrhistogram.New(histMin, highest, histPrecision)
	for _, ns := range values {
		_ = hist.RecordValue(ns)
	}
	return hist
}
