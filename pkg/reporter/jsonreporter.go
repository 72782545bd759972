package reporter

import (
	"encoding/json"
	"math"
)

type jsonReporter struct{}

type latencyStats struct {
	MinMs    float64 `json:"minMs"`
	MeanMs   float64 `json:"meanMs"`
	MedianMs float64 `json:"medianMs"`
	P90Ms    float64 `json:"p90Ms"`
	MaxMs    float64 `json:"maxMs"`
}

type jsonProvider struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	Organization      string  `json:"organization,omitempty"`
	Location          string  `json:"location,omitempty"`
	IPv4              string  `json:"ipv4"`
	IPv6              string  `json:"ipv6,omitempty"`
	AvgResponseTimeMs float64 `json:"avgResponseTimeMs"`
	Successes         int     `json:"successes"`
	Attempts          int     `json:"attempts"`
}

type jsonResult struct {
	TotalProviders           int            `json:"totalProviders"`
	WorkingProviders         int            `json:"workingProviders"`
	BenchmarkDurationSeconds float64        `json:"benchmarkDurationSeconds"`
	LatencyStats             *latencyStats  `json:"latencyStats,omitempty"`
	Top                      []jsonProvider `json:"top"`
}

func (s *jsonReporter) print(params reportParameters) error {
	result := jsonResult{
		TotalProviders:           params.total,
		WorkingProviders:         params.working,
		BenchmarkDurationSeconds: math.Round(roundDuration(params.benchmarkDuration).Seconds()*100) / 100,
		Top:                      make([]jsonProvider, 0, len(params.top)),
	}
	if params.hasSummary {
		result.LatencyStats = &latencyStats{
			MinMs:    millis(params.summary.Min),
			MeanMs:   millis(params.summary.Mean),
			MedianMs: millis(params.summary.Median),
			P90Ms:    millis(params.summary.P90),
			MaxMs:    millis(params.summary.Max),
		}
	}
	for i, p := range params.top {
		jp := jsonProvider{
			Rank:         i + 1,
			Name:         p.Name,
			Organization: p.Organization,
			Location:     p.Location,
			IPv4:         p.IPv4,
			IPv6:         p.IPv6,
			Successes:    p.Successes,
			Attempts:     p.Attempts,
		}
		if p.AvgResponseTime != nil {
			jp.AvgResponseTimeMs = millis(*p.AvgResponseTime)
		}
		result.Top = append(result.Top, jp)
	}

	return json.NewEncoder(params.outputWriter).Encode(result)
}
