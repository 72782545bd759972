package dnsbench

import (
	"sort"
	"time"
)

// Provider is a DNS provider under benchmark.
type Provider struct {
	Name         string `json:"name" yaml:"name"`
	Organization string `json:"organization" yaml:"organization"`
	Location     string `json:"location" yaml:"location"`
	IPv4         string `json:"ipv4" yaml:"ipv4"`
	// IPv6 is only displayed, providers are always probed over IPv4.
	IPv6 string `json:"ipv6,omitempty" yaml:"ipv6,omitempty"`

	// AvgResponseTime is the average duration of successful probes in seconds.
	// It is nil until at least one probe against the provider succeeds.
	AvgResponseTime *float64 `json:"avgResponseTime,omitempty" yaml:"-"`

	// Attempts is the number of probes issued during the last benchmark.
	Attempts int `json:"attempts" yaml:"-"`
	// Successes is the number of probes that resolved in time during the last benchmark.
	Successes int `json:"successes" yaml:"-"`
}

// Latency returns the average response time of the provider and whether it was measured at all.
func (p *Provider) Latency() (time.Duration, bool) {
	if p.AvgResponseTime == nil {
		return 0, false
	}
	return time.Duration(*p.AvgResponseTime * float64(time.Second)), true
}

// Benchmarked reports whether at least one probe against the provider succeeded.
func (p *Provider) Benchmarked() bool {
	return p.AvgResponseTime != nil
}

func (p *Provider) reset() {
	p.AvgResponseTime = nil
	p.Attempts = 0
	p.Successes = 0
}

// Rank returns the benchmarked providers sorted ascending by their average response time.
// Providers with equal response times keep their relative order. The input slice is not modified.
func Rank(providers []*Provider) []*Provider {
	ranked := make([]*Provider, 0, len(providers))
	for _, p := range providers {
		if p.Benchmarked() {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].AvgResponseTime < *ranked[j].AvgResponseTime
	})
	return ranked
}
