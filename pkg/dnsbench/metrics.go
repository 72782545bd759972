package dnsbench

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	probeSuccess = "success"
	probeTimeout = "timeout"
	probeError   = "error"

	providerBenchmarked = "benchmarked"
	providerUnreachable = "unreachable"
	providerInvalid     = "invalid"
)

var (
	probeDurationMetrics = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dnsrank",
		Name:      "probe_duration_seconds",
		Help:      "Duration of successful probes in seconds",
	})

	probeTotalMetrics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnsrank",
		Name:      "probe_total",
		Help:      "The total number of probes by outcome",
	}, []string{"outcome"})

	providersTotalMetrics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnsrank",
		Name:      "providers_total",
		Help:      "The total number of probed providers by status",
	}, []string{"status"})
)

func observeProbe(dur time.Duration, err error) {
	switch {
	case err == nil:
		probeTotalMetrics.WithLabelValues(probeSuccess).Inc()
		probeDurationMetrics.Observe(dur.Seconds())
	case errors.Is(err, ErrProbeTimeout):
		probeTotalMetrics.WithLabelValues(probeTimeout).Inc()
	default:
		probeTotalMetrics.WithLabelValues(probeError).Inc()
	}
}
