package reporter

import (
	"fmt"
	"math"
	"time"
)

func roundDuration(dur time.Duration) time.Duration {
	if dur > time.Minute {
		return dur.Round(10 * time.Second)
	}
	if dur > time.Second {
		return dur.Round(10 * time.Millisecond)
	}
	if dur > time.Millisecond {
		return dur.Round(10 * time.Microsecond)
	}
	return dur
}

// millis converts seconds to milliseconds rounded to microseconds.
func millis(seconds float64) float64 {
	return math.Round(seconds*1e6) / 1e3
}

func formatMillis(seconds float64) string {
	return fmt.Sprintf("%.3fms", seconds*1000)
}
