package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

// writeCsv exports the whole ranking to the file.
func writeCsv(path string, ranked []*dnsbench.Provider) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file for CSV export due to '%v'", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "name", "organization", "location", "ipv4", "ipv6", "avg_response_time_ms", "successes", "attempts"}); err != nil {
		return fmt.Errorf("failed to export CSV due to '%v'", err)
	}
	for i, p := range ranked {
		latency := ""
		if p.AvgResponseTime != nil {
			latency = strconv.FormatFloat(millis(*p.AvgResponseTime), 'f', 3, 64)
		}
		record := []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Organization,
			p.Location,
			p.IPv4,
			p.IPv6,
			latency,
			strconv.Itoa(p.Successes),
			strconv.Itoa(p.Attempts),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to export CSV due to '%v'", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to export CSV due to '%v'", err)
	}
	return nil
}
