package reporter

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"github.com/tantalor93/dnsrank/pkg/printutils"
)

type standardReporter struct{}

func (s *standardReporter) print(params reportParameters) error {
	w := params.outputWriter

	if len(params.top) > 0 {
		title := "Top " + strconv.Itoa(len(params.top)) + " Fastest DNS Providers:"
		printutils.NeutralFprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
		for _, p := range params.top {
			printProvider(w, p)
		}
	}

	if params.working > 0 {
		printutils.SuccessFprintf(w, "\nTotal working DNS servers: %d\n", params.working)
	} else {
		printutils.ErrFprintf(w, "\nTotal working DNS servers: %d\n", params.working)
	}
	if unreachable := params.total - params.working; unreachable > 0 {
		printutils.ErrFprintf(w, "Unreachable DNS servers:\t%d\n", unreachable)
	}
	printutils.NeutralFprintf(w, "Time taken for benchmark:\t%s\n",
		printutils.HighlightSprint(roundDuration(params.benchmarkDuration)))

	if params.hasSummary {
		printutils.NeutralFprintf(w, "\nAverage response times of working DNS servers:\n")
		printutils.NeutralFprintf(w, "\t min:\t\t%s\n", printutils.HighlightSprint(formatMillis(params.summary.Min)))
		printutils.NeutralFprintf(w, "\t mean:\t\t%s\n", printutils.HighlightSprint(formatMillis(params.summary.Mean)))
		printutils.NeutralFprintf(w, "\t median:\t%s\n", printutils.HighlightSprint(formatMillis(params.summary.Median)))
		printutils.NeutralFprintf(w, "\t p90:\t\t%s\n", printutils.HighlightSprint(formatMillis(params.summary.P90)))
		printutils.NeutralFprintf(w, "\t max:\t\t%s\n", printutils.HighlightSprint(formatMillis(params.summary.Max)))
	}

	if tc := params.hist.TotalCount(); params.options.Distribution && tc > 1 {
		printutils.NeutralFprintf(w, "\nDNS server latency distribution, %s servers\n", printutils.HighlightSprint(tc))
		printBars(w, params.hist.Distribution())
	}

	return nil
}

func printProvider(w io.Writer, p *dnsbench.Provider) {
	header := printutils.BoldSprint(p.Name)
	if p.Organization != "" {
		header += " by " + p.Organization
	}
	if p.Location != "" {
		header += " (" + p.Location + ")"
	}
	printutils.NeutralFprintf(w, "%s:\n", header)

	latency := "-"
	if p.AvgResponseTime != nil {
		latency = formatMillis(*p.AvgResponseTime)
	}
	printutils.NeutralFprintf(w, "  IPv4: %s - %s\n", p.IPv4, printutils.HighlightSprint(latency))
	if p.IPv6 != "" {
		printutils.NeutralFprintf(w, "  IPv6: %s\n", p.IPv6)
	}
	printutils.NeutralFprintf(w, "\n")
}

func printBars(w io.Writer, bars []hdrhistogram.Bar) {
	counts := make([]int64, 0, len(bars))
	lines := make([][]string, 0, len(bars))
	var max int64

	for _, b := range bars {
		if b.Count == 0 {
			continue
		}
		if b.Count > max {
			max = b.Count
		}

		line := make([]string, 3)
		lines = append(lines, line)
		counts = append(counts, b.Count)

		line[0] = roundDuration(time.Duration(b.To/2 + b.From/2)).String()
		line[2] = strconv.FormatInt(b.Count, 10)
	}

	for i, l := range lines {
		l[1] = makeBar(counts[i], max)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Latency", "", "Count"})
	table.SetBorder(false)
	table.AppendBulk(lines)
	table.Render()
}

func makeBar(c int64, max int64) string {
	if c == 0 {
		return ""
	}
	t := int((43 * float64(c) / float64(max)) + 0.5)
	return strings.Repeat(printutils.HighlightSprint("▄"), t)
}
