package reporter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

// Options configures the report of a benchmark.
type Options struct {
	// Writer receives the report.
	Writer io.Writer

	// Top limits the number of providers listed, dnsbench.DefaultTop is used when zero.
	Top int

	// JSON prints the report as JSON instead of text.
	JSON bool

	// Distribution prints the distribution of provider latencies.
	Distribution bool

	// Silent disables printing of the report, exports are still produced.
	Silent bool

	// Csv is a path to the file the whole ranking is exported to.
	Csv string

	// PlotDir is a directory the plots are exported to.
	PlotDir string

	// PlotFormat is a format of plots, dnsbench.DefaultPlotFormat is used when empty.
	PlotFormat string
}

type reportParameters struct {
	options           Options
	outputWriter      io.Writer
	top               []*dnsbench.Provider
	working           int
	total             int
	summary           summary
	hasSummary        bool
	hist              *hdrhistogram.Histogram
	benchmarkDuration time.Duration
}

type reportPrinter interface {
	print(params reportParameters) error
}

// PrintReport prints the fastest ranked providers and exports the ranking to CSV and plots if configured.
// The total is the number of providers that were benchmarked.
// If there is a fatal error while printing report, an error is returned.
func PrintReport(opts Options, ranked []*dnsbench.Provider, total int, benchDuration time.Duration) error {
	top := opts.Top
	if top <= 0 {
		top = dnsbench.DefaultTop
	}
	top = min(top, len(ranked))

	if len(opts.PlotDir) != 0 {
		if err := directoryExists(opts.PlotDir); err != nil {
			return fmt.Errorf("unable to plot results: %w", err)
		}

		now := time.Now().Format(time.RFC3339)
		dir := fmt.Sprintf("%s/graphs-%s", opts.PlotDir, now)
		if err := os.Mkdir(dir, os.ModePerm); err != nil {
			return fmt.Errorf("unable to plot results: %w", err)
		}
		plotHistogramLatency(fileName(opts, dir, "latency-histogram"), ranked)
		plotTopLatencies(fileName(opts, dir, "top-latency-barchart"), ranked[:top])
	}

	if opts.Csv != "" {
		if err := writeCsv(opts.Csv, ranked); err != nil {
			return err
		}
	}

	if opts.Silent {
		return nil
	}

	s, ok := summarize(ranked)
	params := reportParameters{
		options:           opts,
		outputWriter:      opts.Writer,
		top:               ranked[:top],
		working:           len(ranked),
		total:             total,
		summary:           s,
		hasSummary:        ok,
		hist:              histogram(ranked),
		benchmarkDuration: benchDuration,
	}
	if params.outputWriter == nil {
		params.outputWriter = os.Stdout
	}
	return printer(opts).print(params)
}

func directoryExists(plotDir string) error {
	stat, err := os.Stat(plotDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' path does not point to an existing directory", plotDir)
		}
		return err
	} else if !stat.IsDir() {
		return fmt.Errorf("'%s' is not a path to a directory", plotDir)
	}
	return nil
}

func printer(opts Options) reportPrinter {
	switch {
	case opts.JSON:
		return &jsonReporter{}
	default:
		return &standardReporter{}
	}
}

func fileName(opts Options, dir, name string) string {
	format := opts.PlotFormat
	if format == "" {
		format = dnsbench.DefaultPlotFormat
	}
	return dir + "/" + name + "." + format
}
