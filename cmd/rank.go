package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/schollz/progressbar/v3"
	"github.com/tantalor93/dnsrank/internal/sysutil"
	"github.com/tantalor93/dnsrank/pkg/catalog"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"github.com/tantalor93/dnsrank/pkg/printutils"
	"github.com/tantalor93/dnsrank/pkg/reporter"
	"go.uber.org/ratelimit"
)

// Ranking is representation of a ranking of DNS providers.
type Ranking struct {
	Catalog        string
	CatalogFormat  string
	Builtin        bool
	MinReliability float64
	ExportCatalog  string

	Domains     []string
	Parallelism int

	Timeout         time.Duration
	ResolverTimeout time.Duration
	Attempts        int
	Port            string

	Rate int

	Top          int
	Distribution bool
	Csv          string
	JSON         bool
	Silent       bool
	Color        bool
	Progress     bool

	PlotDir    string
	PlotFormat string

	LogLevel string

	PrometheusMetricsAddr string

	// Writer is used for output, os.Stdout is used when nil. Progress is always written to os.Stderr.
	Writer io.Writer
}

// Run loads the catalog and benchmarks all of its providers. It returns the ranked providers that responded
// and the number of benchmarked providers. An error is returned only if the benchmark cannot be started.
func (r *Ranking) Run(ctx context.Context) ([]*dnsbench.Provider, int, error) {
	providers, err := r.loadProviders(ctx)
	if err != nil {
		return nil, 0, err
	}

	if r.ExportCatalog != "" {
		if err := exportCatalog(r.ExportCatalog, providers); err != nil {
			return nil, 0, err
		}
	}

	var limiter ratelimit.Limiter
	if r.Rate > 0 {
		limiter = ratelimit.New(r.Rate)
	}

	progress := r.progress(len(providers))
	scheduler := dnsbench.Scheduler{
		Prober: &dnsbench.Prober{
			Domains:         r.Domains,
			Port:            r.Port,
			Timeout:         r.Timeout,
			ResolverTimeout: r.ResolverTimeout,
			Attempts:        r.Attempts,
			Limiter:         limiter,
		},
		Parallelism: r.Parallelism,
		Progress:    progress,
	}

	chunkSize := scheduler.ChunkSize(len(providers))
	if r.verbose() {
		printutils.NeutralFprintf(r.writer(), "Loaded %s DNS providers\n", printutils.HighlightSprint(len(providers)))
		printutils.NeutralFprintf(r.writer(), "Benchmarking with chunks of %s concurrent providers\n",
			printutils.HighlightSprint(chunkSize))
	}
	checkOpenFilesLimit(chunkSize)

	ranked := scheduler.Run(ctx, providers)
	if bar, ok := progress.(*progressbar.ProgressBar); ok {
		if err := bar.Finish(); err != nil {
			log.WithError(err).Debug("failed to finish progress bar")
		}
	}
	return ranked, len(providers), nil
}

func (r *Ranking) loadProviders(ctx context.Context) ([]*dnsbench.Provider, error) {
	if r.Builtin {
		return catalog.Builtin(), nil
	}
	loader := catalog.Loader{
		Format:         catalog.Format(r.CatalogFormat),
		MinReliability: r.MinReliability,
	}
	providers, err := loader.Load(ctx, r.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return providers, nil
}

func (r *Ranking) progress(total int) dnsbench.Progress {
	if !r.Progress || !r.verbose() {
		return dnsbench.NoProgress{}
	}
	return progressbar.NewOptions64(
		int64(total),
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

func (r *Ranking) reportOptions() reporter.Options {
	return reporter.Options{
		Writer:       r.writer(),
		Top:          r.Top,
		JSON:         r.JSON,
		Distribution: r.Distribution,
		Silent:       r.Silent,
		Csv:          r.Csv,
		PlotDir:      r.PlotDir,
		PlotFormat:   r.PlotFormat,
	}
}

func (r *Ranking) verbose() bool {
	return !r.Silent && !r.JSON
}

func (r *Ranking) writer() io.Writer {
	if r.Writer == nil {
		return os.Stdout
	}
	return r.Writer
}

// checkOpenFilesLimit warns when every provider of a chunk holding its own UDP socket could exhaust the open files limit.
func checkOpenFilesLimit(chunkSize int) {
	limit, err := sysutil.RlimitNofile()
	if err != nil {
		log.WithError(err).Debug("failed to read open files limit")
		return
	}
	if uint64(chunkSize) >= limit {
		log.WithFields(log.Fields{
			"chunkSize": chunkSize,
			"limit":     limit,
		}).Warn("chunk size reaches the open files limit, some probes may fail, consider raising --parallelism or ulimit -n")
	}
}

func exportCatalog(path string, providers []*dnsbench.Provider) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file for catalog export due to '%v'", err)
	}
	defer f.Close()
	if err := catalog.WriteYAML(f, providers); err != nil {
		return fmt.Errorf("failed to export catalog due to '%v'", err)
	}
	return nil
}
