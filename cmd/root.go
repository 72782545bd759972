package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tantalor93/dnsrank/pkg/catalog"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"github.com/tantalor93/dnsrank/pkg/printutils"
	"github.com/tantalor93/dnsrank/pkg/reporter"
)

var (
	// Version is set during release of project during build process.
	Version = "development"

	author = "Ondrej Benkovsky <obenky@gmail.com>"
)

var (
	pApp = kingpin.New("dnsrank", "Ranks public DNS providers by their response time.").Author(author)

	ranking Ranking
)

func init() {
	pApp.Flag("catalog", "Catalog of DNS providers to benchmark. It can be a local file, optionally referenced using @<file-path>, "+
		"or a resource accessible using HTTP, which is downloaded in-memory. Supported are CSV files in the public-dns.info layout "+
		"and YAML files with a list of 'providers'.").
		Short('f').Default(catalog.DefaultURL).StringVar(&ranking.Catalog)

	pApp.Flag("catalog-format", "Format of the catalog. Detected from the catalog extension by default. Supported values: csv, yaml.").
		EnumVar(&ranking.CatalogFormat, "csv", "yaml")

	pApp.Flag("builtin", "Benchmark the built-in catalog of well-known public DNS providers instead of downloading one.").
		Default("false").BoolVar(&ranking.Builtin)

	pApp.Flag("min-reliability", "Skip catalog entries with reliability lower than the specified value. Applicable for CSV catalogs.").
		Default("0").Float64Var(&ranking.MinReliability)

	pApp.Flag("export-catalog", "Export the loaded catalog as YAML to the file, it can be used as --catalog later.").
		PlaceHolder("/path/to/catalog.yaml").StringVar(&ranking.ExportCatalog)

	pApp.Flag("domain", "Domain resolved against each provider. Repeatable flag. "+
		"By default google.com, cloudflare.com, microsoft.com, github.com and netflix.com are resolved.").
		Short('d').StringsVar(&ranking.Domains)

	pApp.Flag("parallelism", "Number of processing units used to size the chunks of concurrently benchmarked providers. "+
		"Defaults to the number of CPUs.").
		Short('p').Default(fmt.Sprint(runtime.NumCPU())).IntVar(&ranking.Parallelism)

	pApp.Flag("timeout", "Upper bound of a single lookup including all resolver attempts.").
		Default(dnsbench.DefaultTimeout.String()).DurationVar(&ranking.Timeout)

	pApp.Flag("resolver-timeout", "Timeout of a single DNS exchange.").
		Default(dnsbench.DefaultResolverTimeout.String()).DurationVar(&ranking.ResolverTimeout)

	pApp.Flag("attempts", "Number of DNS exchanges issued for a lookup before it fails.").
		Default(fmt.Sprint(dnsbench.DefaultAttempts)).IntVar(&ranking.Attempts)

	pApp.Flag("port", "Port the providers are queried on.").
		Hidden().Default(dnsbench.DefaultPort).StringVar(&ranking.Port)

	pApp.Flag("rate-limit", "Apply a global lookups / second rate limit.").
		Short('l').Default("0").IntVar(&ranking.Rate)

	pApp.Flag("top", "Number of the fastest providers to report.").
		Short('n').Default(fmt.Sprint(dnsbench.DefaultTop)).IntVar(&ranking.Top)

	pApp.Flag("distribution", "Display distribution histogram of provider response times.").
		Default("false").BoolVar(&ranking.Distribution)

	pApp.Flag("csv", "Export the whole ranking to CSV.").
		Default("").PlaceHolder("/path/to/file.csv").StringVar(&ranking.Csv)

	pApp.Flag("json", "Report results as JSON.").BoolVar(&ranking.JSON)

	pApp.Flag("silent", "Disable stdout.").Default("false").BoolVar(&ranking.Silent)

	pApp.Flag("color", "ANSI Color output. Enabled by default.").
		Default("true").BoolVar(&ranking.Color)

	pApp.Flag("progress", "Show progress of the benchmark. Enabled by default.").
		Default("true").BoolVar(&ranking.Progress)

	pApp.Flag("plot", "Plot results and export them to the directory.").
		Default("").PlaceHolder("/path/to/folder").StringVar(&ranking.PlotDir)

	pApp.Flag("plotf", "Format of graphs. Supported formats: svg, png and jpg.").
		Default(dnsbench.DefaultPlotFormat).EnumVar(&ranking.PlotFormat, "svg", "png", "jpg")

	pApp.Flag("log-level", "Level of logs written to stderr. Supported values: debug, info, warn, error.").
		Default("warn").EnumVar(&ranking.LogLevel, "debug", "info", "warn", "error")

	pApp.Flag("prometheus", "Enables Prometheus metrics endpoint on the specified address. For example :8080").
		Default("").StringVar(&ranking.PrometheusMetricsAddr)
}

// Execute starts main logic of command.
func Execute() {
	pApp.Version(Version)
	kingpin.MustParse(pApp.Parse(os.Args[1:]))

	color.NoColor = !ranking.Color
	if err := configureLogging(ranking.LogLevel); err != nil {
		printutils.ErrFprintf(os.Stderr, "There was an error while configuring logging: %s\n", err.Error())
		os.Exit(1)
	}

	if ranking.PrometheusMetricsAddr != "" {
		startMetricsServer(ranking.PrometheusMetricsAddr)
	}

	sigsInt := make(chan os.Signal, 8)
	signal.Notify(sigsInt, syscall.SIGINT)

	defer close(sigsInt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_, ok := <-sigsInt
		if !ok {
			// standard exit based on channel close
			return
		}
		fmt.Fprintf(os.Stderr, "\nCancelling benchmark ^C, again to terminate now.\n")
		cancel()
		<-sigsInt
		os.Exit(1)
	}()

	start := time.Now()
	ranked, total, err := ranking.Run(ctx)
	end := time.Now()

	if err != nil {
		printutils.ErrFprintf(os.Stderr, "There was an error while starting benchmark: %s\n", err.Error())
		os.Exit(1)
	}
	if err := reporter.PrintReport(ranking.reportOptions(), ranked, total, end.Sub(start)); err != nil {
		printutils.ErrFprintf(os.Stderr, "There was an error while printing report: %s\n", err.Error())
		os.Exit(1)
	}
}

func configureLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(lvl)
	return nil
}

func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("failed to serve Prometheus metrics")
		}
	}()
}
