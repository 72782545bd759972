package reporter

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func plotHistogramLatency(file string, ranked []*dnsbench.Provider) {
	values := latencyValues(ranked)
	if len(values) == 0 {
		// nothing to plot
		return
	}
	p := plot.New()
	p.Title.Text = "Average response times distribution"

	hist, err := plotter.NewHist(values, max(numBins(values), 1))
	if err != nil {
		panic(err)
	}
	p.X.Label.Text = "Average response time (ms)"
	p.X.Tick.Marker = hplot.Ticks{N: 5, Format: "%.0f"}
	p.Y.Label.Text = "Number of DNS servers"
	p.Y.Tick.Marker = hplot.Ticks{N: 5, Format: "%.0f"}
	hist.FillColor = color.RGBA{R: 175, G: 238, B: 238, A: 255}
	p.Add(hist)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to save plot.", err)
	}
}

func plotTopLatencies(file string, top []*dnsbench.Provider) {
	values := latencyValues(top)
	if len(values) == 0 {
		// nothing to plot
		return
	}
	names := make([]string, 0, len(top))
	for _, p := range top {
		names = append(names, p.IPv4)
	}

	p := plot.New()
	p.Title.Text = "Fastest DNS servers"
	p.Y.Label.Text = "Average response time (ms)"
	p.Y.Tick.Marker = hplot.Ticks{N: 5, Format: "%.1f"}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1.2
	p.NominalX(names...)

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		panic(err)
	}
	bars.Color = color.RGBA{R: 127, G: 188, B: 165, A: 255}
	p.Add(bars)

	width := max(6*vg.Inch, vg.Length(len(values))*vg.Points(40))
	if err := p.Save(width, 6*vg.Inch, file); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to save plot.", err)
	}
}

func latencyValues(providers []*dnsbench.Provider) plotter.Values {
	var values plotter.Values
	for _, p := range providers {
		if p.AvgResponseTime != nil {
			values = append(values, *p.AvgResponseTime*1000)
		}
	}
	return values
}

// numBins calculates number of bins for histogram.
func numBins(values plotter.Values) int {
	n := float64(len(values))

	// small dataset
	if n < 100 {
		sqrt := math.Sqrt(n)
		return int(math.Min(15, sqrt))
	}

	// medium dataset - use Rice's rule
	if n < 1000 {
		rice := 2 * math.Cbrt(n)
		return int(math.Min(30, rice))
	}

	// large dataset - use Doane's rule
	skewness := stat.Skew(values, nil)
	sigmaG := math.Sqrt(6 * (n - 2) / ((n + 1) * (n + 3)))
	doane := 1 + math.Log2(n) + math.Log2(1+math.Abs(skewness)/sigmaG)
	return int(math.Min(50, doane))
}
