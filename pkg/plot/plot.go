// Package plot renders analysis results into the two plot shapes the
// schematic editor shows: a Bode magnitude plot for AC sweeps and a
// multi-trace voltage plot for transient runs.
package plot

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// floorMagnitude keeps log10 finite for probes that read exactly zero.
const floorMagnitude = 1e-18

// Bode builds a magnitude-in-dB-over-log-frequency plot.
func Bode(freqs, mags []float64, title string) (*plot.Plot, error) {
	if len(freqs) != len(mags) {
		return nil, fmt.Errorf("plot: %d frequencies but %d magnitudes", len(freqs), len(mags))
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("plot: empty sweep")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude (dB)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(freqs))
	for i := range freqs {
		mag := mags[i]
		if mag < floorMagnitude {
			mag = floorMagnitude
		}
		pts[i].X = freqs[i]
		pts[i].Y = 20 * math.Log10(mag)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	p.Add(line)
	return p, nil
}

// Transient builds a voltage-over-time plot with one legend entry per probe
// trace. Traces are added in sorted name order so the output is stable.
func Transient(times []float64, traces map[string][]float64, title string) (*plot.Plot, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("plot: empty time series")
	}
	if len(traces) == 0 {
		return nil, fmt.Errorf("plot: no probe traces")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Voltage (V)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, 2*len(names))
	for _, name := range names {
		series := traces[name]
		if len(series) != len(times) {
			return nil, fmt.Errorf("plot: trace %q has %d points for %d time points", name, len(series), len(times))
		}
		pts := make(plotter.XYs, len(times))
		for i := range times {
			pts[i].X = times[i]
			pts[i].Y = series[i]
		}
		args = append(args, name, pts)
	}

	if err := plotutil.AddLines(p, args...); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	return p, nil
}

// Save writes a plot as a 6x4 inch PNG.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving %s: %w", path, err)
	}
	return nil
}
