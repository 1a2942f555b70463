package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"latticenoise/internal/noise"
	"latticenoise/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "value":
		os.Exit(runValue(args, os.Stdout))
	case "viz":
		os.Exit(runViz(args, os.Stdout))
	case "stats":
		os.Exit(runStats(args, os.Stdout))
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: noisetools validate <config.json>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0], os.Stdout))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: noisetools <command> [flags] [args]

Commands:
  value    [-config f] [--] x y z                     Print the noise value at a point (-- before negative x)
  viz      [-config f] [-palette p] [-size WxH]       Render a z-slice as colored ASCII art
           [-step s] [-x x] [-y y] [-z z]
  stats    [-config f] [-size WxH] [-step s]          Show range, mean, variance and histogram
           [-x x] [-y y] [-z z]
  validate <config.json>                              Load and validate a config`)
}

// sliceFlags are shared by viz and stats.
type sliceFlags struct {
	config  *string
	size    *string
	step    *float64
	x, y, z *float64
}

func addSliceFlags(fs *flag.FlagSet) sliceFlags {
	return sliceFlags{
		config: fs.String("config", "", "noise config JSON"),
		size:   fs.String("size", "64x32", "slice size in samples as WxH"),
		step:   fs.Float64("step", 0.1, "noise units between samples"),
		x:      fs.Float64("x", 0, "x of the top-left sample"),
		y:      fs.Float64("y", 0, "y of the top-left sample"),
		z:      fs.Float64("z", 0, "z of the slice"),
	}
}

func (sf sliceFlags) plane() (noise.Plane, error) {
	w, h, err := parseSize(*sf.size)
	if err != nil {
		return noise.Plane{}, err
	}
	return noise.Plane{OriginX: *sf.x, OriginY: *sf.y, Z: *sf.z, Step: *sf.step, Width: w, Height: h}, nil
}

// loadSource builds the noise source from an optional config path.
func loadSource(path string) (noise.Config, noise.Noise, error) {
	cfg := noise.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = noise.LoadConfig(path); err != nil {
			return cfg, nil, err
		}
	}
	n, err := cfg.Build()
	return cfg, n, err
}

// --- value ---

func runValue(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("value", flag.ContinueOnError)
	configPath := fs.String("config", "", "noise config JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Usage: noisetools value [-config f] x y z")
		return 1
	}
	var coords [3]float64
	for i, s := range fs.Args() {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid coordinate %q\n", s)
			return 1
		}
		coords[i] = v
	}
	_, n, err := loadSource(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, strconv.FormatFloat(n.GetValue(coords[0], coords[1], coords[2]), 'g', -1, 64))
	return 0
}

// --- viz ---

func runViz(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("viz", flag.ContinueOnError)
	sf := addSliceFlags(fs)
	paletteName := fs.String("palette", render.PaletteGray, "palette: "+strings.Join(render.PaletteNames(), ", "))
	if err := fs.Parse(args); err != nil {
		return 1
	}
	pl, err := sf.plane()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	palette, err := render.PaletteByName(*paletteName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg, n, err := loadSource(*sf.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "%s octaves=%d frequency=%g lacunarity=%g persistence=%g z=%g (%dx%d)\n",
		cfg.Source, cfg.Octaves, cfg.Frequency, cfg.Lacunarity, cfg.Persistence, pl.Z, pl.Width, pl.Height)

	var sb strings.Builder
	cells := make([]render.Cell, 0, pl.Width*render.CellWidth)
	for _, row := range noise.SamplePlane(n, pl) {
		cells = cells[:0]
		for _, v := range row {
			c := palette(v)
			for i := 0; i < render.CellWidth; i++ {
				cells = append(cells, c)
			}
		}
		render.WriteCells(&sb, cells)
		sb.WriteByte('\n')
	}
	io.WriteString(out, sb.String())
	return 0
}

// --- stats ---

const histogramBuckets = 10

func runStats(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	sf := addSliceFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	pl, err := sf.plane()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	_, n, err := loadSource(*sf.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	values := noise.SamplePlane(n, pl)
	s := noise.Summarize(values)
	fmt.Fprintf(out, "Samples:  %d (%dx%d, step %g, z %g)\n", s.Count, pl.Width, pl.Height, pl.Step, pl.Z)
	fmt.Fprintf(out, "Range:    [%+.6f, %+.6f]\n", s.Min, s.Max)
	fmt.Fprintf(out, "Mean:     %+.6f\n", s.Mean)
	fmt.Fprintf(out, "Variance: %.6f\n\n", s.Variance)

	counts := histogram(values, histogramBuckets)
	for i, c := range counts {
		lo := -1 + 2*float64(i)/histogramBuckets
		pct := 0.0
		if s.Count > 0 {
			pct = float64(c) / float64(s.Count) * 100
		}
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(out, "  [%+.1f, %+.1f) %5d (%5.1f%%) %s\n", lo, lo+2.0/histogramBuckets, c, pct, bar)
	}
	return 0
}

// histogram buckets values in [-1, 1] into n equal bins; 1 lands in the last.
func histogram(values [][]float64, n int) []int {
	counts := make([]int, n)
	for _, row := range values {
		for _, v := range row {
			i := int((v + 1) / 2 * float64(n))
			if i < 0 {
				i = 0
			}
			if i >= n {
				i = n - 1
			}
			counts[i]++
		}
	}
	return counts
}

// --- validate ---

func runValidate(path string, out io.Writer) int {
	cfg, err := noise.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(out, "FAIL: %v\n", err)
		return 1
	}
	if _, err := cfg.Build(); err != nil {
		fmt.Fprintf(out, "FAIL: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "OK: %s octaves=%d frequency=%g lacunarity=%g persistence=%g\n",
		cfg.Source, cfg.Octaves, cfg.Frequency, cfg.Lacunarity, cfg.Persistence)
	return 0
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}
