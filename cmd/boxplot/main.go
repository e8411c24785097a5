// Command boxplot prints the five-number summary of a dataset and draws its
// box plot.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/stats"
)

// sampleData is summarized when no values are given
var sampleData = []float64{13, 12, 9, 11, 14, 12, 10, 15, 11, 10, 7}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "boxplot: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("boxplot", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	values := flags.Float64Slice("values", nil, "comma separated dataset (default: built-in sample)")
	random := flags.IntP("random", "r", 0, "generate this many random integers instead")
	lower := flags.Int("lower", 1, "smallest random value")
	upper := flags.Int("upper", 100, "largest random value")
	seed := flags.Uint64("seed", 0, "seed for reproducible random data")
	out := flags.StringP("out", "o", "boxplot.png", "vertical plot file (png, svg, pdf); the horizontal plot gets a _horizontal suffix; empty to skip plots")
	title := flags.String("title", "", "title for both plots")
	logLevel := flags.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")

	err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	logger := logging.NewLoggerWithWriter(stderr, logging.ParseLevel(*logLevel))

	data := sampleData
	name := "sample"
	switch {
	case *random > 0 && len(*values) > 0:
		return errors.New("--values and --random are mutually exclusive")
	case *random != 0:
		var s *uint64
		if flags.Changed("seed") {
			s = seed
		}
		ints, err := stats.GenerateRandomInts(*random, *lower, *upper, s)
		if err != nil {
			return err
		}
		data = stats.Floats(ints)
		name = "random"
		logger.Debug(ctx, "generated dataset", "count", *random, "lower", *lower, "upper", *upper)
	case len(*values) > 0:
		data = *values
		name = "given"
	}

	summary, err := stats.FiveNumberSummary(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Box plot statistics for %s dataset:\n%s\n", name, summary)

	if *out == "" {
		return nil
	}
	for _, horizontal := range []bool{false, true} {
		path := *out
		if horizontal {
			path = horizontalPath(path)
		}
		opts := stats.BoxPlotOptions{Horizontal: horizontal, Title: *title}
		if err := stats.WriteBoxPlot(data, path, opts); err != nil {
			return err
		}
		logger.Info(ctx, "box plot written", "path", path, "horizontal", horizontal, "values", len(data))
	}
	return nil
}

// horizontalPath inserts _horizontal before the extension
func horizontalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_horizontal" + ext
}
