package stats

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Box plot image size
const (
	PlotWidth  = 4 * vg.Inch
	PlotHeight = 4 * vg.Inch
	BoxWidth   = 40
)

// BoxPlotOptions controls box plot output
type BoxPlotOptions struct {
	Horizontal bool
	// Title defaults to "Box Plot" or "Horizontal Box Plot"
	Title string
}

func (o BoxPlotOptions) title() string {
	switch {
	case o.Title != "":
		return o.Title
	case o.Horizontal:
		return "Horizontal Box Plot"
	default:
		return "Box Plot"
	}
}

// NewBoxPlot builds a single-box plot of values
func NewBoxPlot(values []float64, opts BoxPlotOptions) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	p := plot.New()
	p.Title.Text = opts.title()

	box, err := plotter.NewBoxPlot(vg.Points(BoxWidth), 0, plotter.Values(values))
	if err != nil {
		return nil, fmt.Errorf("failed to build box plot: %w", err)
	}
	box.Horizontal = opts.Horizontal
	p.Add(box)

	if opts.Horizontal {
		p.X.Label.Text = "Values"
		p.HideY()
	} else {
		p.Y.Label.Text = "Values"
		p.HideX()
	}
	return p, nil
}

// WriteBoxPlot saves a box plot of values to path. The image format is
// taken from the extension (png, svg, pdf, eps, jpg, tif).
func WriteBoxPlot(values []float64, path string, opts BoxPlotOptions) error {
	p, err := NewBoxPlot(values, opts)
	if err != nil {
		return err
	}
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return fmt.Errorf("failed to save box plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

// RenderBoxPlot writes a box plot of values to w in the given format
func RenderBoxPlot(w io.Writer, values []float64, format string, opts BoxPlotOptions) error {
	p, err := NewBoxPlot(values, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("failed to encode box plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
