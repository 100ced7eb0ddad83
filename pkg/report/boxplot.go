// Package report renders diagnostics of a preprocessing run.
package report

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"tabprep/pkg/data"
)

var (
	beforeColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	afterColor  = color.RGBA{R: 255, G: 80, B: 50, A: 255}
)

// OutlierBoxPlots writes a PNG with one panel per numeric column comparing
// its distribution before and after outlier removal.
func OutlierBoxPlots(before, after *data.Dataset, numeric []string, path string) error {
	if len(numeric) == 0 {
		return fmt.Errorf("no numeric columns to plot")
	}

	plots := make([][]*plot.Plot, len(numeric))
	for j, name := range numeric {
		p, err := columnPanel(before, after, name)
		if err != nil {
			return err
		}
		plots[j] = []*plot.Plot{p}
	}

	const panelHeight = 3 * vg.Inch
	img := vgimg.New(5*vg.Inch, panelHeight*vg.Length(len(numeric)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(numeric),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PNGCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

func columnPanel(before, after *data.Dataset, name string) (*plot.Plot, error) {
	b, err := presentValues(before, name)
	if err != nil {
		return nil, err
	}
	a, err := presentValues(after, name)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = name
	p.Y.Label.Text = "value"

	width := vg.Points(20)
	bb, err := plotter.NewBoxPlot(width, 0, b)
	if err != nil {
		return nil, err
	}
	bb.FillColor = beforeColor
	ab, err := plotter.NewBoxPlot(width, 1, a)
	if err != nil {
		return nil, err
	}
	ab.FillColor = afterColor

	p.Add(bb, ab)
	p.NominalX("before", "after")
	return p, nil
}

func presentValues(ds *data.Dataset, name string) (plotter.Values, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if col.Kind != data.Numeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	vals := make(plotter.Values, 0, len(col.Floats))
	for _, v := range col.Floats {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no values", name)
	}
	return vals, nil
}
