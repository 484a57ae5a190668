// Package plot renders chart figures to PNG with go-chart.
//
// go-chart draws at most two value axes on one canvas. A bar layer bound to
// the outer right axis is drawn as a companion panel under the main chart,
// sharing its time span and keeping its own scale.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tableflip.dev/outbreak/pkg/chart"
)

// ErrEmptyFigure is returned for a figure with nothing to draw.
var ErrEmptyFigure = errors.New("figure has no data")

const (
	Width       = 1024
	Height      = 420
	PanelHeight = 200
)

// Render writes f as a PNG image.
func Render(w io.Writer, f chart.Figure) error {
	if f.Empty() {
		return ErrEmptyFigure
	}

	var lines, bars []chart.Layer
	for _, l := range f.Layers {
		if len(l.X) == 0 {
			continue
		}
		if l.Style.Mark == chart.Bar {
			bars = append(bars, l)
		} else {
			lines = append(lines, l)
		}
	}

	var panels []image.Image
	if len(lines) > 0 {
		img, err := renderLines(f, lines)
		if err != nil {
			return err
		}
		panels = append(panels, img)
	}
	for _, l := range bars {
		img, err := renderBars(f, l)
		if err != nil {
			return err
		}
		panels = append(panels, img)
	}
	return png.Encode(w, stack(panels))
}

// WriteFile renders f into path.
func WriteFile(path string, f chart.Figure) error {
	var buf bytes.Buffer
	if err := Render(&buf, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func renderLines(f chart.Figure, layers []chart.Layer) (image.Image, error) {
	// go-chart draws its primary axis on the right. With a second axis in
	// use the left layers move to the secondary axis so sides match.
	twoAxes := false
	for _, l := range layers {
		if l.Axis == chart.AxisRight1 {
			twoAxes = true
		}
	}
	axisFor := func(a chart.Axis) gochart.YAxisType {
		if twoAxes && a == chart.AxisLeft {
			return gochart.YAxisSecondary
		}
		return gochart.YAxisPrimary
	}

	ch := gochart.Chart{
		Title:      f.Title,
		Width:      Width,
		Height:     Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12}},
		XAxis: gochart.XAxis{
			Name:           f.XTitle,
			ValueFormatter: gochart.TimeValueFormatterWithFormat("01-02"),
		},
	}

	byAxis := map[gochart.YAxisType][]float64{}
	for _, l := range layers {
		xs, ys := padSingle(l.X, l.Y)
		col := color(l.Style.Color)
		st := gochart.Style{
			StrokeColor: col,
			StrokeWidth: l.Style.Width,
		}
		if l.Style.Dash == chart.Dashed {
			st.StrokeDashArray = []float64{6, 4}
		}
		if l.Style.Mark == chart.LineMarkers {
			st.DotColor = col
			st.DotWidth = l.Style.MarkerSize / 2
		}
		ya := axisFor(l.Axis)
		byAxis[ya] = append(byAxis[ya], l.Y...)
		ch.Series = append(ch.Series, gochart.TimeSeries{
			Name:    l.Name,
			XValues: xs,
			YValues: ys,
			Style:   st,
			YAxis:   ya,
		})
	}

	for _, a := range f.Axes {
		if a.ID == chart.AxisRight2 {
			continue
		}
		ya := axisFor(a.ID)
		y := gochart.YAxis{Name: a.Title, Range: valueRange(a.Range, byAxis[ya])}
		if ya == gochart.YAxisSecondary {
			ch.YAxisSecondary = y
		} else {
			ch.YAxis = y
		}
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", f.Title, err)
	}
	return png.Decode(&buf)
}

func renderBars(f chart.Figure, l chart.Layer) (image.Image, error) {
	spec, _ := f.Axis(l.Axis)
	col := color(l.Style.Color)

	bars := make([]gochart.Value, len(l.Y))
	for i, v := range l.Y {
		bars[i] = gochart.Value{
			Value: v,
			Label: l.X[i].Format("01-02"),
			Style: gochart.Style{FillColor: col, StrokeColor: col},
		}
	}
	barWidth := (Width - 120) / (2 * len(bars))
	if barWidth < 2 {
		barWidth = 2
	}

	title := l.Name
	if spec.Title != "" {
		title = spec.Title
	}
	bc := gochart.BarChart{
		Title:      title,
		Width:      Width,
		Height:     PanelHeight,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12}},
		YAxis:      gochart.YAxis{Name: spec.Title, Range: valueRange(spec.Range, l.Y)},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	return png.Decode(&buf)
}

// valueRange uses the axis' own range when it has one and widens flat
// series, which go-chart rejects.
func valueRange(r *chart.Range, values []float64) gochart.Range {
	if r != nil {
		return &gochart.ContinuousRange{Min: r.Min, Max: r.Max}
	}
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return &gochart.ContinuousRange{Min: min - 1, Max: max + 1}
	}
	return nil
}

// padSingle duplicates a lone point a day later; go-chart needs two x values.
func padSingle(xs []time.Time, ys []float64) ([]time.Time, []float64) {
	if len(xs) != 1 {
		return xs, ys
	}
	return []time.Time{xs[0], xs[0].Add(24 * time.Hour)}, []float64{ys[0], ys[0]}
}

func color(hex string) drawing.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return drawing.ColorBlack
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func stack(panels []image.Image) image.Image {
	if len(panels) == 1 {
		return panels[0]
	}
	width, height := 0, 0
	for _, p := range panels {
		if w := p.Bounds().Dx(); w > width {
			width = w
		}
		height += p.Bounds().Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, p := range panels {
		b := p.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), p, b.Min, draw.Over)
		y += b.Dy()
	}
	return out
}
