package plot

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/chart"
)

func dates(n int) []api.Date {
	out := make([]api.Date, n)
	for i := range out {
		out[i] = api.MustDate("2024-03-01").AddDays(i)
	}
	return out
}

func TestRenderForecast(t *testing.T) {
	b := &api.ForecastBundle{
		Disease:         "Dengue",
		HistoricalDates: dates(3),
		HistoricalCases: []int{10, 20, 18},
		ForecastDates:   dates(6)[3:],
		PredictedCases:  []float64{21, 25, 5},
	}
	var buf bytes.Buffer
	if err := Render(&buf, chart.ForecastFigure(b)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dy(); got != Height {
		t.Fatalf("height = %d, want %d", got, Height)
	}
}

func TestRenderClimateAddsRainfallPanel(t *testing.T) {
	c := &api.ClimateBundle{
		Dates:       dates(4),
		Temperature: []float64{28, 29, 30, 29.5},
		Humidity:    []float64{80, 80, 80, 80},
		Rainfall:    []float64{0, 12.4, 3, 0},
	}
	path := filepath.Join(t.TempDir(), "climate.png")
	if err := WriteFile(path, chart.ClimateFigure(c)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, chart.ClimateFigure(c)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dy(); got != Height+PanelHeight {
		t.Fatalf("height = %d, want %d", got, Height+PanelHeight)
	}
}

func TestRenderEmptyFigure(t *testing.T) {
	if err := Render(&bytes.Buffer{}, chart.Figure{}); !errors.Is(err, ErrEmptyFigure) {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestColor(t *testing.T) {
	c := color("#667eea")
	if c.R != 0x66 || c.G != 0x7e || c.B != 0xea || c.A != 255 {
		t.Fatalf("color = %+v", c)
	}
}
