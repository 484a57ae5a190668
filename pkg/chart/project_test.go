package chart

import (
	"encoding/json"
	"testing"

	"tableflip.dev/outbreak/pkg/api"
)

func climate() *api.ClimateBundle {
	return &api.ClimateBundle{
		Dates:       []api.Date{api.MustDate("2024-01-01"), api.MustDate("2024-01-02")},
		Temperature: []float64{28.5, 29.1},
		Humidity:    []float64{80, 82.5},
		Rainfall:    []float64{0, 12.4},
	}
}

func TestClimateBindsThreeAxes(t *testing.T) {
	layers := Climate(climate())
	if len(layers) != 3 {
		t.Fatalf("layers = %d, want 3", len(layers))
	}
	want := []struct {
		id   string
		axis Axis
		mark Mark
		col  string
	}{
		{"temperature", AxisLeft, Line, "#ff6b6b"},
		{"humidity", AxisRight1, Line, "#51cf66"},
		{"rainfall", AxisRight2, Bar, "#339af0"},
	}
	for i, w := range want {
		l := layers[i]
		if l.ID != w.id || l.Axis != w.axis || l.Style.Mark != w.mark || l.Style.Color != w.col {
			t.Fatalf("layer %d = %+v, want %+v", i, l, w)
		}
		if len(l.X) != 2 || len(l.Y) != 2 {
			t.Fatalf("layer %d has %d/%d points", i, len(l.X), len(l.Y))
		}
	}
}

func TestClimateFigureRainfallAxis(t *testing.T) {
	f := ClimateFigure(climate())
	rain, ok := f.Axis(AxisRight2)
	if !ok {
		t.Fatalf("no rainfall axis")
	}
	if rain.Range == nil || rain.Range.Min != 0 || rain.Range.Max <= 12.4 {
		t.Fatalf("rainfall range = %+v, want padded above 12.4", rain.Range)
	}
	if rain.Position != 0.95 || rain.Overlaying != AxisLeft || rain.Side != "right" {
		t.Fatalf("rainfall axis = %+v", rain)
	}
	if temp, _ := f.Axis(AxisLeft); temp.Range != nil {
		t.Fatalf("temperature axis should autoscale, got %+v", temp.Range)
	}
}

func TestRainfallRangeKeepsNegatives(t *testing.T) {
	c := climate()
	c.Rainfall = []float64{-4, 10}
	rain, _ := ClimateFigure(c).Axis(AxisRight2)
	if rain.Range == nil || rain.Range.Min > -4 || rain.Range.Max <= 10 {
		t.Fatalf("rainfall range = %+v, want to cover -4 through 10", rain.Range)
	}

	c.Rainfall = []float64{0, 0}
	rain, _ = ClimateFigure(c).Axis(AxisRight2)
	if rain.Range.Min != 0 || rain.Range.Max <= 0 {
		t.Fatalf("flat rainfall range = %+v", rain.Range)
	}
}

func TestForecastLayers(t *testing.T) {
	b := &api.ForecastBundle{
		HistoricalDates: []api.Date{api.MustDate("2024-01-01"), api.MustDate("2024-01-02")},
		HistoricalCases: []int{10, 20},
		ForecastDates:   []api.Date{api.MustDate("2024-01-03")},
		PredictedCases:  []float64{15},
	}
	layers := Forecast(b)
	if len(layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(layers))
	}
	hist, fc := layers[0], layers[1]
	if hist.Axis != fc.Axis || hist.Axis != AxisLeft {
		t.Fatalf("layers on different axes: %s, %s", hist.Axis, fc.Axis)
	}
	if hist.Style.Color != "#667eea" || hist.Style.Dash != Solid || hist.Style.MarkerSize != 6 {
		t.Fatalf("historical style = %+v", hist.Style)
	}
	if fc.Style.Color != "#ff6b6b" || fc.Style.Dash != Dashed || fc.Style.Symbol != Diamond || fc.Style.MarkerSize != 8 {
		t.Fatalf("forecast style = %+v", fc.Style)
	}
	if hist.Y[1] != 20 || fc.Y[0] != 15 {
		t.Fatalf("values = %v %v", hist.Y, fc.Y)
	}
}

func TestPlotlyAxisReferences(t *testing.T) {
	out, err := ClimateFigure(climate()).Plotly()
	if err != nil {
		t.Fatalf("Plotly() error = %v", err)
	}
	var doc struct {
		Data []struct {
			Type  string `json:"type"`
			YAxis string `json:"yaxis"`
		} `json:"data"`
		Layout map[string]json.RawMessage `json:"layout"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Data) != 3 || doc.Data[2].Type != "bar" || doc.Data[2].YAxis != "y3" || doc.Data[0].YAxis != "" {
		t.Fatalf("traces = %+v", doc.Data)
	}
	for _, key := range []string{"yaxis", "yaxis2", "yaxis3"} {
		if _, ok := doc.Layout[key]; !ok {
			t.Fatalf("layout missing %s", key)
		}
	}
}
