package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/export"
)

func init() {
	color.NoColor = true
}

type fakeBackend struct {
	forecast *api.ForecastBundle
	climate  *api.ClimateBundle
	err      error
}

func (f *fakeBackend) CurrentStatus(context.Context) ([]api.DiseaseStatus, error) {
	return nil, nil
}

func (f *fakeBackend) Forecast(context.Context, string) (*api.ForecastBundle, error) {
	return f.forecast, f.err
}

func (f *fakeBackend) Climate(context.Context, string) (*api.ClimateBundle, error) {
	if f.climate == nil {
		return nil, errors.New("no climate")
	}
	return f.climate, nil
}

type memorySink struct {
	files []export.File
}

func (m *memorySink) Save(f export.File) (string, error) {
	m.files = append(m.files, f)
	return "mem://" + f.Name, nil
}

func backend() *fakeBackend {
	return &fakeBackend{
		forecast: &api.ForecastBundle{
			Disease:         "Dengue",
			HistoricalDates: []api.Date{api.MustDate("2024-01-01"), api.MustDate("2024-01-02")},
			HistoricalCases: []int{10, 20},
			ForecastDates:   []api.Date{api.MustDate("2024-01-03"), api.MustDate("2024-01-04")},
			PredictedCases:  []float64{15, 25},
			AlertLevel:      api.AlertMedium,
			AlertMessage:    "Moderate outbreak risk.",
		},
		climate: &api.ClimateBundle{
			Dates:       []api.Date{api.MustDate("2024-01-01"), api.MustDate("2024-01-02")},
			Temperature: []float64{28, 29},
			Humidity:    []float64{80, 81},
			Rainfall:    []float64{3, 0},
		},
	}
}

func TestForecastPrints(t *testing.T) {
	var buf bytes.Buffer
	f := Forecast{Backend: backend(), Disease: "Dengue", Out: &buf}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Dengue Forecast", "MEDIUM RISK ALERT", "2024-01-03 to 2024-01-04", "Rainfall"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestForecastSoftErrorFails(t *testing.T) {
	b := backend()
	b.err = &api.SoftDomainError{Op: "forecast", Message: "No model available"}
	f := Forecast{Backend: b, Disease: "Dengue", Out: &bytes.Buffer{}}
	err := f.Do(context.Background())
	var soft *api.SoftDomainError
	if !errors.As(err, &soft) {
		t.Fatalf("expected soft domain error, got %v", err)
	}
}

func TestForecastJSON(t *testing.T) {
	var buf bytes.Buffer
	f := Forecast{Backend: backend(), Disease: "Dengue", JSON: true, Out: &buf}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var doc struct {
		Disease string                     `json:"disease"`
		Peak    float64                    `json:"peak"`
		Rows    []map[string]any           `json:"rows"`
		Charts  map[string]json.RawMessage `json:"charts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if doc.Disease != "Dengue" || doc.Peak != 25 || len(doc.Rows) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if _, ok := doc.Charts["climate"]; !ok {
		t.Fatalf("expected climate chart, got %v", doc.Charts)
	}
}

func TestForecastExports(t *testing.T) {
	dir := t.TempDir()
	sink := &memorySink{}
	f := Forecast{Backend: backend(), Disease: "Dengue", CSV: sink, PNGDir: dir, Out: &bytes.Buffer{}}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(sink.files) != 1 || sink.files[0].Name != "Dengue_forecast.csv" {
		t.Fatalf("unexpected csv exports %+v", sink.files)
	}
	for _, name := range []string{"Dengue_forecast.png", "Dengue_climate.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestForecastWithoutClimateSkipsClimatePNG(t *testing.T) {
	dir := t.TempDir()
	b := backend()
	b.climate = nil
	f := Forecast{Backend: b, Disease: "Dengue", PNGDir: dir, Out: &bytes.Buffer{}}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Dengue_forecast.png")); err != nil {
		t.Fatalf("expected forecast png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Dengue_climate.png")); !os.IsNotExist(err) {
		t.Fatalf("expected no climate png, got %v", err)
	}
}
