package mcp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/export"
)

const dengueForecast = `{
  "historical_dates": ["2024-01-01", "2024-01-02"],
  "historical_cases": [10, 20],
  "forecast_dates": ["2024-01-03", "2024-01-04"],
  "predicted_cases": [15, 25],
  "alert_level": "HIGH",
  "alert_message": "High outbreak risk detected! Predicted cases may reach 25 cases.",
  "last_updated": "2024-01-02 09:30:00"
}`

const dengueClimate = `{
  "dates": ["2024-01-01", "2024-01-02"],
  "temperature": [28.5, 29],
  "humidity": [80, 82],
  "rainfall": [3.2, 0]
}`

func newTestService(t *testing.T, sink export.Sink) *Service {
	t.Helper()
	routes := map[string]string{
		"/api/current_status": `[
			{"disease":"Dengue","current_cases":120,"date":"2024-01-02","trend":"increasing"},
			{"disease":"Malaria","current_cases":4,"date":"2024-01-02","trend":"decreasing"}
		]`,
		"/api/forecast/Dengue":     dengueForecast,
		"/api/climate_data/Dengue": dengueClimate,
		"/api/forecast/Malaria":    `{"error":"No model available for Malaria"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewService(api.New(srv.URL, 0), []string{"Dengue", "Malaria"}, sink)
}

type memorySink struct {
	saved []export.File
}

func (m *memorySink) Save(f export.File) (string, error) {
	m.saved = append(m.saved, f)
	return "/downloads/" + f.Name, nil
}

func TestServiceCurrentStatus(t *testing.T) {
	svc := newTestService(t, nil)

	dto, err := svc.CurrentStatus(context.Background())
	if err != nil {
		t.Fatalf("CurrentStatus failed: %v", err)
	}
	if dto.Severity != "high" || dto.Disease != "Dengue" || dto.Cases != 120 {
		t.Fatalf("unexpected banner %+v", dto)
	}
	if dto.Message != "High Alert: Dengue cases at 120. Monitor closely." {
		t.Fatalf("unexpected message %q", dto.Message)
	}
	if len(dto.Cards) != 2 || dto.Cards[1].Trend != "decreasing" {
		t.Fatalf("unexpected cards %+v", dto.Cards)
	}
}

func TestServiceForecast(t *testing.T) {
	svc := newTestService(t, nil)

	dto, err := svc.Forecast(context.Background(), "dengue")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if dto.Disease != "Dengue" {
		t.Fatalf("expected catalog name Dengue, got %s", dto.Disease)
	}
	if dto.AlertLabel != "HIGH RISK ALERT" {
		t.Fatalf("unexpected alert label %q", dto.AlertLabel)
	}
	if dto.Peak == nil || *dto.Peak != 25 {
		t.Fatalf("expected peak 25, got %v", dto.Peak)
	}
	if dto.Period != "2024-01-03 to 2024-01-04" {
		t.Fatalf("unexpected period %q", dto.Period)
	}
	wantTrends := []string{"down", "up"}
	for i, r := range dto.Rows {
		if r.Trend != wantTrends[i] {
			t.Fatalf("row %d trend = %s, want %s", i, r.Trend, wantTrends[i])
		}
	}
	if len(dto.Forecast) != 2 {
		t.Fatalf("expected 2 forecast layers, got %d", len(dto.Forecast))
	}
	if len(dto.Climate) != 3 || dto.Climate[2].Axis != "y3" || dto.Climate[2].Mark != "bar" {
		t.Fatalf("unexpected climate layers %+v", dto.Climate)
	}
}

func TestServiceForecastSoftError(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Forecast(context.Background(), "Malaria")
	var soft *api.SoftDomainError
	if !errors.As(err, &soft) {
		t.Fatalf("expected soft domain error, got %v", err)
	}
	if soft.Message != "No model available for Malaria" {
		t.Fatalf("unexpected message %q", soft.Message)
	}
}

func TestServiceUnknownDisease(t *testing.T) {
	svc := newTestService(t, nil)

	if _, err := svc.Forecast(context.Background(), "Cholera"); !errors.Is(err, ErrUnknownDisease) {
		t.Fatalf("expected ErrUnknownDisease, got %v", err)
	}
}

func TestServiceExportCSV(t *testing.T) {
	sink := &memorySink{}
	svc := newTestService(t, sink)

	dto, err := svc.ExportCSV(context.Background(), "Dengue", false)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if dto.Filename != "Dengue_forecast.csv" || dto.MIME != "text/csv" {
		t.Fatalf("unexpected file %+v", dto)
	}
	lines := strings.Split(strings.TrimSpace(dto.CSV), "\n")
	if len(lines) != 3 || lines[0] != "Date,Predicted_Cases" || lines[1] != "2024-01-03,15" {
		t.Fatalf("unexpected csv %q", dto.CSV)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("expected nothing saved")
	}

	dto, err = svc.ExportCSV(context.Background(), "Dengue", true)
	if err != nil {
		t.Fatalf("ExportCSV save failed: %v", err)
	}
	if dto.Path != "/downloads/Dengue_forecast.csv" || len(sink.saved) != 1 {
		t.Fatalf("expected saved file, got %+v", dto)
	}
}

func TestServiceExportWithoutSink(t *testing.T) {
	svc := newTestService(t, nil)

	if _, err := svc.ExportCSV(context.Background(), "Dengue", true); err == nil {
		t.Fatalf("expected error without a sink")
	}
}
