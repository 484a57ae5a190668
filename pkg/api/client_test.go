package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const forecastBody = `{
  "disease": "Dengue",
  "historical_dates": ["2024-01-01", "2024-01-02"],
  "historical_cases": [10, 20],
  "forecast_dates": ["2024-01-03", "2024-01-04", "2024-01-05"],
  "predicted_cases": [15, 25, 5],
  "alert_level": "MEDIUM",
  "alert_message": "Moderate outbreak risk. Predicted cases may reach 25 cases.",
  "last_updated": "2024-01-02 09:30:00"
}`

func newBackend(t *testing.T, routes map[string]func(http.ResponseWriter)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, 0)
}

func reply(status int, body string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestCurrentStatus(t *testing.T) {
	c := newBackend(t, map[string]func(http.ResponseWriter){
		"/api/current_status": reply(http.StatusOK, `[
			{"disease":"Dengue","current_cases":120,"date":"2024-01-02","trend":"increasing"},
			{"disease":"Malaria","current_cases":4,"date":"2024-01-02","trend":"decreasing"}
		]`),
	})

	got, err := c.CurrentStatus(context.Background())
	if err != nil {
		t.Fatalf("CurrentStatus() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Disease != "Dengue" || got[0].CurrentCases != 120 || got[0].Trend != Increasing {
		t.Fatalf("unexpected first status %+v", got[0])
	}
	if got[1].Date.String() != "2024-01-02" {
		t.Fatalf("date = %q", got[1].Date.String())
	}
}

func TestForecastDecodes(t *testing.T) {
	c := newBackend(t, map[string]func(http.ResponseWriter){
		"/api/forecast/Dengue": reply(http.StatusOK, forecastBody),
	})

	b, err := c.Forecast(context.Background(), "Dengue")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if b.AlertLevel != AlertMedium {
		t.Fatalf("alert level = %q", b.AlertLevel)
	}
	if len(b.PredictedCases) != 3 || b.PredictedCases[1] != 25 {
		t.Fatalf("predicted = %v", b.PredictedCases)
	}
	if b.LastUpdated.String() != "2024-01-02 09:30:00" {
		t.Fatalf("last updated = %q", b.LastUpdated.String())
	}
}

func TestSoftErrorRegardlessOfStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		c := newBackend(t, map[string]func(http.ResponseWriter){
			"/api/forecast/Ebola": reply(status, `{"error":"Disease not found"}`),
		})
		_, err := c.Forecast(context.Background(), "Ebola")
		var soft *SoftDomainError
		if !errors.As(err, &soft) {
			t.Fatalf("status %d: error = %v, want SoftDomainError", status, err)
		}
		if soft.Message != "Disease not found" {
			t.Fatalf("message = %q", soft.Message)
		}
	}
}

func TestTransportErrors(t *testing.T) {
	c := newBackend(t, map[string]func(http.ResponseWriter){
		"/api/climate_data/Dengue": reply(http.StatusBadGateway, `upstream down`),
	})
	_, err := c.Climate(context.Background(), "Dengue")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if te.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", te.Status)
	}

	unreachable := New("http://127.0.0.1:1", 0)
	if _, err := unreachable.CurrentStatus(context.Background()); !errors.As(err, &te) {
		t.Fatalf("error = %v, want TransportError", err)
	}
}

func TestMalformedPayloads(t *testing.T) {
	tests := map[string]struct {
		path string
		body string
		call func(*Client) error
	}{
		"not json": {
			path: "/api/current_status",
			body: `<html>`,
			call: func(c *Client) error { _, err := c.CurrentStatus(context.Background()); return err },
		},
		"bad trend": {
			path: "/api/current_status",
			body: `[{"disease":"Dengue","current_cases":1,"date":"2024-01-02","trend":"sideways"}]`,
			call: func(c *Client) error { _, err := c.CurrentStatus(context.Background()); return err },
		},
		"length mismatch": {
			path: "/api/forecast/Dengue",
			body: `{"historical_dates":["2024-01-01"],"historical_cases":[],"forecast_dates":[],"predicted_cases":[],"alert_level":"LOW"}`,
			call: func(c *Client) error { _, err := c.Forecast(context.Background(), "Dengue"); return err },
		},
		"forecast before history": {
			path: "/api/forecast/Dengue",
			body: `{"historical_dates":["2024-01-05"],"historical_cases":[1],"forecast_dates":["2024-01-04"],"predicted_cases":[2],"alert_level":"LOW"}`,
			call: func(c *Client) error { _, err := c.Forecast(context.Background(), "Dengue"); return err },
		},
		"unknown level": {
			path: "/api/forecast/Dengue",
			body: `{"historical_dates":[],"historical_cases":[],"forecast_dates":[],"predicted_cases":[],"alert_level":"SEVERE"}`,
			call: func(c *Client) error { _, err := c.Forecast(context.Background(), "Dengue"); return err },
		},
		"null status": {
			path: "/api/current_status",
			body: `null`,
			call: func(c *Client) error { _, err := c.CurrentStatus(context.Background()); return err },
		},
		"status object": {
			path: "/api/current_status",
			body: `{"disease":"Dengue","current_cases":1,"date":"2024-01-02","trend":"increasing"}`,
			call: func(c *Client) error { _, err := c.CurrentStatus(context.Background()); return err },
		},
		"null forecast": {
			path: "/api/forecast/Dengue",
			body: `null`,
			call: func(c *Client) error { _, err := c.Forecast(context.Background(), "Dengue"); return err },
		},
		"forecast without series": {
			path: "/api/forecast/Dengue",
			body: `{"alert_level":"LOW"}`,
			call: func(c *Client) error { _, err := c.Forecast(context.Background(), "Dengue"); return err },
		},
		"null climate": {
			path: "/api/climate_data/Dengue",
			body: `null`,
			call: func(c *Client) error { _, err := c.Climate(context.Background(), "Dengue"); return err },
		},
		"empty climate object": {
			path: "/api/climate_data/Dengue",
			body: `{}`,
			call: func(c *Client) error { _, err := c.Climate(context.Background(), "Dengue"); return err },
		},
		"null climate series": {
			path: "/api/climate_data/Dengue",
			body: `{"dates":[],"temperature":[],"humidity":null,"rainfall":[]}`,
			call: func(c *Client) error { _, err := c.Climate(context.Background(), "Dengue"); return err },
		},
		"unordered climate": {
			path: "/api/climate_data/Dengue",
			body: `{"dates":["2024-01-02","2024-01-01"],"temperature":[1,2],"humidity":[1,2],"rainfall":[1,2]}`,
			call: func(c *Client) error { _, err := c.Climate(context.Background(), "Dengue"); return err },
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newBackend(t, map[string]func(http.ResponseWriter){tt.path: reply(http.StatusOK, tt.body)})
			err := tt.call(c)
			var mp *MalformedPayloadError
			if !errors.As(err, &mp) {
				t.Fatalf("error = %v, want MalformedPayloadError", err)
			}
		})
	}
}

func TestEmptyStatusArray(t *testing.T) {
	c := newBackend(t, map[string]func(http.ResponseWriter){
		"/api/current_status": reply(http.StatusOK, ` [] `),
	})
	got, err := c.CurrentStatus(context.Background())
	if err != nil {
		t.Fatalf("CurrentStatus() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestForecastFillsDisease(t *testing.T) {
	c := newBackend(t, map[string]func(http.ResponseWriter){
		"/api/forecast/Typhoid": reply(http.StatusOK, `{"historical_dates":[],"historical_cases":[],"forecast_dates":["2024-01-01"],"predicted_cases":[3],"alert_level":"LOW"}`),
	})
	b, err := c.Forecast(context.Background(), "Typhoid")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if b.Disease != "Typhoid" {
		t.Fatalf("disease = %q", b.Disease)
	}
}
