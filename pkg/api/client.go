package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://localhost:5000"

// Client fetches status, forecast and climate data from the backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL. A zero timeout leaves requests
// unbounded apart from the caller's context.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// CurrentStatus fetches the latest case count for every tracked disease.
func (c *Client) CurrentStatus(ctx context.Context) ([]DiseaseStatus, error) {
	const op = "current status"
	var raw json.RawMessage
	if err := c.get(ctx, op, "/api/current_status", &raw); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, &MalformedPayloadError{Op: op, Err: errors.New("expected an array of statuses")}
	}
	var out []DiseaseStatus
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedPayloadError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	for _, s := range out {
		if err := s.Validate(); err != nil {
			return nil, &MalformedPayloadError{Op: op, Err: err}
		}
	}
	return out, nil
}

// Forecast fetches the historical and predicted series for disease.
func (c *Client) Forecast(ctx context.Context, disease string) (*ForecastBundle, error) {
	op := "forecast " + disease
	var raw json.RawMessage
	if err := c.get(ctx, op, "/api/forecast/"+url.PathEscape(disease), &raw); err != nil {
		return nil, err
	}
	out := &ForecastBundle{}
	if err := decodeObject(raw, out, forecastKeys...); err != nil {
		return nil, &MalformedPayloadError{Op: op, Err: err}
	}
	if err := out.Validate(); err != nil {
		return nil, &MalformedPayloadError{Op: op, Err: err}
	}
	if out.Disease == "" {
		out.Disease = disease
	}
	return out, nil
}

// Climate fetches the climate context series for disease.
func (c *Client) Climate(ctx context.Context, disease string) (*ClimateBundle, error) {
	op := "climate " + disease
	var raw json.RawMessage
	if err := c.get(ctx, op, "/api/climate_data/"+url.PathEscape(disease), &raw); err != nil {
		return nil, err
	}
	out := &ClimateBundle{}
	if err := decodeObject(raw, out, climateKeys...); err != nil {
		return nil, &MalformedPayloadError{Op: op, Err: err}
	}
	if err := out.Validate(); err != nil {
		return nil, &MalformedPayloadError{Op: op, Err: err}
	}
	return out, nil
}

var (
	forecastKeys = []string{"historical_dates", "historical_cases", "forecast_dates", "predicted_cases", "alert_level"}
	climateKeys  = []string{"dates", "temperature", "humidity", "rainfall"}
)

// decodeObject decodes raw into into after checking that raw is a JSON
// object carrying every key with a non-null value.
func decodeObject(raw json.RawMessage, into any, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if fields == nil {
		return errors.New("expected an object")
	}
	for _, k := range keys {
		if v, ok := fields[k]; !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("missing %q", k)
		}
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// errorBody is the backend's soft failure shape. It is sent with 200 as
// well as 404 and 500 statuses.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, op, path string, into any) error {
	target := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}

	var soft errorBody
	if json.Unmarshal(body, &soft) == nil && soft.Error != "" {
		return &SoftDomainError{Op: op, Message: soft.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, URL: target, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return &MalformedPayloadError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
