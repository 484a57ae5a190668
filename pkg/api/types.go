// Package api is the client for the outbreak forecasting backend.
package api

import (
	"errors"
	"fmt"
)

// Trend is the direction of a disease's recent case counts.
type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
)

func (t Trend) Valid() bool {
	return t == Increasing || t == Decreasing
}

// AlertLevel is the backend's risk assessment for a forecast.
type AlertLevel string

const (
	AlertLow    AlertLevel = "LOW"
	AlertMedium AlertLevel = "MEDIUM"
	AlertHigh   AlertLevel = "HIGH"
)

func (l AlertLevel) Valid() bool {
	switch l {
	case AlertLow, AlertMedium, AlertHigh:
		return true
	}
	return false
}

// DiseaseStatus is one entry of the current status feed.
type DiseaseStatus struct {
	Disease      string `json:"disease"`
	CurrentCases int    `json:"current_cases"`
	Date         Date   `json:"date"`
	Trend        Trend  `json:"trend"`
}

// ForecastBundle holds the historical and predicted series for one disease.
type ForecastBundle struct {
	Disease         string     `json:"disease,omitempty"`
	HistoricalDates []Date     `json:"historical_dates"`
	HistoricalCases []int      `json:"historical_cases"`
	ForecastDates   []Date     `json:"forecast_dates"`
	PredictedCases  []float64  `json:"predicted_cases"`
	AlertLevel      AlertLevel `json:"alert_level"`
	AlertMessage    string     `json:"alert_message"`
	LastUpdated     Timestamp  `json:"last_updated"`
}

// ClimateBundle holds the climate context series for one disease.
type ClimateBundle struct {
	Dates       []Date    `json:"dates"`
	Temperature []float64 `json:"temperature"`
	Humidity    []float64 `json:"humidity"`
	Rainfall    []float64 `json:"rainfall"`
}

var (
	errLengthMismatch = errors.New("series length mismatch")
	errNotAscending   = errors.New("dates are not strictly ascending")
)

// Validate checks a status entry.
func (s DiseaseStatus) Validate() error {
	if s.Disease == "" {
		return errors.New("status without disease")
	}
	if s.CurrentCases < 0 {
		return fmt.Errorf("%s: negative case count %d", s.Disease, s.CurrentCases)
	}
	if !s.Trend.Valid() {
		return fmt.Errorf("%s: unknown trend %q", s.Disease, s.Trend)
	}
	return nil
}

// Validate checks the forecast invariants: paired series have equal
// lengths, dates ascend strictly and the forecast starts no earlier than
// the last historical observation.
func (b *ForecastBundle) Validate() error {
	if len(b.HistoricalDates) != len(b.HistoricalCases) {
		return fmt.Errorf("historical: %w (%d dates, %d cases)", errLengthMismatch, len(b.HistoricalDates), len(b.HistoricalCases))
	}
	if len(b.ForecastDates) != len(b.PredictedCases) {
		return fmt.Errorf("forecast: %w (%d dates, %d cases)", errLengthMismatch, len(b.ForecastDates), len(b.PredictedCases))
	}
	if err := ascending(b.HistoricalDates); err != nil {
		return fmt.Errorf("historical: %w", err)
	}
	if err := ascending(b.ForecastDates); err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	if h, f := len(b.HistoricalDates), len(b.ForecastDates); h > 0 && f > 0 {
		if b.ForecastDates[0].Before(b.HistoricalDates[h-1].Time) {
			return fmt.Errorf("forecast starts %s before last observation %s", b.ForecastDates[0], b.HistoricalDates[h-1])
		}
	}
	for i, c := range b.HistoricalCases {
		if c < 0 {
			return fmt.Errorf("historical case %d is negative", i)
		}
	}
	for i, c := range b.PredictedCases {
		if c < 0 {
			return fmt.Errorf("predicted case %d is negative", i)
		}
	}
	if !b.AlertLevel.Valid() {
		return fmt.Errorf("unknown alert level %q", b.AlertLevel)
	}
	return nil
}

// Validate checks that all climate series line up with the dates.
func (b *ClimateBundle) Validate() error {
	n := len(b.Dates)
	if len(b.Temperature) != n || len(b.Humidity) != n || len(b.Rainfall) != n {
		return fmt.Errorf("%w (%d dates, %d temperature, %d humidity, %d rainfall)",
			errLengthMismatch, n, len(b.Temperature), len(b.Humidity), len(b.Rainfall))
	}
	return ascending(b.Dates)
}

func ascending(dates []Date) error {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1].Time) {
			return fmt.Errorf("%w at %s", errNotAscending, dates[i])
		}
	}
	return nil
}
