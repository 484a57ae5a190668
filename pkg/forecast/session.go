// Package forecast owns the active disease selection and the bundles
// fetched for it.
package forecast

import (
	"context"

	"tableflip.dev/outbreak/pkg/api"
)

// Backend is the part of the api client a session needs.
type Backend interface {
	Forecast(ctx context.Context, disease string) (*api.ForecastBundle, error)
	Climate(ctx context.Context, disease string) (*api.ClimateBundle, error)
}

// Ticket identifies one selection. Results carry the ticket they were
// fetched for so late arrivals can be recognised.
type Ticket struct {
	Generation uint64
	Disease    string
}

// ForecastResult is the outcome of a forecast fetch.
type ForecastResult struct {
	Ticket Ticket
	Bundle *api.ForecastBundle
	Err    error
}

// ClimateResult is the outcome of a climate fetch.
type ClimateResult struct {
	Ticket Ticket
	Bundle *api.ClimateBundle
	Err    error
}

// Session holds the selection state. It is not safe for concurrent use;
// fetches may run anywhere but Select and the Apply methods belong to a
// single loop.
type Session struct {
	backend Backend

	generation uint64
	disease    string

	forecast *api.ForecastBundle
	climate  *api.ClimateBundle
	stats    Stats
	rows     []Row
	err      error
}

func NewSession(backend Backend) *Session {
	return &Session{backend: backend}
}

// Select makes disease the active selection and drops everything fetched
// for the previous one.
func (s *Session) Select(disease string) Ticket {
	s.generation++
	s.disease = disease
	s.clear()
	return s.Current()
}

// Reset clears the selection. In-flight results become stale.
func (s *Session) Reset() {
	s.generation++
	s.disease = ""
	s.clear()
}

func (s *Session) clear() {
	s.forecast = nil
	s.climate = nil
	s.stats = Stats{}
	s.rows = nil
	s.err = nil
}

// Current returns the ticket of the active selection.
func (s *Session) Current() Ticket {
	return Ticket{Generation: s.generation, Disease: s.disease}
}

// Disease is the active selection, or "" when nothing is selected.
func (s *Session) Disease() string {
	return s.disease
}

// IsCurrent reports whether t still names the active selection.
func (s *Session) IsCurrent(t Ticket) bool {
	return t.Generation == s.generation && t.Disease == s.disease && s.disease != ""
}

// FetchForecast performs the forecast request for t. It does not touch
// session state.
func (s *Session) FetchForecast(ctx context.Context, t Ticket) ForecastResult {
	b, err := s.backend.Forecast(ctx, t.Disease)
	return ForecastResult{Ticket: t, Bundle: b, Err: err}
}

// FetchClimate performs the climate request for t. It does not touch
// session state.
func (s *Session) FetchClimate(ctx context.Context, t Ticket) ClimateResult {
	b, err := s.backend.Climate(ctx, t.Disease)
	return ClimateResult{Ticket: t, Bundle: b, Err: err}
}

// ApplyForecast stores a forecast result. It returns false, changing
// nothing, when the result belongs to an earlier selection.
func (s *Session) ApplyForecast(r ForecastResult) bool {
	if !s.IsCurrent(r.Ticket) {
		return false
	}
	if r.Err != nil {
		s.clear()
		s.err = r.Err
		return true
	}
	s.forecast = r.Bundle
	s.stats, s.rows = Derive(r.Bundle)
	s.err = nil
	return true
}

// ApplyClimate stores a climate result for the active selection. A failed
// climate fetch leaves the forecast in place.
func (s *Session) ApplyClimate(r ClimateResult) bool {
	if !s.IsCurrent(r.Ticket) || s.forecast == nil {
		return false
	}
	if r.Err != nil {
		s.climate = nil
		return true
	}
	s.climate = r.Bundle
	return true
}

// Forecast is the bundle for the active selection, or nil.
func (s *Session) Forecast() *api.ForecastBundle {
	return s.forecast
}

// Climate is the climate bundle for the active selection, or nil.
func (s *Session) Climate() *api.ClimateBundle {
	return s.climate
}

func (s *Session) Stats() Stats {
	return s.stats
}

func (s *Session) Rows() []Row {
	return s.rows
}

// Err is the forecast failure for the active selection, if any.
func (s *Session) Err() error {
	return s.err
}
