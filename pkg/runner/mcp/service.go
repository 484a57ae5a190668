// Package mcp provides the Model Context Protocol server integration for the
// outbreak dashboard.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/status"
)

// Service runs dashboard operations on behalf of MCP clients.
type Service struct {
	Backend  dashboard.Backend
	Diseases []string
	// Sink receives saved exports. A nil Sink only returns the CSV text.
	Sink export.Sink
}

// ErrUnknownDisease is returned for a disease outside the catalog.
var ErrUnknownDisease = errors.New("unknown disease")

func NewService(backend dashboard.Backend, diseases []string, sink export.Sink) *Service {
	return &Service{Backend: backend, Diseases: diseases, Sink: sink}
}

// CardDTO is one disease card.
type CardDTO struct {
	Disease string `json:"disease"`
	Cases   int    `json:"cases"`
	Date    string `json:"date"`
	Trend   string `json:"trend"`
}

// StatusDTO is the status feed after one refresh.
type StatusDTO struct {
	Severity string    `json:"severity"`
	Disease  string    `json:"disease,omitempty"`
	Cases    int       `json:"cases"`
	Message  string    `json:"message"`
	Cards    []CardDTO `json:"cards"`
}

// RowDTO is one forecast table row.
type RowDTO struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Trend     string  `json:"trend"`
}

// LayerDTO summarizes a chart layer.
type LayerDTO struct {
	Name   string `json:"name"`
	Mark   string `json:"mark"`
	Axis   string `json:"axis"`
	Color  string `json:"color"`
	Points int    `json:"points"`
}

// ForecastDTO is a rendered selection.
type ForecastDTO struct {
	Disease      string     `json:"disease"`
	AlertLevel   string     `json:"alertLevel"`
	AlertLabel   string     `json:"alertLabel"`
	AlertMessage string     `json:"alertMessage"`
	Period       string     `json:"period,omitempty"`
	Peak         *float64   `json:"peak,omitempty"`
	LastUpdated  string     `json:"lastUpdated,omitempty"`
	Rows         []RowDTO   `json:"rows"`
	Forecast     []LayerDTO `json:"forecastLayers"`
	Climate      []LayerDTO `json:"climateLayers,omitempty"`
}

// ExportDTO is an encoded forecast file.
type ExportDTO struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	CSV      string `json:"csv"`
	Path     string `json:"path,omitempty"`
}

// CurrentStatus refreshes the status feed once.
func (s *Service) CurrentStatus(ctx context.Context) (StatusDTO, error) {
	f := status.NewFeed(s.Backend)
	if _, err := f.Refresh(ctx); err != nil {
		return StatusDTO{}, err
	}
	snap := f.Snapshot()
	dto := StatusDTO{
		Severity: snap.Banner.Tier.Severity.String(),
		Disease:  snap.Banner.Disease,
		Cases:    snap.Banner.Cases,
		Message:  snap.Banner.Message,
		Cards:    make([]CardDTO, 0, len(snap.Cards)),
	}
	for _, c := range snap.Cards {
		dto.Cards = append(dto.Cards, CardDTO{
			Disease: c.Disease,
			Cases:   c.Cases,
			Date:    c.Date.String(),
			Trend:   string(c.Trend),
		})
	}
	return dto, nil
}

// Forecast selects disease and runs the forecast chain to completion.
func (s *Service) Forecast(ctx context.Context, disease string) (ForecastDTO, error) {
	ctrl, view, err := s.load(ctx, disease)
	if err != nil {
		return ForecastDTO{}, err
	}

	p := view.Panels
	b := ctrl.Session().Forecast()
	dto := ForecastDTO{
		Disease:      p.Disease,
		AlertLevel:   string(b.AlertLevel),
		AlertMessage: p.AlertMessage,
		Period:       p.Stats.Period(),
		LastUpdated:  p.Stats.LastUpdated.String(),
		Rows:         make([]RowDTO, 0, len(p.Rows)),
	}
	if p.Alert != nil {
		dto.AlertLabel = p.Alert.Label
	}
	if p.Stats.HasPeak {
		peak := p.Stats.Peak
		dto.Peak = &peak
	}
	for _, r := range p.Rows {
		dto.Rows = append(dto.Rows, RowDTO{Date: r.Date.String(), Predicted: r.Predicted, Trend: r.Trend.String()})
	}
	if fig, ok := view.Figure(dashboard.ForecastChart); ok {
		dto.Forecast = layers(fig)
	}
	if fig, ok := view.Figure(dashboard.ClimateChart); ok {
		dto.Climate = layers(fig)
	}
	return dto, nil
}

// ExportCSV encodes the forecast for disease. When save is set and the
// service has a sink, the file is written there too.
func (s *Service) ExportCSV(ctx context.Context, disease string, save bool) (ExportDTO, error) {
	ctrl, _, err := s.load(ctx, disease)
	if err != nil {
		return ExportDTO{}, err
	}
	f, err := ctrl.Export()
	if err != nil {
		return ExportDTO{}, err
	}
	dto := ExportDTO{Filename: f.Name, MIME: f.MIME, CSV: string(f.Data)}
	if save {
		if s.Sink == nil {
			return ExportDTO{}, errors.New("no download directory configured")
		}
		path, err := s.Sink.Save(f)
		if err != nil {
			return ExportDTO{}, err
		}
		dto.Path = path
	}
	return dto, nil
}

// Known reports the catalog entry matching disease, ignoring case.
func (s *Service) Known(disease string) (string, bool) {
	disease = strings.TrimSpace(disease)
	if len(s.Diseases) == 0 {
		return disease, disease != ""
	}
	for _, d := range s.Diseases {
		if strings.EqualFold(d, disease) {
			return d, true
		}
	}
	return "", false
}

func (s *Service) load(ctx context.Context, disease string) (*dashboard.Controller, *dashboard.View, error) {
	if s.Backend == nil {
		return nil, nil, errors.New("mcp service requires a backend")
	}
	name, ok := s.Known(disease)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDisease, disease)
	}
	view := dashboard.NewView()
	ctrl := dashboard.NewFor(s.Backend, view)
	ctrl.Drive(ctx, ctrl.Select(name))
	if ctrl.Phase() == dashboard.Error {
		return nil, nil, ctrl.Err()
	}
	return ctrl, view, nil
}

func layers(f chart.Figure) []LayerDTO {
	out := make([]LayerDTO, 0, len(f.Layers))
	for _, l := range f.Layers {
		out = append(out, LayerDTO{
			Name:   l.Name,
			Mark:   l.Style.Mark.String(),
			Axis:   string(l.Axis),
			Color:  l.Style.Color,
			Points: len(l.Y),
		})
	}
	return out
}
