// Package dashboard sequences status refreshes and disease selections and
// hands finished views to a renderer.
//
// All methods of Controller run on one loop. Fetches are returned as Tasks
// that may run anywhere; their Results come back through Handle.
package dashboard

import (
	"context"
	"log"

	"tableflip.dev/outbreak/pkg/alert"
	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/forecast"
	"tableflip.dev/outbreak/pkg/status"
)

// Phase is the state of the disease selection.
type Phase int

const (
	Idle Phase = iota
	Loading
	Rendered
	Error
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Rendered:
		return "rendered"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Surface names a chart area.
type Surface string

const (
	ForecastChart Surface = "forecast"
	ClimateChart  Surface = "climate"
)

// Panels is everything shown beside the charts for the selection. A nil
// Alert hides the alert box.
type Panels struct {
	Disease      string
	Loading      bool
	Alert        *alert.Tier
	AlertMessage string
	Stats        forecast.Stats
	Rows         []forecast.Row
}

// Renderer draws finished views. Each call replaces what was on that
// surface before.
type Renderer interface {
	RenderStatus(cards []status.Card, banner status.Banner)
	RenderPanels(p Panels)
	RenderLayers(s Surface, f chart.Figure)
	RenderError(err error)
}

// Result is the outcome of a Task.
type Result interface {
	result()
}

// StatusLoaded carries a status fetch.
type StatusLoaded struct{ status.Result }

// ForecastLoaded carries a forecast fetch.
type ForecastLoaded struct{ forecast.ForecastResult }

// ClimateLoaded carries a climate fetch.
type ClimateLoaded struct{ forecast.ClimateResult }

func (StatusLoaded) result()   {}
func (ForecastLoaded) result() {}
func (ClimateLoaded) result()  {}

// Task is deferred I/O. It must not touch controller state.
type Task func(ctx context.Context) Result

// Controller is the dashboard state machine.
type Controller struct {
	feed     *status.Feed
	session  *forecast.Session
	renderer Renderer

	phase Phase
	err   error
}

// Backend is everything the dashboard fetches. *api.Client satisfies it.
type Backend interface {
	status.Source
	forecast.Backend
}

func New(feed *status.Feed, session *forecast.Session, renderer Renderer) *Controller {
	return &Controller{feed: feed, session: session, renderer: renderer}
}

// NewFor builds a controller with a fresh feed and session over b.
func NewFor(b Backend, renderer Renderer) *Controller {
	return New(status.NewFeed(b), forecast.NewSession(b), renderer)
}

func (c *Controller) Phase() Phase {
	return c.phase
}

// Err is the failure that put the controller into Error.
func (c *Controller) Err() error {
	return c.err
}

// Disease is the active selection.
func (c *Controller) Disease() string {
	return c.session.Disease()
}

func (c *Controller) Session() *forecast.Session {
	return c.session
}

func (c *Controller) Feed() *status.Feed {
	return c.feed
}

// RefreshStatus returns the status fetch. It is independent of the
// selection phase.
func (c *Controller) RefreshStatus() Task {
	feed := c.feed
	return func(ctx context.Context) Result {
		return StatusLoaded{feed.Fetch(ctx)}
	}
}

// Select starts loading disease. Every panel and chart is cleared before
// the fetch is issued so nothing from the previous selection stays on
// screen under the new name.
func (c *Controller) Select(disease string) Task {
	t := c.session.Select(disease)
	c.phase = Loading
	c.err = nil
	c.clear(true)

	session := c.session
	return func(ctx context.Context) Result {
		return ForecastLoaded{session.FetchForecast(ctx, t)}
	}
}

// Reset drops the selection and returns to Idle.
func (c *Controller) Reset() {
	c.session.Reset()
	c.phase = Idle
	c.err = nil
	c.clear(false)
}

func (c *Controller) clear(loading bool) {
	c.renderer.RenderPanels(Panels{Disease: c.session.Disease(), Loading: loading})
	c.renderer.RenderLayers(ForecastChart, chart.Figure{})
	c.renderer.RenderLayers(ClimateChart, chart.Figure{})
}

// Handle applies a result and returns the follow-up task, if any.
func (c *Controller) Handle(r Result) Task {
	switch r := r.(type) {
	case StatusLoaded:
		return c.handleStatus(r)
	case ForecastLoaded:
		return c.handleForecast(r)
	case ClimateLoaded:
		return c.handleClimate(r)
	}
	return nil
}

func (c *Controller) handleStatus(r StatusLoaded) Task {
	snap := c.feed.Apply(r.Result)
	if r.Err != nil {
		log.Printf("status refresh failed: %v", r.Err)
	}
	c.renderer.RenderStatus(snap.Cards, snap.Banner)
	return nil
}

func (c *Controller) handleForecast(r ForecastLoaded) Task {
	if !c.session.ApplyForecast(r.ForecastResult) {
		log.Printf("dropping forecast for %s (generation %d)", r.Ticket.Disease, r.Ticket.Generation)
		return nil
	}
	if r.Err != nil {
		c.phase = Error
		c.err = r.Err
		c.clear(false)
		c.renderer.RenderError(r.Err)
		return nil
	}

	c.phase = Rendered
	b := c.session.Forecast()
	tier := alert.ForLevel(b.AlertLevel)
	c.renderer.RenderPanels(Panels{
		Disease:      r.Ticket.Disease,
		Alert:        &tier,
		AlertMessage: b.AlertMessage,
		Stats:        c.session.Stats(),
		Rows:         c.session.Rows(),
	})
	c.renderer.RenderLayers(ForecastChart, chart.ForecastFigure(b))

	t, session := r.Ticket, c.session
	return func(ctx context.Context) Result {
		return ClimateLoaded{session.FetchClimate(ctx, t)}
	}
}

func (c *Controller) handleClimate(r ClimateLoaded) Task {
	if !c.session.ApplyClimate(r.ClimateResult) {
		return nil
	}
	if r.Err != nil {
		log.Printf("climate for %s unavailable: %v", r.Ticket.Disease, r.Err)
		return nil
	}
	c.renderer.RenderLayers(ClimateChart, chart.ClimateFigure(c.session.Climate()))
	return nil
}

// CanExport reports whether Export would produce a file.
func (c *Controller) CanExport() bool {
	return c.phase == Rendered && c.session.Forecast() != nil
}

// Export encodes the active forecast. The disease is read now, not when
// the forecast was loaded.
func (c *Controller) Export() (export.File, error) {
	if !c.CanExport() {
		return export.File{}, export.ErrNoActiveDataset
	}
	return export.New(c.session.Disease(), c.session.Forecast())
}

// ExportTo encodes the active forecast and saves it with sink.
func (c *Controller) ExportTo(sink export.Sink) (string, error) {
	f, err := c.Export()
	if err != nil {
		return "", err
	}
	return sink.Save(f)
}

// Drive runs t and every follow-up task on the calling goroutine.
func (c *Controller) Drive(ctx context.Context, t Task) {
	for t != nil {
		t = c.Handle(t(ctx))
	}
}
