package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/printers"
	"tableflip.dev/outbreak/pkg/render/plot"
)

// Forecast selects one disease, waits for its forecast and climate, and
// prints the result. CSV and PNG exports are optional.
type Forecast struct {
	Backend dashboard.Backend
	Disease string

	JSON   bool
	CSV    export.Sink
	PNGDir string
	Out    io.Writer
}

func (f *Forecast) Do(ctx context.Context) error {
	if f.Backend == nil {
		return errors.New("can not forecast, no backend")
	}
	if f.Disease == "" {
		return errors.New("a disease is required")
	}
	out := f.Out
	if out == nil {
		out = color.Output
	}

	view := dashboard.NewView()
	ctrl := dashboard.NewFor(f.Backend, view)
	ctrl.Drive(ctx, ctrl.Select(f.Disease))
	if ctrl.Phase() == dashboard.Error {
		return ctrl.Err()
	}

	if f.JSON {
		if err := f.printJSON(out, view); err != nil {
			return err
		}
	} else {
		pp := printers.PrettyPrint{Out: out}
		pp.NewLine()
		pp.Title(view.Panels.Disease + " Forecast")
		pp.Panels(view.Panels)
		for _, s := range []dashboard.Surface{dashboard.ForecastChart, dashboard.ClimateChart} {
			if fig, ok := view.Figure(s); ok {
				pp.Title(fig.Title)
				pp.Figure(fig)
			}
		}
	}

	if f.CSV != nil {
		path, err := ctrl.ExportTo(f.CSV)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "wrote %s\n", path)
	}

	if f.PNGDir != "" {
		for _, s := range []dashboard.Surface{dashboard.ForecastChart, dashboard.ClimateChart} {
			fig, ok := view.Figure(s)
			if !ok {
				continue
			}
			path := filepath.Join(f.PNGDir, fmt.Sprintf("%s_%s.png", f.Disease, s))
			if err := plot.WriteFile(path, fig); err != nil {
				log.Printf("render %s chart: %v", s, err)
				continue
			}
			_, _ = fmt.Fprintf(out, "wrote %s\n", path)
		}
	}
	return nil
}

type forecastJSON struct {
	Disease      string          `json:"disease"`
	AlertLabel   string          `json:"alertLabel"`
	AlertMessage string          `json:"alertMessage"`
	Period       string          `json:"period"`
	Peak         *float64        `json:"peak,omitempty"`
	LastUpdated  string          `json:"lastUpdated"`
	Rows         []rowJSON       `json:"rows"`
	Charts       json.RawMessage `json:"charts,omitempty"`
}

type rowJSON struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Trend     string  `json:"trend"`
}

func (f *Forecast) printJSON(out io.Writer, view *dashboard.View) error {
	p := view.Panels
	doc := forecastJSON{
		Disease:      p.Disease,
		AlertMessage: p.AlertMessage,
		Period:       p.Stats.Period(),
		LastUpdated:  p.Stats.LastUpdated.String(),
		Rows:         make([]rowJSON, 0, len(p.Rows)),
	}
	if p.Alert != nil {
		doc.AlertLabel = p.Alert.Label
	}
	if p.Stats.HasPeak {
		peak := p.Stats.Peak
		doc.Peak = &peak
	}
	for _, r := range p.Rows {
		doc.Rows = append(doc.Rows, rowJSON{Date: r.Date.String(), Predicted: r.Predicted, Trend: r.Trend.String()})
	}

	charts := map[string]json.RawMessage{}
	for _, s := range []dashboard.Surface{dashboard.ForecastChart, dashboard.ClimateChart} {
		fig, ok := view.Figure(s)
		if !ok {
			continue
		}
		raw, err := plotly(fig)
		if err != nil {
			return err
		}
		charts[string(s)] = raw
	}
	if len(charts) > 0 {
		raw, err := json.Marshal(charts)
		if err != nil {
			return err
		}
		doc.Charts = raw
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}

func plotly(f chart.Figure) (json.RawMessage, error) {
	b, err := f.Plotly()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
