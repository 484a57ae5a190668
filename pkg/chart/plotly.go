package chart

import (
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/outbreak/pkg/api"
)

type plotlyDoc struct {
	Data   []plotlyTrace  `json:"data"`
	Layout map[string]any `json:"layout"`
}

type plotlyTrace struct {
	X      []string      `json:"x"`
	Y      []float64     `json:"y"`
	Type   string        `json:"type"`
	Mode   string        `json:"mode,omitempty"`
	Name   string        `json:"name"`
	Line   *plotlyLine   `json:"line,omitempty"`
	Marker *plotlyMarker `json:"marker,omitempty"`
	YAxis  string        `json:"yaxis,omitempty"`
}

type plotlyLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Dash  string  `json:"dash,omitempty"`
}

type plotlyMarker struct {
	Color  string  `json:"color,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
}

// Plotly encodes the figure as a Plotly data and layout document.
func (f Figure) Plotly() ([]byte, error) {
	doc := plotlyDoc{
		Data: make([]plotlyTrace, 0, len(f.Layers)),
		Layout: map[string]any{
			"title":         f.Title,
			"xaxis":         map[string]any{"title": f.XTitle},
			"plot_bgcolor":  "#f8f9fa",
			"paper_bgcolor": "white",
			"showlegend":    true,
			"legend":        map[string]any{"x": 0.02, "y": 0.98},
		},
	}

	for _, l := range f.Layers {
		tr := plotlyTrace{
			X:    make([]string, len(l.X)),
			Y:    l.Y,
			Name: l.Name,
		}
		for i, x := range l.X {
			tr.X[i] = api.Date{Time: x}.String()
		}
		if l.Axis != AxisLeft {
			tr.YAxis = string(l.Axis)
		}
		switch l.Style.Mark {
		case Bar:
			tr.Type = "bar"
			tr.Marker = &plotlyMarker{Color: l.Style.Color}
		default:
			tr.Type = "scatter"
			tr.Mode = l.Style.Mark.String()
			tr.Line = &plotlyLine{Color: l.Style.Color, Width: l.Style.Width}
			if l.Style.Dash != Solid {
				tr.Line.Dash = string(l.Style.Dash)
			}
			if l.Style.Mark == LineMarkers {
				tr.Marker = &plotlyMarker{Size: l.Style.MarkerSize}
				if l.Style.Symbol != Circle {
					tr.Marker.Symbol = string(l.Style.Symbol)
				}
			}
		}
		doc.Data = append(doc.Data, tr)
	}

	for _, a := range f.Axes {
		ax := map[string]any{"title": a.Title}
		if a.Color != "" {
			ax["titlefont"] = map[string]any{"color": a.Color}
			ax["tickfont"] = map[string]any{"color": a.Color}
		}
		if a.Overlaying != "" {
			ax["overlaying"] = string(a.Overlaying)
			ax["side"] = a.Side
		}
		if a.Position != 0 {
			ax["anchor"] = "free"
			ax["position"] = a.Position
		}
		if a.Range != nil {
			ax["range"] = []float64{a.Range.Min, a.Range.Max}
		}
		doc.Layout[layoutKey(a.ID)] = ax
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode figure %q: %w", f.Title, err)
	}
	return b, nil
}

// layoutKey maps a trace axis reference ("y2") to its layout key ("yaxis2").
func layoutKey(id Axis) string {
	return "yaxis" + strings.TrimPrefix(string(id), "y")
}
