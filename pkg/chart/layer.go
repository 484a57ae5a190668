// Package chart projects forecast and climate bundles into renderer-neutral
// series layers bound to named value axes.
package chart

import (
	"time"
)

// Axis names a vertical value axis.
type Axis string

const (
	AxisLeft   Axis = "y"
	AxisRight1 Axis = "y2"
	AxisRight2 Axis = "y3"
)

// Mark is how a layer's points are drawn.
type Mark int

const (
	Line Mark = iota
	LineMarkers
	Bar
)

func (m Mark) String() string {
	switch m {
	case LineMarkers:
		return "lines+markers"
	case Bar:
		return "bar"
	default:
		return "lines"
	}
}

// Dash is the stroke pattern of a line.
type Dash string

const (
	Solid  Dash = "solid"
	Dashed Dash = "dash"
)

// Symbol is the marker shape.
type Symbol string

const (
	Circle  Symbol = "circle"
	Diamond Symbol = "diamond"
)

type Style struct {
	Mark       Mark
	Color      string
	Width      float64
	Dash       Dash
	MarkerSize float64
	Symbol     Symbol
}

// Layer is one named series on one value axis.
type Layer struct {
	ID    string
	Name  string
	X     []time.Time
	Y     []float64
	Axis  Axis
	Style Style
}

// Range is a fixed value range for an axis.
type Range struct {
	Min float64
	Max float64
}

// AxisSpec describes a value axis of a figure.
type AxisSpec struct {
	ID         Axis
	Title      string
	Color      string
	Side       string
	Overlaying Axis
	// Position is the free anchor of an outer axis in [0,1] of the plot
	// width. Zero means the axis sits at the plot edge.
	Position float64
	Range    *Range
}

// Figure is a complete chart ready to hand to a renderer.
type Figure struct {
	Title  string
	XTitle string
	Axes   []AxisSpec
	Layers []Layer
}

// Axis returns the spec for id.
func (f Figure) Axis(id Axis) (AxisSpec, bool) {
	for _, a := range f.Axes {
		if a.ID == id {
			return a, true
		}
	}
	return AxisSpec{}, false
}

// Empty reports whether the figure has no points to draw.
func (f Figure) Empty() bool {
	for _, l := range f.Layers {
		if len(l.X) > 0 {
			return false
		}
	}
	return true
}
