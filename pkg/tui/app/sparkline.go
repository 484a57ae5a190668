package app

import (
	"fmt"
	"strings"

	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/tui/theme"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// sparkline scales values into block glyphs between lo and hi.
func sparkline(values []float64, lo, hi float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	span := hi - lo
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

func bounds(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// figureLines draws one sparkline per layer. Layers sharing an axis share
// a scale; an axis with a fixed range uses it.
func figureLines(f chart.Figure) []string {
	scale := map[chart.Axis][2]float64{}
	for _, l := range f.Layers {
		lo, hi := bounds(l.Y)
		if s, ok := scale[l.Axis]; ok {
			if s[0] < lo {
				lo = s[0]
			}
			if s[1] > hi {
				hi = s[1]
			}
		}
		scale[l.Axis] = [2]float64{lo, hi}
	}
	for _, a := range f.Axes {
		if a.Range != nil {
			scale[a.ID] = [2]float64{a.Range.Min, a.Range.Max}
		}
	}

	var out []string
	for _, l := range f.Layers {
		if len(l.Y) == 0 {
			continue
		}
		s := scale[l.Axis]
		glyphs := sparkline(l.Y, s[0], s[1])
		title := l.Name
		if spec, ok := f.Axis(l.Axis); ok && spec.Title != "" && spec.Title != l.Name {
			title = fmt.Sprintf("%s [%s]", l.Name, spec.Title)
		}
		out = append(out, fmt.Sprintf("%-34s %s  %s", title, theme.Series(l.Style.Color).Render(glyphs), axisSide(l.Axis)))
	}
	return out
}

func axisSide(a chart.Axis) string {
	switch a {
	case chart.AxisRight1:
		return "→"
	case chart.AxisRight2:
		return "⇒"
	default:
		return "←"
	}
}

func surfaceTitle(s dashboard.Surface) string {
	if s == dashboard.ClimateChart {
		return "Climate"
	}
	return "Forecast"
}
