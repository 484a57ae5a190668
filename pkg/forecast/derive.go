package forecast

import (
	"fmt"

	"tableflip.dev/outbreak/pkg/api"
)

// Trend is the direction of a forecast row relative to its predecessor.
type Trend int

const (
	Down Trend = iota
	Up
)

func (t Trend) String() string {
	if t == Up {
		return "up"
	}
	return "down"
}

// Arrow is the glyph used for the trend in tables.
func (t Trend) Arrow() string {
	if t == Up {
		return "▲"
	}
	return "▼"
}

// Stats are the summary figures shown beside a forecast.
type Stats struct {
	PeriodStart api.Date
	PeriodEnd   api.Date
	Peak        float64
	HasPeak     bool
	LastUpdated api.Timestamp
}

// Period renders the forecast window, or "" when there is none.
func (s Stats) Period() string {
	if !s.HasPeak {
		return ""
	}
	return fmt.Sprintf("%s to %s", s.PeriodStart, s.PeriodEnd)
}

// Row is one line of the forecast table.
type Row struct {
	Date      api.Date
	Predicted float64
	Trend     Trend
}

// Derive computes the stats and table rows for a bundle.
func Derive(b *api.ForecastBundle) (Stats, []Row) {
	if b == nil {
		return Stats{}, nil
	}
	stats := Stats{LastUpdated: b.LastUpdated}
	if n := len(b.ForecastDates); n > 0 {
		stats.PeriodStart = b.ForecastDates[0]
		stats.PeriodEnd = b.ForecastDates[n-1]
		stats.HasPeak = true
		stats.Peak = b.PredictedCases[0]
		for _, v := range b.PredictedCases[1:] {
			if v > stats.Peak {
				stats.Peak = v
			}
		}
	}

	trends := Trends(b.HistoricalCases, b.PredictedCases)
	rows := make([]Row, len(b.ForecastDates))
	for i := range b.ForecastDates {
		rows[i] = Row{Date: b.ForecastDates[i], Predicted: b.PredictedCases[i], Trend: trends[i]}
	}
	return stats, rows
}

// Trends compares each prediction with its predecessor in the chain
// historical[last], predicted[0], predicted[1], ... A row is Up only when
// strictly greater. With no history the first row is Down.
func Trends(historical []int, predicted []float64) []Trend {
	out := make([]Trend, len(predicted))
	for i, v := range predicted {
		var prev float64
		switch {
		case i > 0:
			prev = predicted[i-1]
		case len(historical) > 0:
			prev = float64(historical[len(historical)-1])
		default:
			out[i] = Down
			continue
		}
		if v > prev {
			out[i] = Up
		} else {
			out[i] = Down
		}
	}
	return out
}
