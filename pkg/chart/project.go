package chart

import (
	"time"

	"tableflip.dev/outbreak/pkg/api"
)

const (
	colorHistorical  = "#667eea"
	colorForecast    = "#ff6b6b"
	colorTemperature = "#ff6b6b"
	colorHumidity    = "#51cf66"
	colorRainfall    = "#339af0"

	// rainfallPosition anchors the outer right axis inside the plot area so
	// it does not collide with the humidity axis.
	rainfallPosition = 0.95
	// rainfallHeadroom pads the top of the rainfall range.
	rainfallHeadroom = 0.1
)

// Forecast projects a bundle into the historical and forecast layers. Both
// share the time axis and the case count axis.
func Forecast(b *api.ForecastBundle) []Layer {
	if b == nil {
		return nil
	}
	hist := make([]float64, len(b.HistoricalCases))
	for i, c := range b.HistoricalCases {
		hist[i] = float64(c)
	}
	pred := make([]float64, len(b.PredictedCases))
	copy(pred, b.PredictedCases)

	return []Layer{{
		ID:   "historical",
		Name: "Historical Cases",
		X:    times(b.HistoricalDates),
		Y:    hist,
		Axis: AxisLeft,
		Style: Style{
			Mark:       LineMarkers,
			Color:      colorHistorical,
			Width:      3,
			Dash:       Solid,
			MarkerSize: 6,
			Symbol:     Circle,
		},
	}, {
		ID:   "forecast",
		Name: "Forecasted Cases",
		X:    times(b.ForecastDates),
		Y:    pred,
		Axis: AxisLeft,
		Style: Style{
			Mark:       LineMarkers,
			Color:      colorForecast,
			Width:      3,
			Dash:       Dashed,
			MarkerSize: 8,
			Symbol:     Diamond,
		},
	}}
}

// Climate projects a climate bundle into three layers, each bound to its
// own axis: temperature left, humidity right, rainfall outer right.
func Climate(b *api.ClimateBundle) []Layer {
	if b == nil {
		return nil
	}
	x := times(b.Dates)
	return []Layer{{
		ID:    "temperature",
		Name:  "Temperature (°C)",
		X:     x,
		Y:     clone(b.Temperature),
		Axis:  AxisLeft,
		Style: Style{Mark: Line, Color: colorTemperature, Width: 2, Dash: Solid},
	}, {
		ID:    "humidity",
		Name:  "Humidity (%)",
		X:     x,
		Y:     clone(b.Humidity),
		Axis:  AxisRight1,
		Style: Style{Mark: Line, Color: colorHumidity, Width: 2, Dash: Solid},
	}, {
		ID:    "rainfall",
		Name:  "Rainfall (mm)",
		X:     x,
		Y:     clone(b.Rainfall),
		Axis:  AxisRight2,
		Style: Style{Mark: Bar, Color: colorRainfall},
	}}
}

// ForecastFigure wraps the forecast layers with their axis.
func ForecastFigure(b *api.ForecastBundle) Figure {
	title := "Forecast"
	if b != nil && b.Disease != "" {
		title = b.Disease + " Forecast"
	}
	return Figure{
		Title:  title,
		XTitle: "Date",
		Axes: []AxisSpec{
			{ID: AxisLeft, Title: "Number of Cases", Side: "left"},
		},
		Layers: Forecast(b),
	}
}

// ClimateFigure wraps the climate layers with three axes. The rainfall
// axis is scaled independently of the other two.
func ClimateFigure(b *api.ClimateBundle) Figure {
	var rain []float64
	if b != nil {
		rain = b.Rainfall
	}
	return Figure{
		Title:  "Climate",
		XTitle: "Date",
		Axes: []AxisSpec{
			{ID: AxisLeft, Title: "Temperature (°C)", Color: colorTemperature, Side: "left"},
			{ID: AxisRight1, Title: "Humidity (%)", Color: colorHumidity, Side: "right", Overlaying: AxisLeft},
			{ID: AxisRight2, Title: "Rainfall (mm)", Color: colorRainfall, Side: "right", Overlaying: AxisLeft,
				Position: rainfallPosition, Range: paddedRange(rain, rainfallHeadroom)},
		},
		Layers: Climate(b),
	}
}

// paddedRange spans from the lower of zero and the minimum value to the
// maximum value, widened by headroom on each side that is not zero.
func paddedRange(values []float64, headroom float64) *Range {
	min, max := 0.0, 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == 0 && max == 0 {
		max = 1
	}
	return &Range{Min: min * (1 + headroom), Max: max * (1 + headroom)}
}

func times(dates []api.Date) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = d.Time
	}
	return out
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
