// Package export encodes the active forecast as a downloadable CSV file.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"tableflip.dev/outbreak/pkg/api"
)

// MIME is the media type of an exported forecast.
const MIME = "text/csv"

// ErrNoActiveDataset is returned when there is no forecast to export.
var ErrNoActiveDataset = errors.New("no active forecast to export")

var header = []string{"Date", "Predicted_Cases"}

// File is an encoded export ready to save.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Filename is the download name for a disease's forecast.
func Filename(disease string) string {
	return fmt.Sprintf("%s_forecast.csv", disease)
}

// Encode writes the header and one row per forecast point, in order.
func Encode(b *api.ForecastBundle) ([]byte, error) {
	if b == nil {
		return nil, ErrNoActiveDataset
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, d := range b.ForecastDates {
		if err := w.Write([]string{d.String(), formatCases(b.PredictedCases[i])}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode forecast csv: %w", err)
	}
	return buf.Bytes(), nil
}

// New encodes b as the export for disease.
func New(disease string, b *api.ForecastBundle) (File, error) {
	if disease == "" {
		return File{}, ErrNoActiveDataset
	}
	data, err := Encode(b)
	if err != nil {
		return File{}, err
	}
	return File{Name: Filename(disease), MIME: MIME, Data: data}, nil
}

// formatCases writes the value in its shortest round-trip form so whole
// counts stay integers.
func formatCases(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
