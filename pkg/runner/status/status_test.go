package status

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/outbreak/pkg/api"
)

func init() {
	color.NoColor = true
}

type fakeSource struct {
	statuses []api.DiseaseStatus
	err      error
}

func (f fakeSource) CurrentStatus(context.Context) ([]api.DiseaseStatus, error) {
	return f.statuses, f.err
}

var statuses = []api.DiseaseStatus{
	{Disease: "Dengue", CurrentCases: 40, Date: api.MustDate("2024-01-02"), Trend: api.Increasing},
	{Disease: "Malaria", CurrentCases: 12, Date: api.MustDate("2024-01-02"), Trend: api.Decreasing},
}

func TestStatusPrintsBannerAndCards(t *testing.T) {
	var buf bytes.Buffer
	s := Status{Source: fakeSource{statuses: statuses}, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"All diseases under control. Continue monitoring.", "Dengue", "Malaria", "40"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	s := Status{Source: fakeSource{statuses: statuses}, JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var got statusJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Severity != "low" || got.Disease != "Dengue" || got.Cases != 40 || len(got.Statuses) != 2 {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestStatusError(t *testing.T) {
	s := Status{Source: fakeSource{err: errors.New("boom")}, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
