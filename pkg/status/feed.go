// Package status keeps the per-disease status cards and the fleet-wide
// alert banner.
package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/outbreak/pkg/alert"
	"tableflip.dev/outbreak/pkg/api"
)

// Source is the part of the api client a feed needs.
type Source interface {
	CurrentStatus(ctx context.Context) ([]api.DiseaseStatus, error)
}

// Card is the display model of one disease's status.
type Card struct {
	Disease string
	Cases   int
	Date    api.Date
	Trend   api.Trend
}

// Arrow is the glyph for the card's trend.
func (c Card) Arrow() string {
	if c.Trend == api.Increasing {
		return "▲"
	}
	return "▼"
}

// Banner is the fleet-wide alert. Err is set when the last refresh failed;
// the tier then describes the last successful refresh.
type Banner struct {
	Tier    alert.Tier
	Disease string
	Cases   int
	Message string
	Err     error
}

// ErrorMessage is shown in place of the banner text after a failed refresh.
const ErrorMessage = "Error loading data. Retrying on the next refresh."

// BannerFor classifies the highest current case count. The first disease
// reaching the maximum is the one named.
func BannerFor(statuses []api.DiseaseStatus) Banner {
	var b Banner
	if len(statuses) > 0 {
		b.Disease = statuses[0].Disease
		b.Cases = statuses[0].CurrentCases
	}
	for _, s := range statuses {
		if s.CurrentCases > b.Cases {
			b.Cases = s.CurrentCases
			b.Disease = s.Disease
		}
	}
	b.Tier = alert.Classify(b.Cases)
	switch b.Tier.Severity {
	case alert.High:
		b.Message = fmt.Sprintf("High Alert: %s cases at %d. Monitor closely.", b.Disease, b.Cases)
	case alert.Medium:
		b.Message = fmt.Sprintf("Moderate Alert: %s cases at %d. Stay vigilant.", b.Disease, b.Cases)
	default:
		b.Message = "All diseases under control. Continue monitoring."
	}
	return b
}

// Result is the outcome of one status fetch.
type Result struct {
	Statuses []api.DiseaseStatus
	Err      error
}

// Snapshot is a copy of the feed's display state.
type Snapshot struct {
	Cards   []Card
	Banner  Banner
	Updated time.Time
	Loaded  bool
}

// Feed holds the last-known status cards and banner.
type Feed struct {
	source Source
	now    func() time.Time

	mu      sync.RWMutex
	cards   []Card
	banner  Banner
	updated time.Time
	loaded  bool
}

func NewFeed(source Source) *Feed {
	return &Feed{source: source, now: time.Now}
}

// Fetch requests the current status without changing the feed.
func (f *Feed) Fetch(ctx context.Context) Result {
	statuses, err := f.source.CurrentStatus(ctx)
	return Result{Statuses: statuses, Err: err}
}

// Apply folds a fetch result into the feed. On failure the cards keep
// their last-known values and only the banner reports the error.
func (f *Feed) Apply(r Result) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Err != nil {
		f.banner.Err = r.Err
		f.banner.Message = ErrorMessage
		return f.snapshotLocked()
	}

	cards := make([]Card, 0, len(r.Statuses))
	for _, s := range r.Statuses {
		cards = append(cards, Card{Disease: s.Disease, Cases: s.CurrentCases, Date: s.Date, Trend: s.Trend})
	}
	f.cards = cards
	f.banner = BannerFor(r.Statuses)
	f.updated = f.now()
	f.loaded = true
	return f.snapshotLocked()
}

// Refresh fetches and applies in one step.
func (f *Feed) Refresh(ctx context.Context) ([]api.DiseaseStatus, error) {
	r := f.Fetch(ctx)
	f.Apply(r)
	return r.Statuses, r.Err
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshotLocked()
}

func (f *Feed) snapshotLocked() Snapshot {
	cards := make([]Card, len(f.cards))
	copy(cards, f.cards)
	return Snapshot{Cards: cards, Banner: f.banner, Updated: f.updated, Loaded: f.loaded}
}
