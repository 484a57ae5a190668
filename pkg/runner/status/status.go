package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/printers"
	feed "tableflip.dev/outbreak/pkg/status"
)

// Status prints one refresh of the status feed.
type Status struct {
	Source feed.Source
	JSON   bool
	Out    io.Writer
}

type statusJSON struct {
	Statuses []api.DiseaseStatus `json:"statuses"`
	Severity string              `json:"severity"`
	Disease  string              `json:"disease,omitempty"`
	Cases    int                 `json:"cases"`
	Message  string              `json:"message"`
}

func (s *Status) Do(ctx context.Context) error {
	if s.Source == nil {
		return errors.New("can not get status, no backend")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	f := feed.NewFeed(s.Source)
	statuses, err := f.Refresh(ctx)
	if err != nil {
		return err
	}
	snap := f.Snapshot()

	if s.JSON {
		b, err := json.Marshal(statusJSON{
			Statuses: statuses,
			Severity: snap.Banner.Tier.Severity.String(),
			Disease:  snap.Banner.Disease,
			Cases:    snap.Banner.Cases,
			Message:  snap.Banner.Message,
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Banner(snap.Banner)
	pp.NewLine()
	pp.Cards(snap.Cards)
	return nil
}
