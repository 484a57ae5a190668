package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"

	"tableflip.dev/outbreak/pkg/printers"
	"tableflip.dev/outbreak/pkg/status"
)

// Watch refreshes the status feed on a schedule and prints each banner
// until the context is done.
type Watch struct {
	Source   status.Source
	Interval time.Duration
	Out      io.Writer
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Source == nil {
		return errors.New("can not watch, no backend")
	}
	if w.Interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", w.Interval)
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}

	feed := status.NewFeed(w.Source)
	pp := printers.PrettyPrint{Out: out}
	tick := func() {
		snap := feed.Apply(feed.Fetch(ctx))
		if snap.Banner.Err != nil {
			log.Printf("status refresh failed: %v", snap.Banner.Err)
		}
		_, _ = color.New(color.Faint).Fprintf(out, "%s  ", snap.Updated.Format(time.Kitchen))
		pp.Banner(snap.Banner)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.Interval), tick); err != nil {
		return err
	}

	tick()
	if cards := feed.Snapshot().Cards; len(cards) > 0 {
		pp.Cards(cards)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
