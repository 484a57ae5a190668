package ui

import (
	"context"
	"errors"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/tui/app"
	"tableflip.dev/outbreak/pkg/tui/theme"
)

// UI runs the interactive dashboard.
type UI struct {
	Config  *config.Config
	Backend dashboard.Backend
}

func (d *UI) Do(ctx context.Context) error {
	if d.Config == nil {
		return errors.New("can not start ui, no config")
	}
	backend := d.Backend
	if backend == nil {
		backend = d.Config.Client()
	}

	if d.Config.LogFile != "" {
		f, err := tea.LogToFile(d.Config.LogFile, "outbreak")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var sink export.Sink
	if s, err := export.NewDiskSink(d.Config.Downloads); err != nil {
		log.Printf("downloads unavailable: %v", err)
	} else {
		sink = s
	}

	view := dashboard.NewView()
	m := app.New(app.Options{
		Controller:   dashboard.NewFor(backend, view),
		View:         view,
		Diseases:     d.Config.Diseases,
		Sink:         sink,
		Theme:        theme.Detect(),
		PollInterval: config.PollInterval,
	})

	return app.Run(m, func(p *tea.Program) {
		d.Config.Watch(func(next *config.Config) {
			p.Send(app.DiseasesMsg(next.Diseases))
		})
		go func() {
			<-ctx.Done()
			p.Quit()
		}()
	})
}
