package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/timeutil"
)

// Info prints where settings come from and what they resolved to.
type Info struct {
	Config *config.Config
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("OUTBREAK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "OUTBREAK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "OUTBREAK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	if n.Config == nil {
		return errors.New("failed to load config")
	}

	file := n.Config.File()
	if file == "" {
		file = "(defaults)"
	}
	_, _ = fmt.Fprintln(out, "Config.file:", file)
	_, _ = fmt.Fprintln(out, "API:", n.Config.APIURL)
	if n.Config.Timeout > 0 {
		_, _ = fmt.Fprintln(out, "Timeout:", n.Config.Timeout)
	}
	_, _ = fmt.Fprintln(out, "Downloads:", n.Config.Downloads)
	if n.Config.LogFile != "" {
		_, _ = fmt.Fprintln(out, "Log:", n.Config.LogFile)
	}

	_, _ = fmt.Fprintf(out, "Diseases:\n")
	for _, d := range n.Config.Diseases {
		_, _ = fmt.Fprintf(out, "  %s\n", d)
	}
	_, _ = fmt.Fprintln(out, "Poll:", timeutil.FormatInterval(config.PollInterval))
	return nil
}
