package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive dashboard",
		Example: `
outbreak ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("the dashboard needs a terminal, try outbreak status")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			i := ui.UI{Config: cfg}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
