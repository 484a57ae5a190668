package commands

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/outbreak/pkg/commands/options"
	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/runner/forecast"
)

func addForecast(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "forecast <disease>",
		Short: "Forecast, alert and climate data for one disease.",
		Example: `
outbreak forecast Dengue
outbreak forecast Malaria --csv
outbreak forecast Influenza --png ~/charts
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return diseaseCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			f := forecast.Forecast{
				Backend: cfg.Client(),
				Disease: args[0],
				JSON:    oo.JSON,
			}
			if eo.CSV {
				sink, err := export.NewDiskSink(cfg.Downloads)
				if err != nil {
					return oo.HandleError(err)
				}
				f.CSV = sink
			}
			if eo.PNGDir != "" {
				dir, err := homedir.Expand(eo.PNGDir)
				if err != nil {
					return oo.HandleError(err)
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return oo.HandleError(err)
				}
				f.PNGDir = dir
			}
			return oo.HandleError(f.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
