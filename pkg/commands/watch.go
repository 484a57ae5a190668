package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/runner/watch"
	"tableflip.dev/outbreak/pkg/timeutil"
)

func addWatch(topLevel *cobra.Command) {
	every := timeutil.FormatInterval(config.PollInterval)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the alert banner on every status refresh.",
		Example: `
outbreak watch
outbreak watch --every 1m30s
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			interval, err := timeutil.ParseInterval(every)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := watch.Watch{
				Source:   cfg.Client(),
				Interval: interval,
			}
			return w.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&every, "every", every, "refresh interval, for example 90s, 5m or 1h30m")

	topLevel.AddCommand(cmd)
}
