package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/outbreak/pkg/commands/options"
	"tableflip.dev/outbreak/pkg/config"
	"tableflip.dev/outbreak/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Current cases per disease and the alert banner.",
		Example: `
outbreak status
outbreak status --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			s := status.Status{
				Source: cfg.Client(),
				JSON:   oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
