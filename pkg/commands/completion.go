package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/outbreak/pkg/config"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(outbreak completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(outbreak completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func diseaseCompletions(toComplete string) []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	ds := make([]string, 0, len(cfg.Diseases))
	for _, d := range cfg.Diseases {
		if strings.HasPrefix(strings.ToLower(d), strings.ToLower(toComplete)) {
			ds = append(ds, d)
		}
	}
	return ds
}
