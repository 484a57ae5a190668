package options

import (
	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	CSV    bool
	PNGDir string
}

func AddExportArgs(cmd *cobra.Command, eo *ExportOptions) {
	cmd.Flags().BoolVar(&eo.CSV, "csv", false,
		"Save the forecast as <disease>_forecast.csv in the downloads directory.")
	cmd.Flags().StringVar(&eo.PNGDir, "png", "",
		"Render the forecast and climate charts as PNG files into this directory.")
}
