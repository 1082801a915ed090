package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weathercast/internal/config"
)

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	app := NewApp()
	if err := NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the weathercast command tree.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weathercast",
		Short: "Weather conditions, trends, and reports from the command line",
		Long: `weathercast fetches weather from the Norwegian Meteorological Institute
(api.met.no), analyzes conditions and forecast trends, and keeps a local
history it can mine for patterns and turn into HTML reports.`,
		Version:       config.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
	}

	cmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "print raw JSON instead of formatted output")
	cmd.PersistentFlags().BoolVar(&app.noSave, "no-save", false, "do not persist fetched readings")

	cmd.AddCommand(
		newCurrentCmd(app),
		newForecastCmd(app),
		newAnalyzeCmd(app),
		newCollectCmd(app),
		newHistoryCmd(app),
		newPatternsCmd(app),
		newReportCmd(app),
		newServeCmd(app),
		newLocationsCmd(app),
	)

	return cmd
}
