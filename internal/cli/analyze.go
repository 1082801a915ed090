package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weathercast/internal/analyzer"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a saved weather JSON document",
		Long: `Analyze runs the condition and trend analyzer over a JSON file: a single
reading, an array of readings, or a collection document written by the
collect command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAnalyze(args[0])
		},
	}

	return cmd
}

func (a *App) runAnalyze(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	analysis, err := analyzer.AnalyzeJSON(data)
	if err != nil {
		return a.fail(classifyError(err), fmt.Errorf("failed to analyze %s: %w", path, err))
	}

	if a.jsonOutput {
		return a.printJSON(analysis)
	}

	a.renderer.Analysis(analysis)
	return nil
}
