package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weathercast/internal/display"
	"weathercast/internal/history"
	"weathercast/internal/models"
	"weathercast/internal/storage"
)

func newPatternsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "patterns [city]",
		Short: "Mine the stored reading series for trends, anomalies, and patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPatterns(app.locationName(args), days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "window in days")

	return cmd
}

func (a *App) runPatterns(name string, days int) error {
	store, err := storage.NewReadingStore(a.cfg)
	if err != nil {
		return a.fail(display.ErrKindConfig, err)
	}
	defer store.Close()

	doc, err := store.LoadSeries(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(a.out, "No stored readings for %s yet. Run 'weathercast current %s' first.\n", name, name)
			return nil
		}
		return fmt.Errorf("failed to load series: %w", err)
	}

	entries := doc.Readings
	if days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		kept := make([]models.SeriesEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.RecordedAt.After(cutoff) {
				kept = append(kept, entry)
			}
		}
		entries = kept
	}

	report := history.NewEngine().Analyze(name, entries)
	if a.jsonOutput {
		return a.printJSON(report)
	}
	a.renderer.Report(report)
	return nil
}
