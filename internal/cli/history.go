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

func newHistoryCmd(app *App) *cobra.Command {
	var days int
	var baseline bool

	cmd := &cobra.Command{
		Use:   "history [city]",
		Short: "Show stored readings for a location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runHistory(app.locationName(args), days, baseline)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "window in days")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "show the statistical baseline instead of raw history")

	return cmd
}

func (a *App) runHistory(name string, days int, baseline bool) error {
	store, err := storage.NewReadingStore(a.cfg)
	if err != nil {
		return a.fail(display.ErrKindConfig, err)
	}
	defer store.Close()

	if baseline {
		return a.showBaseline(store, name, days)
	}

	snaps, err := store.LoadSnapshots(name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	if days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		kept := snaps[:0]
		for _, snap := range snaps {
			if snap.SavedAt.After(cutoff) {
				kept = append(kept, snap)
			}
		}
		snaps = kept
	}

	summary := history.SummarizeSnapshots(name, snaps)
	if a.jsonOutput {
		return a.printJSON(summary)
	}
	a.renderer.Snapshots(summary)
	if summary.DataPoints == 0 {
		fmt.Fprintf(a.out, "   Run 'weathercast current %s' to start recording.\n", name)
	}
	return nil
}

// showBaseline prints the stored baseline, computing and storing a fresh one
// from the reading series when none exists yet.
func (a *App) showBaseline(store storage.ReadingStore, name string, days int) error {
	stored, err := store.LoadBaseline(name)
	if err == nil {
		return a.renderBaseline(*stored)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load baseline: %w", err)
	}

	doc, err := store.LoadSeries(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(a.out, "No stored readings for %s yet. Run 'weathercast current %s' first.\n", name, name)
			return nil
		}
		return fmt.Errorf("failed to load series: %w", err)
	}

	baseline, err := history.CalculateBaseline(doc, days)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot compute a baseline for %s yet: %v\n", name, err)
		return nil
	}
	if err := store.SaveBaseline(*baseline); err != nil {
		return fmt.Errorf("failed to save baseline: %w", err)
	}

	return a.renderBaseline(*baseline)
}

func (a *App) renderBaseline(b models.Baseline) error {
	if a.jsonOutput {
		return a.printJSON(b)
	}
	a.renderer.Baseline(b)
	return nil
}
