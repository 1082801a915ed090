package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weathercast/internal/config"
	"weathercast/internal/display"
	"weathercast/internal/fetchers"
	"weathercast/internal/models"
)

func newCollectCmd(app *App) *cobra.Command {
	var locationsPath, output string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect weather for every saved location into a JSON document",
		Long: `Collect fetches current weather and forecasts for all saved locations in
parallel and writes one collection document. The analyze command accepts
that document back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runCollect(cmd.Context(), locationsPath, output)
		},
	}

	cmd.Flags().StringVar(&locationsPath, "locations", "", "locations file (default from config)")
	cmd.Flags().StringVar(&output, "output", "weather_data.json", "output file")

	return cmd
}

func (a *App) runCollect(ctx context.Context, locationsPath, output string) error {
	registry := a.locations
	if locationsPath != "" {
		loaded, err := config.LoadLocations(locationsPath)
		if err != nil {
			return a.fail(display.ErrKindConfig, err)
		}
		registry = loaded
	}

	names := registry.Names()
	if len(names) == 0 {
		return a.fail(display.ErrKindConfig, fmt.Errorf("no locations to collect"))
	}

	locs := make([]models.Location, 0, len(names))
	for _, name := range names {
		coords, _ := registry.Coordinates(name)
		locs = append(locs, models.Location{Name: name, Lat: coords.Latitude, Lon: coords.Longitude})
	}

	fmt.Fprintf(a.out, "📡 Collecting weather for %d locations...\n", len(locs))

	results := a.fetcher.CollectAll(ctx, a.cfg.MetAPIURL, locs, a.cfg.MaxForecastHours, a.cfg.MaxWorkers)
	for _, result := range results {
		if result.Success {
			fmt.Fprintf(a.out, "   ✅ %s\n", result.Location.Name)
		} else {
			fmt.Fprintf(a.out, "   ❌ %s: %s\n", result.Location.Name, result.Error)
		}
	}

	doc := fetchers.BuildCollectionDocument(results)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection document: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(a.out, "💾 Wrote %s (request %s)\n", output, doc.RequestID)

	if a.jsonOutput {
		return a.printJSON(doc)
	}
	return nil
}
