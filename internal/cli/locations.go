package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weathercast/internal/models"
)

func newLocationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List and manage saved locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLocationsList()
		},
	}

	cmd.AddCommand(
		newLocationsAddCmd(app),
		newLocationsRemoveCmd(app),
		newLocationsDefaultCmd(app),
	)

	return cmd
}

func (a *App) runLocationsList() error {
	if a.jsonOutput {
		return a.printJSON(a.locations)
	}

	names := a.locations.Names()
	locs := make([]models.Location, 0, len(names))
	for _, name := range names {
		coords, _ := a.locations.Coordinates(name)
		locs = append(locs, models.Location{Name: name, Lat: coords.Latitude, Lon: coords.Longitude})
	}

	a.renderer.Locations(locs)
	if a.locations.DefaultLocation != "" {
		fmt.Fprintf(a.out, "   Default: %s\n", a.locations.DefaultLocation)
	}
	return nil
}

func newLocationsAddCmd(app *App) *cobra.Command {
	var lat, lon float64
	var timezone string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a location, geocoding it unless coordinates are given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manual := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon")
			return app.runLocationsAdd(cmd.Context(), args[0], lat, lon, timezone, manual)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude (-90 to 90)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude (-180 to 180)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone name")

	return cmd
}

func (a *App) runLocationsAdd(ctx context.Context, name string, lat, lon float64, timezone string, manual bool) error {
	if !manual {
		entry, err := a.geocoder.Resolve(ctx, name)
		if err != nil {
			a.printSuggestions(ctx, name)
			return a.fail(classifyError(err), fmt.Errorf("could not find %q: %w", name, err))
		}
		lat, lon = entry.Lat, entry.Lon
	}

	if err := a.locations.Add(name, lat, lon, timezone); err != nil {
		return err
	}
	if err := a.saveLocations(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✅ Saved %s (%.4f, %.4f)\n", name, lat, lon)
	return nil
}

func newLocationsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a saved location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLocationsRemove(args[0])
		},
	}
}

func (a *App) runLocationsRemove(name string) error {
	if !a.locations.Remove(name) {
		return fmt.Errorf("no saved location named %q", name)
	}
	if err := a.saveLocations(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "🗑️  Removed %s\n", name)
	return nil
}

func newLocationsDefaultCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Set the default location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLocationsDefault(args[0])
		},
	}
}

func (a *App) runLocationsDefault(name string) error {
	if _, ok := a.locations.Coordinates(name); !ok {
		return fmt.Errorf("no saved location named %q; add it first", name)
	}

	a.locations.DefaultLocation = name
	if err := a.saveLocations(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✅ Default location is now %s\n", name)
	return nil
}

func (a *App) saveLocations() error {
	if err := a.locations.Save(a.cfg.LocationsPath); err != nil {
		return fmt.Errorf("failed to save locations: %w", err)
	}
	return nil
}
