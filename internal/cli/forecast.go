package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weathercast/internal/display"
	"weathercast/internal/models"
)

func newForecastCmd(app *App) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "forecast [city]",
		Short: "Show the 7-day forecast",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			return app.runForecast(cmd.Context(), city, hours)
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 168, "forecast hours to fetch")

	return cmd
}

func (a *App) runForecast(ctx context.Context, city string, hours int) error {
	if hours < 1 || hours > a.cfg.MaxForecastHours {
		hours = a.cfg.MaxForecastHours
	}

	loc, err := a.resolveLocation(ctx, city, false)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	_, forecast, err := a.fetcher.FetchWeather(ctx, a.cfg.MetAPIURL, *loc, hours)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	if a.jsonOutput {
		return a.printJSON(struct {
			Location models.Location  `json:"location"`
			Forecast []models.Reading `json:"forecast"`
		}{*loc, forecast})
	}

	fmt.Fprintf(a.out, "📅 7-Day Forecast for %s\n", display.LocationLabel(*loc))
	a.renderer.Weekly(forecast, time.Now().UTC())
	return nil
}
