package cli

import (
	"context"

	"github.com/spf13/cobra"

	"weathercast/internal/analyzer"
	"weathercast/internal/logger"
	"weathercast/internal/models"
)

func newCurrentCmd(app *App) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "current [city]",
		Short: "Show current weather with condition analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			return app.runCurrent(cmd.Context(), city, auto)
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "detect location from your IP address")

	return cmd
}

func (a *App) runCurrent(ctx context.Context, city string, auto bool) error {
	loc, err := a.resolveLocation(ctx, city, auto)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	current, forecast, err := a.fetcher.FetchWeather(ctx, a.cfg.MetAPIURL, *loc, a.cfg.MaxForecastHours)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	analysis := analyzer.Analyze(analyzer.Input{Current: current, Forecast: forecast})

	// The alert feed is best-effort; a broken feed never blocks the weather.
	alerts, err := a.fetcher.FetchAlerts(ctx, a.cfg.AlertsFeedURL)
	if err != nil {
		logger.Debug("Alert feed unavailable", map[string]interface{}{"error": err.Error()})
		alerts = nil
	}

	if a.jsonOutput {
		if err := a.printJSON(struct {
			Location models.Location       `json:"location"`
			Current  models.Reading        `json:"current_weather"`
			Analysis *models.Analysis      `json:"analysis"`
			Alerts   []models.WeatherAlert `json:"alerts,omitempty"`
		}{*loc, *current, analysis, alerts}); err != nil {
			return err
		}
	} else {
		a.renderer.Current(*loc, *current)
		a.renderer.Analysis(analysis)
		a.renderer.Alerts(alerts)
	}

	a.saveReading(*loc, *current)
	return nil
}
