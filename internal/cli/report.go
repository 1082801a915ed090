package cli

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"weathercast/internal/analyzer"
	"weathercast/internal/display"
	"weathercast/internal/history"
	"weathercast/internal/llm"
	"weathercast/internal/logger"
	"weathercast/internal/models"
	"weathercast/internal/reports"
	"weathercast/internal/storage"
)

func newReportCmd(app *App) *cobra.Command {
	var openDir bool

	cmd := &cobra.Command{
		Use:   "report [city]",
		Short: "Generate a full HTML weather report",
		Long: `Report fetches weather, runs the analyzer, renders charts, and stores the
report artifacts (data, analysis, markdown, HTML page, chart images) in the
report archive. With an OpenAI key configured the report also carries a
generated briefing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			return app.runReport(cmd.Context(), city, openDir)
		},
	}

	cmd.Flags().BoolVar(&openDir, "open-dir", false, "open the stored report folder when done")

	return cmd
}

func (a *App) runReport(ctx context.Context, city string, openDir bool) error {
	loc, err := a.resolveLocation(ctx, city, false)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	fmt.Fprintf(a.out, "🌤️  Fetching weather for %s...\n", loc.Name)
	data, current, err := a.assembleReport(ctx, loc)
	if err != nil {
		return a.fail(classifyError(err), err)
	}

	reportStore, err := storage.NewReportStore(ctx, storage.DeploymentMode(a.cfg.DeploymentMode), a.cfg)
	if err != nil {
		return a.fail(display.ErrKindConfig, err)
	}
	defer reportStore.Close()

	var briefing reports.BriefingProvider
	if a.cfg.BriefingEnabled() {
		briefing = llm.NewBriefingClient(a.cfg.OpenAIAPIKey, a.cfg.OpenAIModel)
	}

	svc := reports.NewReportService(reportStore, briefing)
	result, err := svc.Generate(ctx, data)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	a.saveReading(*loc, *current)

	if a.jsonOutput {
		return a.printJSON(result)
	}

	fmt.Fprintf(a.out, "📄 Report %s stored under %s\n", result.RunID, result.FolderPath)
	for _, file := range result.Files {
		fmt.Fprintf(a.out, "   %s\n", file)
	}

	if openDir {
		a.openReportDir(result.FolderPath)
	}
	return nil
}

// assembleReport gathers everything one report needs: the live reading and
// forecast, the analysis, active alerts, and stored history context. Alert
// feed failures degrade to an alert-free report.
func (a *App) assembleReport(ctx context.Context, loc *models.Location) (reports.ReportData, *models.Reading, error) {
	current, forecast, err := a.fetcher.FetchWeather(ctx, a.cfg.MetAPIURL, *loc, a.cfg.MaxForecastHours)
	if err != nil {
		return reports.ReportData{}, nil, err
	}

	analysis := analyzer.Analyze(analyzer.Input{Current: current, Forecast: forecast})

	alerts, err := a.fetcher.FetchAlerts(ctx, a.cfg.AlertsFeedURL)
	if err != nil {
		logger.Debug("Alert feed unavailable", map[string]interface{}{"error": err.Error()})
		alerts = nil
	}

	return reports.ReportData{
		Location:    *loc,
		Current:     *current,
		Forecast:    forecast,
		Analysis:    analysis,
		Alerts:      alerts,
		History:     a.historySummary(loc.Name),
		GeneratedAt: time.Now().UTC(),
	}, current, nil
}

// historySummary is best-effort context for the report's history section.
func (a *App) historySummary(name string) *models.SnapshotSummary {
	store, err := storage.NewReadingStore(a.cfg)
	if err != nil {
		return nil
	}
	defer store.Close()

	snaps, err := store.LoadSnapshots(name)
	if err != nil || len(snaps) == 0 {
		return nil
	}
	summary := history.SummarizeSnapshots(name, snaps)
	return &summary
}

// openReportDir opens the stored report folder in the platform file manager.
// Only meaningful for the local report store; failures are logged, not fatal.
func (a *App) openReportDir(folderPath string) {
	if a.cfg.DeploymentMode != string(storage.DeploymentLocal) {
		fmt.Fprintln(a.out, "Reports are stored remotely; nothing to open locally.")
		return
	}

	dir, err := filepath.Abs(filepath.Join(a.cfg.LocalReportsDir, folderPath))
	if err != nil {
		logger.Debug("Cannot resolve report directory", map[string]interface{}{"error": err.Error()})
		return
	}

	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if err := exec.Command(opener, dir).Start(); err != nil {
		logger.Debug("Cannot open report directory", map[string]interface{}{"error": err.Error()})
	}
	fmt.Fprintf(a.out, "📂 %s\n", dir)
}
