package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"weathercast/internal/display"
	"weathercast/internal/llm"
	"weathercast/internal/logger"
	"weathercast/internal/reports"
	"weathercast/internal/server"
	"weathercast/internal/storage"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report archive over HTTP",
		Long: `Serve exposes the stored reports over HTTP: / redirects to the newest
report page, /reports lists recent ones, /files/ proxies stored artifacts,
and POST /generate produces a fresh report for the default location. Works
against both the local report directory and a GCS bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func (a *App) runServe(ctx context.Context, addr string) error {
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

	generate := func(ctx context.Context) (*reports.ReportResult, error) {
		loc, err := a.resolveLocation(ctx, "", false)
		if err != nil {
			return nil, err
		}
		data, current, err := a.assembleReport(ctx, loc)
		if err != nil {
			return nil, err
		}
		result, err := svc.Generate(ctx, data)
		if err != nil {
			return nil, err
		}
		a.saveReading(*loc, *current)
		return result, nil
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(reportStore, generate).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(a.out, "🌐 Serving reports on %s\n", addr)
	logger.Info("Report server listening", map[string]interface{}{
		"addr": addr,
		"mode": a.cfg.DeploymentMode,
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
