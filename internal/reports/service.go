package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"weathercast/internal/charts"
	"weathercast/internal/logger"
	"weathercast/internal/models"
	"weathercast/internal/storage"
)

// Report artifacts, numbered in the order they land in the report folder.
const (
	WeatherDataFile = "01_weather_data.json"
	AnalysisFile    = "02_analysis.json"
	MarkdownFile    = "03_report.md"
	HTMLFile        = storage.ReportPageName
)

// BriefingProvider generates the optional narrative briefing. A failing
// provider must not block the report; the service logs and moves on.
type BriefingProvider interface {
	GenerateBriefing(ctx context.Context, location string, reading models.Reading, analysis *models.Analysis) (string, error)
}

// ReportService orchestrates a report run: charts, markdown, HTML, and the
// numbered artifacts stored through a ReportStore.
type ReportService struct {
	store    storage.ReportStore
	builder  *Builder
	html     *HTMLBuilder
	briefing BriefingProvider
}

// NewReportService creates a report service. briefing may be nil; reports
// are then built without a briefing section.
func NewReportService(store storage.ReportStore, briefing BriefingProvider) *ReportService {
	return &ReportService{
		store:    store,
		builder:  NewBuilder(),
		html:     NewHTMLBuilder(),
		briefing: briefing,
	}
}

// ReportResult describes one stored report run.
type ReportResult struct {
	RunID      string    `json:"run_id"`
	FolderPath string    `json:"folder_path"`
	Files      []string  `json:"files"`
	Timestamp  time.Time `json:"timestamp"`
}

// weatherDocument is the 01_weather_data.json payload.
type weatherDocument struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Location    models.Location       `json:"location"`
	Current     models.Reading        `json:"current_weather"`
	Forecast    []models.Reading      `json:"forecast,omitempty"`
	Alerts      []models.WeatherAlert `json:"alerts,omitempty"`
}

type artifact struct {
	name    string
	content []byte
}

// Generate builds and stores all report artifacts for one location. Chart
// and briefing failures degrade to a report without them; a storage failure
// aborts the run.
func (rs *ReportService) Generate(ctx context.Context, data ReportData) (*ReportResult, error) {
	if rs.store == nil {
		return nil, fmt.Errorf("report store is required")
	}

	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now().UTC()
	}

	runID := ulid.Make().String()
	location := locationTitle(data.Location)

	logger.Info("Starting report generation", map[string]interface{}{
		"run_id":   runID,
		"location": location,
	})

	// Charts render into a scratch dir; the PNGs are re-read and stored as
	// artifacts alongside the report files.
	chartDir, err := os.MkdirTemp("", "weathercast-charts-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	defer os.RemoveAll(chartDir)

	chartGen := charts.NewChartGenerator(chartDir)

	chartFiles, err := chartGen.GenerateCharts(location, data.Forecast)
	if err != nil {
		logger.Warn("Chart generation failed, continuing without images", map[string]interface{}{"error": err.Error()})
	}

	snippets, err := chartGen.GenerateSnippets(location, data.Forecast)
	if err != nil {
		logger.Warn("Chart snippets failed, continuing without them", map[string]interface{}{"error": err.Error()})
	}

	if data.Briefing == "" && rs.briefing != nil {
		briefing, err := rs.briefing.GenerateBriefing(ctx, location, data.Current, data.Analysis)
		if err != nil {
			logger.Warn("Briefing unavailable, continuing without it", map[string]interface{}{"error": err.Error()})
		} else {
			data.Briefing = briefing
		}
	}

	markdown := rs.builder.Build(data)

	page, err := rs.html.BuildCompleteHTML(data, markdown, snippets)
	if err != nil {
		return nil, fmt.Errorf("failed to build report page: %w", err)
	}

	weatherJSON, err := json.MarshalIndent(weatherDocument{
		RunID:       runID,
		GeneratedAt: data.GeneratedAt,
		Location:    data.Location,
		Current:     data.Current,
		Forecast:    data.Forecast,
		Alerts:      data.Alerts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal weather data: %w", err)
	}

	analysisJSON, err := json.MarshalIndent(data.Analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	artifacts := []artifact{
		{WeatherDataFile, weatherJSON},
		{AnalysisFile, analysisJSON},
		{MarkdownFile, []byte(markdown)},
		{HTMLFile, []byte(page)},
	}

	for _, chartFile := range chartFiles {
		content, err := os.ReadFile(chartFile)
		if err != nil {
			logger.Warn("Skipping unreadable chart file", map[string]interface{}{
				"file":  chartFile,
				"error": err.Error(),
			})
			continue
		}
		artifacts = append(artifacts, artifact{filepath.Base(chartFile), content})
	}

	result := &ReportResult{
		RunID:      runID,
		FolderPath: storage.GenerateReportFolderPath(data.GeneratedAt),
		Timestamp:  data.GeneratedAt,
	}

	for _, a := range artifacts {
		if err := rs.store.StoreFile(ctx, a.content, a.name, data.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", a.name, err)
		}
		result.Files = append(result.Files, a.name)
	}

	logger.Info("Report generation completed", map[string]interface{}{
		"run_id": runID,
		"folder": result.FolderPath,
		"files":  len(result.Files),
	})

	return result, nil
}
