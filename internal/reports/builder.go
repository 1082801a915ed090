package reports

import (
	"fmt"
	"strings"
	"time"

	"weathercast/internal/display"
	"weathercast/internal/models"
)

// ReportData is everything the builders render for one location.
type ReportData struct {
	Location    models.Location
	Current     models.Reading
	Forecast    []models.Reading
	Analysis    *models.Analysis
	Alerts      []models.WeatherAlert
	History     *models.SnapshotSummary
	Briefing    string
	GeneratedAt time.Time
}

// Builder renders the markdown report. Output is deterministic for a given
// ReportData: section order is fixed and optional sections are dropped whole
// when their data is absent.
type Builder struct{}

// NewBuilder creates a markdown report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the full markdown report
func (b *Builder) Build(data ReportData) string {
	var md strings.Builder

	b.writeHeader(&md, data)
	b.writeCurrentConditions(&md, data.Current)
	b.writeAnalysis(&md, data.Analysis)
	b.writeHistory(&md, data.History)
	b.writeAlerts(&md, data.Alerts)
	b.writeBriefing(&md, data.Briefing)

	return md.String()
}

func (b *Builder) writeHeader(md *strings.Builder, data ReportData) {
	fmt.Fprintf(md, "# Weather Report: %s\n\n", locationTitle(data.Location))
	fmt.Fprintf(md, "Generated %s\n\n", data.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))
}

func (b *Builder) writeCurrentConditions(md *strings.Builder, reading models.Reading) {
	md.WriteString("## Current Conditions\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	fmt.Fprintf(md, "| Temperature | %s |\n", metricCell(reading.Temperature, "%.1f°C"))
	fmt.Fprintf(md, "| Humidity | %s |\n", metricCell(reading.Humidity, "%.0f%%"))
	fmt.Fprintf(md, "| Pressure | %s |\n", metricCell(reading.Pressure, "%.1f hPa"))
	fmt.Fprintf(md, "| Wind speed | %s |\n", metricCell(reading.WindSpeed, "%.1f m/s"))
	fmt.Fprintf(md, "| Precipitation | %.1f mm |\n", reading.PrecipitationMm)
	fmt.Fprintf(md, "| Conditions | %s |\n\n", display.TranslateSymbol(reading.SymbolCode))
}

func (b *Builder) writeAnalysis(md *strings.Builder, analysis *models.Analysis) {
	if analysis == nil {
		return
	}

	md.WriteString("## Analysis\n\n")
	fmt.Fprintf(md, "- Status: %s\n", analysis.Status)
	fmt.Fprintf(md, "- Trend: %s\n", analysis.Trend)
	fmt.Fprintf(md, "- Data points: %d\n\n", analysis.DataPoints)

	if len(analysis.ConditionsDetected) > 0 {
		md.WriteString("### Detected Conditions\n\n")
		for _, tag := range analysis.ConditionsDetected {
			fmt.Fprintf(md, "- %s\n", display.TranslateCondition(tag))
		}
		md.WriteString("\n")
	}

	if len(analysis.ForecastHighlights) > 0 {
		md.WriteString("### Forecast Highlights\n\n")
		for _, highlight := range analysis.ForecastHighlights {
			fmt.Fprintf(md, "- %s\n", highlight)
		}
		md.WriteString("\n")
	}

	if analysis.Summary != "" {
		fmt.Fprintf(md, "%s\n\n", analysis.Summary)
	}
}

func (b *Builder) writeHistory(md *strings.Builder, summary *models.SnapshotSummary) {
	if summary == nil || summary.DataPoints == 0 {
		return
	}

	md.WriteString("## Recent History\n\n")
	fmt.Fprintf(md, "%d stored readings", summary.DataPoints)
	if summary.FirstAt != "" && summary.LastAt != "" {
		fmt.Fprintf(md, " between %s and %s", summary.FirstAt, summary.LastAt)
	}
	md.WriteString(".\n\n")

	md.WriteString("| Metric | Min | Max | Avg |\n")
	md.WriteString("|--------|-----|-----|-----|\n")
	writeRangeRow(md, "Temperature (°C)", summary.Temperature)
	writeRangeRow(md, "Pressure (hPa)", summary.Pressure)
	writeRangeRow(md, "Humidity (%)", summary.Humidity)
	md.WriteString("\n")
}

func (b *Builder) writeAlerts(md *strings.Builder, alerts []models.WeatherAlert) {
	if len(alerts) == 0 {
		return
	}

	md.WriteString("## Active Alerts\n\n")
	for _, alert := range alerts {
		fmt.Fprintf(md, "- **[%s] %s** (%s, %s): %s\n",
			alert.Severity, alert.Event, alert.Source,
			alert.Issued.UTC().Format("Jan 02 15:04"), alert.Description)
	}
	md.WriteString("\n")
}

func (b *Builder) writeBriefing(md *strings.Builder, briefing string) {
	if strings.TrimSpace(briefing) == "" {
		return
	}

	md.WriteString("## Briefing\n\n")
	md.WriteString(strings.TrimSpace(briefing))
	md.WriteString("\n")
}

func writeRangeRow(md *strings.Builder, label string, stat *models.RangeStat) {
	if stat == nil {
		return
	}
	fmt.Fprintf(md, "| %s | %.1f | %.1f | %.1f |\n", label, stat.Min, stat.Max, stat.Avg)
}

// metricCell formats an optional metric for a markdown table cell.
func metricCell(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

// locationTitle renders "Name, Country" unless the name already carries it.
func locationTitle(loc models.Location) string {
	if loc.Country != "" && !strings.Contains(loc.Name, loc.Country) {
		return loc.Name + ", " + loc.Country
	}
	return loc.Name
}
