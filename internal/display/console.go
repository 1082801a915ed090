package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"weathercast/internal/models"
)

// Renderer writes human-readable output for one command invocation.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out, or stdout when out is nil.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// Current prints the current conditions block for a location.
func (r *Renderer) Current(loc models.Location, reading models.Reading) {
	fmt.Fprintf(r.out, "🌤️  Current Weather for %s\n", LocationLabel(loc))
	fmt.Fprintf(r.out, "   Temperature: %s\n", metric(reading.Temperature, "%.1f°C"))
	fmt.Fprintf(r.out, "   Pressure: %s\n", metric(reading.Pressure, "%.1f hPa"))
	fmt.Fprintf(r.out, "   Humidity: %s\n", metric(reading.Humidity, "%.0f%%"))
	fmt.Fprintf(r.out, "   Wind Speed: %s\n", metric(reading.WindSpeed, "%.1f m/s"))
	if reading.PrecipitationMm > 0 {
		fmt.Fprintf(r.out, "   Precipitation: %.1f mm\n", reading.PrecipitationMm)
	}
	fmt.Fprintf(r.out, "   Conditions: %s\n", TranslateSymbol(reading.SymbolCode))
}

// Analysis prints the analyzer output: status and counters, detected condition
// tags through the translation table, and forecast highlights verbatim.
func (r *Renderer) Analysis(a *models.Analysis) {
	if a == nil {
		return
	}
	fmt.Fprintln(r.out, "\n📊 Pattern Analysis:")
	fmt.Fprintf(r.out, "   Status: %s\n", a.Status)
	fmt.Fprintf(r.out, "   Trend: %s\n", a.Trend)
	fmt.Fprintf(r.out, "   Data points: %d\n", a.DataPoints)
	if len(a.ConditionsDetected) > 0 {
		fmt.Fprintln(r.out, "   Conditions:")
		for _, tag := range a.ConditionsDetected {
			fmt.Fprintf(r.out, "      %s\n", TranslateCondition(tag))
		}
	}
	if len(a.ForecastHighlights) > 0 {
		fmt.Fprintln(r.out, "   Forecast highlights:")
		for _, line := range a.ForecastHighlights {
			fmt.Fprintf(r.out, "      %s\n", line)
		}
	}
	if a.Summary != "" {
		fmt.Fprintf(r.out, "   Summary: %s\n", a.Summary)
	}
}

// Alerts prints active weather alerts. Nothing is printed when the list is
// empty.
func (r *Renderer) Alerts(alerts []models.WeatherAlert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(r.out, "\n⚠️  Weather Alerts:")
	for _, alert := range alerts {
		fmt.Fprintf(r.out, "   [%s] %s (%s, %s)\n",
			alert.Severity, alert.Event, alert.Source, alert.Issued.Format("Jan 02 15:04"))
		if desc := truncate(alert.Description, 160); desc != "" {
			fmt.Fprintf(r.out, "      %s\n", desc)
		}
	}
}

// Snapshots prints the aggregate view of stored snapshots for a location.
func (r *Renderer) Snapshots(summary models.SnapshotSummary) {
	fmt.Fprintf(r.out, "📒 History for %s\n", summary.Location)
	if summary.DataPoints == 0 {
		fmt.Fprintln(r.out, "   • No stored readings for this location")
		return
	}
	fmt.Fprintf(r.out, "   Readings: %d (%s → %s)\n", summary.DataPoints, summary.FirstAt, summary.LastAt)
	r.rangeLine("Temperature", summary.Temperature, "°C")
	r.rangeLine("Humidity", summary.Humidity, "%")
	r.rangeLine("Pressure", summary.Pressure, " hPa")
}

func (r *Renderer) rangeLine(name string, stat *models.RangeStat, unit string) {
	if stat == nil {
		return
	}
	fmt.Fprintf(r.out, "   %s: %.1f .. %.1f%s (avg %.1f)\n", name, stat.Min, stat.Max, unit, stat.Avg)
}

// baselineOrder fixes the metric order for baseline output.
var baselineOrder = []string{"temperature", "pressure", "humidity", "wind_speed", "precipitation_mm"}

// Baseline prints a stored per-location baseline.
func (r *Renderer) Baseline(b models.Baseline) {
	fmt.Fprintf(r.out, "📐 Baseline for %s (last %d days, %d readings)\n", b.Location, b.Days, b.ReadingCount)
	for _, name := range baselineOrder {
		stats, ok := b.Metrics[name]
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "   %s: mean %.2f median %.2f stddev %.2f range %.1f .. %.1f\n",
			name, stats.Mean, stats.Median, stats.StdDev, stats.Min, stats.Max)
	}
}

// Report prints a full history engine report: trends, anomalies, recognized
// patterns, and per-metric statistics.
func (r *Renderer) Report(report models.HistoryReport) {
	fmt.Fprintf(r.out, "🧭 Patterns for %s (window %s)\n", report.Location, report.Window)
	if len(report.Trends) == 0 && len(report.Anomalies) == 0 && len(report.Patterns) == 0 {
		fmt.Fprintln(r.out, "   • Not enough stored readings for pattern analysis")
		return
	}
	if len(report.Trends) > 0 {
		fmt.Fprintln(r.out, "   Trends:")
		for _, t := range report.Trends {
			fmt.Fprintf(r.out, "      %s: %s %+.2f/h over %.0fh (confidence %.2f)\n",
				t.Metric, t.Direction, t.Slope, t.Hours, t.Confidence)
		}
	}
	if len(report.Anomalies) > 0 {
		fmt.Fprintln(r.out, "   Anomalies:")
		for _, a := range report.Anomalies {
			fmt.Fprintf(r.out, "      %s %.1f at %s (%s, %s)\n",
				a.Metric, a.Value, a.RecordedAt.Format("Jan 02 15:04"), a.Kind, a.Severity)
		}
	}
	if len(report.Patterns) > 0 {
		fmt.Fprintln(r.out, "   Patterns:")
		for _, p := range report.Patterns {
			fmt.Fprintf(r.out, "      %s: %s (confidence %.2f)\n", p.Name, p.Description, p.Confidence)
		}
	}
	if len(report.Stats) > 0 {
		fmt.Fprintln(r.out, "   Statistics:")
		for _, s := range report.Stats {
			fmt.Fprintf(r.out, "      %s: mean %.2f stddev %.2f range %.1f .. %.1f (n=%d)\n",
				s.Metric, s.Mean, s.StdDev, s.Min, s.Max, s.Count)
		}
	}
}

// Locations prints the configured location list.
func (r *Renderer) Locations(locations []models.Location) {
	fmt.Fprintf(r.out, "📍 Configured locations (%d):\n", len(locations))
	for _, loc := range locations {
		fmt.Fprintf(r.out, "   %s (%.4f, %.4f)\n", LocationLabel(loc), loc.Lat, loc.Lon)
	}
}

// LocationLabel renders "Name, Country", dropping the country when the name
// already carries it.
func LocationLabel(loc models.Location) string {
	if loc.Country != "" && !strings.Contains(loc.Name, loc.Country) {
		return loc.Name + ", " + loc.Country
	}
	return loc.Name
}

// metric formats an optional reading field, with N/A for absent values.
func metric(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
