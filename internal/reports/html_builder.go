package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"weathercast/internal/charts"
	"weathercast/internal/config"
	"weathercast/internal/display"
	"weathercast/internal/models"
)

// HTMLBuilder converts the markdown report into a complete HTML page.
type HTMLBuilder struct {
	goldmark goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // Allow raw HTML in markdown
		),
	)

	return &HTMLBuilder{goldmark: md}
}

// ConvertMarkdownToHTML converts markdown content to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildCompleteHTML renders the full report page: header with summary cards,
// the converted markdown content, and the interactive chart section.
func (h *HTMLBuilder) BuildCompleteHTML(data ReportData, markdownContent string, snippets []charts.ChartSnippet) (string, error) {
	content, err := h.ConvertMarkdownToHTML(markdownContent)
	if err != nil {
		return "", err
	}

	location := template.HTMLEscapeString(locationTitle(data.Location))
	timestamp := data.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")

	page := fmt.Sprintf(pageShell,
		location,
		location,
		timestamp,
		h.buildSummaryCards(data.Current),
		content,
		h.buildChartsHTML(snippets),
		config.GetVersion(),
	)

	return page, nil
}

// buildSummaryCards renders the metric cards shown under the page header.
func (h *HTMLBuilder) buildSummaryCards(reading models.Reading) string {
	var cards strings.Builder

	writeCard := func(title, value, caption string) {
		fmt.Fprintf(&cards, `        <div class="card">
            <h3>%s</h3>
            <div class="metric">%s</div>
            <div>%s</div>
        </div>
`, title, value, caption)
	}

	writeCard("Temperature", cardValue(reading.Temperature, "%.1f°C"), "Current reading")
	writeCard("Humidity", cardValue(reading.Humidity, "%.0f%%"), "Relative humidity")
	writeCard("Pressure", cardValue(reading.Pressure, "%.1f hPa"), "Air pressure at sea level")
	writeCard("Conditions", display.SymbolEmoji(reading.SymbolCode), display.TranslateSymbol(reading.SymbolCode))

	return cards.String()
}

// buildChartsHTML renders the interactive chart section. Each snippet is a
// self-contained echarts document and is embedded as-is.
func (h *HTMLBuilder) buildChartsHTML(snippets []charts.ChartSnippet) string {
	var out strings.Builder

	out.WriteString("    <div class=\"charts-section\">\n")
	out.WriteString("        <h2>📊 Forecast Charts</h2>\n")

	if len(snippets) == 0 {
		out.WriteString("        <p>No charts available</p>\n")
	}
	for _, snippet := range snippets {
		fmt.Fprintf(&out, "        <div class=\"chart-container\" id=\"%s\">\n", snippet.ID)
		fmt.Fprintf(&out, "            <h3>%s</h3>\n", snippet.Title)
		out.WriteString("            " + snippet.HTML + "\n")
		out.WriteString("        </div>\n")
	}

	out.WriteString("    </div>")
	return out.String()
}

// cardValue formats an optional metric for a summary card.
func cardValue(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Weather Report - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .header {
            background: linear-gradient(135deg, #2980b9 0%%, #6dd5fa 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 {
            margin: 0;
            font-size: 2.2em;
        }
        .timestamp {
            opacity: 0.9;
            margin-top: 10px;
        }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            border-left: 4px solid #2980b9;
        }
        .card h3 {
            margin-top: 0;
            color: #2980b9;
        }
        .metric {
            font-size: 1.5em;
            font-weight: bold;
            margin: 10px 0;
        }
        .content {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .charts-section {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .chart-container {
            margin-bottom: 40px;
        }
        .footer {
            text-align: center;
            color: #666;
            font-size: 0.9em;
            margin-top: 40px;
        }
        h2 {
            color: #2980b9;
            border-bottom: 2px solid #2980b9;
            padding-bottom: 10px;
        }
        h3 {
            color: #444;
        }
        table {
            border-collapse: collapse;
            width: 100%%;
            margin: 20px 0;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 10px;
            text-align: left;
        }
        th {
            background-color: #f2f6fa;
        }
        code {
            background-color: #f4f4f4;
            padding: 2px 6px;
            border-radius: 3px;
        }
        pre {
            background-color: #f4f4f4;
            padding: 15px;
            border-radius: 5px;
            overflow-x: auto;
        }
        blockquote {
            border-left: 4px solid #2980b9;
            margin: 20px 0;
            padding-left: 20px;
            color: #555;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>🌤️ Weather Report: %s</h1>
        <div class="timestamp">Generated: %s</div>
    </div>

    <div class="summary-cards">
%s    </div>

    <div class="content">
        %s
    </div>

%s

    <div class="footer">
        <p>weathercast %s | Weather data from the Norwegian Meteorological Institute (api.met.no)</p>
        <p>Geocoding by Nominatim / OpenStreetMap</p>
    </div>
</body>
</html>
`
