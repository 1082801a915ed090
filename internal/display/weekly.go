package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"weathercast/internal/models"
)

// hourEntry pairs a forecast reading with its parsed timestamp.
type hourEntry struct {
	at time.Time
	r  models.Reading
}

// Weekly prints a compact seven day view: today gets an hourly strip of up to
// five representative times, later days collapse to max/min, the dominant
// symbol, and total precipitation. Days are keyed by UTC calendar date
// starting at now.
func (r *Renderer) Weekly(forecast []models.Reading, now time.Time) {
	if len(forecast) == 0 {
		fmt.Fprintln(r.out, "   • No detailed forecast data available")
		return
	}

	byDate := groupByDate(forecast)
	today := now.UTC()

	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		entries, ok := byDate[key]
		if !ok {
			fmt.Fprintf(r.out, "   %s (Day %d): No forecast data available\n", key, i+1)
			continue
		}
		name := dayName(i, day)
		if i == 0 {
			r.todayForecast(entries, name, day)
		} else {
			r.futureForecast(entries, name, day)
		}
	}
}

// groupByDate buckets readings by UTC calendar date, dropping entries whose
// timestamp does not parse.
func groupByDate(forecast []models.Reading) map[string][]hourEntry {
	byDate := make(map[string][]hourEntry)
	for _, reading := range forecast {
		if reading.Timestamp == "" {
			continue
		}
		at, err := time.Parse(time.RFC3339, reading.Timestamp)
		if err != nil {
			continue
		}
		at = at.UTC()
		key := at.Format("2006-01-02")
		byDate[key] = append(byDate[key], hourEntry{at: at, r: reading})
	}
	return byDate
}

func dayName(index int, day time.Time) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return day.Format("Mon")
	}
}

// todayForecast prints today's header line plus an hourly strip.
func (r *Renderer) todayForecast(entries []hourEntry, name string, day time.Time) {
	minT, maxT, ok := tempRange(entries)
	if !ok {
		return
	}
	total := totalPrecipitation(entries)

	if total > 0 {
		fmt.Fprintf(r.out, "   %s (%s): %.0f° → %.0f° %s%.1fmm\n",
			name, day.Format("Jan 02"), minT, maxT, precipIcon(total), total)
	} else {
		fmt.Fprintf(r.out, "   %s (%s): %.0f° → %.0f°\n", name, day.Format("Jan 02"), minT, maxT)
	}

	var items []string
	for _, e := range representatives(entries) {
		temp := "N/A"
		if e.r.Temperature != nil {
			temp = fmt.Sprintf("%.0f°", *e.r.Temperature)
		}
		items = append(items, fmt.Sprintf("%sh %s %s", e.at.Format("15"), SymbolEmoji(e.r.SymbolCode), temp))
	}
	if len(items) > 0 {
		fmt.Fprintf(r.out, "      %s\n", strings.Join(items, " | "))
	}
}

// futureForecast prints one summary line for a later day.
func (r *Renderer) futureForecast(entries []hourEntry, name string, day time.Time) {
	minT, maxT, ok := tempRange(entries)
	if !ok {
		return
	}
	total := totalPrecipitation(entries)

	if symbol, ok := dominantSymbol(entries); ok {
		if total > 0 {
			fmt.Fprintf(r.out, "   %s %s: %.0f°/%.0f° %s (%.1fmm)\n",
				name, day.Format("Jan 02"), maxT, minT, SymbolEmoji(symbol), total)
		} else {
			fmt.Fprintf(r.out, "   %s %s: %.0f°/%.0f° %s\n",
				name, day.Format("Jan 02"), maxT, minT, SymbolEmoji(symbol))
		}
		return
	}
	if total > 0 {
		fmt.Fprintf(r.out, "   %s %s: %.0f°/%.0f° %s (%.1fmm)\n",
			name, day.Format("Jan 02"), maxT, minT, precipIcon(total), total)
	} else {
		fmt.Fprintf(r.out, "   %s %s: %.0f°/%.0f°\n", name, day.Format("Jan 02"), maxT, minT)
	}
}

// representatives picks up to five entries spread over the day: the first
// entry found in each of five daytime periods (06-09, 10-12, 13-16, 17-20,
// 21-23), topped up by striding over the remaining entries in time order.
func representatives(entries []hourEntry) []hourEntry {
	firstInHour := make(map[int]int)
	for i, e := range entries {
		h := e.at.Hour()
		if _, ok := firstInHour[h]; !ok {
			firstInHour[h] = i
		}
	}

	periods := [][2]int{{6, 10}, {10, 13}, {13, 17}, {17, 21}, {21, 24}}
	picked := make(map[int]bool)
	var out []hourEntry
	for _, p := range periods {
		for h := p[0]; h < p[1]; h++ {
			if idx, ok := firstInHour[h]; ok {
				picked[idx] = true
				out = append(out, entries[idx])
				break
			}
		}
	}

	if len(out) < 5 && len(entries) > 0 {
		order := make([]int, len(entries))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return entries[order[a]].at.Before(entries[order[b]].at)
		})
		stride := len(order) / (5 - len(out))
		if stride < 1 {
			stride = 1
		}
		for j := 0; j < len(order) && len(out) < 5; j += stride {
			if picked[order[j]] {
				continue
			}
			picked[order[j]] = true
			out = append(out, entries[order[j]])
		}
	}

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// dominantSymbol returns the most frequent non-empty symbol code, earliest
// first on ties.
func dominantSymbol(entries []hourEntry) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		code := e.r.SymbolCode
		if code == "" {
			continue
		}
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}
	best := ""
	for _, code := range order {
		if best == "" || counts[code] > counts[best] {
			best = code
		}
	}
	return best, best != ""
}

func tempRange(entries []hourEntry) (min, max float64, ok bool) {
	for _, e := range entries {
		if e.r.Temperature == nil {
			continue
		}
		v := *e.r.Temperature
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

func totalPrecipitation(entries []hourEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.r.PrecipitationMm
	}
	return total
}

func precipIcon(total float64) string {
	if total >= 1.0 {
		return "🌧️"
	}
	return "🌦️"
}
