package display

import "fmt"

// Error kinds the CLI maps failures onto before asking for help text.
const (
	ErrKindNetwork        = "network_error"
	ErrKindTimeout        = "api_timeout"
	ErrKindAPI            = "api_error"
	ErrKindParsing        = "data_parsing_error"
	ErrKindMissingField   = "missing_data_field"
	ErrKindIncompleteData = "incomplete_data_structure"
	ErrKindConfig         = "config_error"
)

type errorHelp struct {
	title   string
	message string
	tips    []string
}

var errorHelpTable = map[string]errorHelp{
	ErrKindNetwork: {
		title:   "🌐 Network Connection Problem",
		message: "Cannot connect to the weather service.",
		tips: []string{
			"Check your internet connection",
			"Try again in a few moments",
			"Make sure you're not behind a restrictive firewall",
		},
	},
	ErrKindTimeout: {
		title:   "⏰ Request Timeout",
		message: "The weather service is taking too long to respond.",
		tips: []string{
			"The service might be busy, try again",
			"Check if your internet connection is slow",
			"Wait a minute and retry",
		},
	},
	ErrKindAPI: {
		title:   "🚫 Weather Service Error",
		message: "The weather service returned an error.",
		tips: []string{
			"The service might be temporarily down",
			"Try a different location",
			"Check if coordinates are valid (lat: -90 to 90, lon: -180 to 180)",
		},
	},
	ErrKindParsing: {
		title:   "📊 Data Processing Error",
		message: "Could not understand the weather data format.",
		tips: []string{
			"This might be a temporary service issue",
			"Try again in a few minutes",
			"If it persists, the weather service may have changed their format",
		},
	},
	ErrKindMissingField: {
		title:   "📋 Missing Weather Data Field",
		message: "The weather service response is missing expected information.",
		tips: []string{
			"The weather service may have changed their data format",
			"Try a different location",
			"This location might not have complete weather data available",
		},
	},
	ErrKindIncompleteData: {
		title:   "📊 Incomplete Weather Data",
		message: "The weather data structure is not complete.",
		tips: []string{
			"The weather service might be having issues",
			"Try again in a few minutes",
			"Some locations may have limited data availability",
		},
	},
	ErrKindConfig: {
		title:   "⚙️ Configuration Error",
		message: "Problem with configuration file.",
		tips: []string{
			"Check that config/locations.json exists",
			"Verify the JSON format is correct",
			"Make sure all required fields are present",
		},
	},
}

// ErrorHelp prints the troubleshooting block for a failure kind. Unknown
// kinds get a generic block rather than nothing.
func (r *Renderer) ErrorHelp(kind, details string) {
	help, ok := errorHelpTable[kind]
	if !ok {
		help = errorHelp{
			title:   "❓ Unknown Error",
			message: "An unexpected error occurred.",
			tips: []string{
				"Try running the program again",
				"Check if all files are in place",
			},
		}
	}

	fmt.Fprintf(r.out, "\n%s\n%s\n", help.title, help.message)
	if details != "" {
		fmt.Fprintf(r.out, "Details: %s\n", details)
	}
	fmt.Fprintln(r.out, "\n💡 Troubleshooting Tips:")
	for _, tip := range help.tips {
		fmt.Fprintf(r.out, "   • %s\n", tip)
	}
	fmt.Fprintln(r.out)
}
