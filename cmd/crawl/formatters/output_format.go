package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var supportedFormats = []OutputFormat{OutputFormatJSON, OutputFormatDOT, OutputFormatMermaid}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a user-supplied name into an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	for _, f := range supportedFormats {
		if strings.EqualFold(strings.TrimSpace(name), f.String()) {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the valid format names joined for help and error text.
func SupportedFormats() string {
	names := make([]string, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
