package crawl

import (
	"fmt"

	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters"
	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters/dot"
	"github.com/LegacyCodeHQ/crawlgraph/cmd/crawl/formatters/mermaid"
)

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (formatters.Formatter, error) {
	f, ok := formatters.ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, formatters.SupportedFormats())
	}

	switch f {
	case formatters.OutputFormatJSON:
		return &formatters.JSONFormatter{}, nil
	case formatters.OutputFormatDOT:
		return &dot.Formatter{}, nil
	case formatters.OutputFormatMermaid:
		return &mermaid.Formatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, formatters.SupportedFormats())
	}
}
