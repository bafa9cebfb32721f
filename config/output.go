package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects how CLI commands render results.
type OutputFormat string

const (
	// OutputFormatTable renders aligned text tables.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON renders raw JSON, suitable for piping.
	OutputFormatJSON OutputFormat = "json"
)

// UnmarshalText implements encoding.TextUnmarshaler for OutputFormat.
func (f *OutputFormat) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "table", "json":
		*f = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid OutputFormat: %q (valid options: table, json)", v)
	}
}

// OutputConfig groups CLI output configuration.
type OutputConfig struct {
	// Format is the default rendering, overridable per invocation.
	Format OutputFormat `env:"FORMAT" envDefault:"table"`

	// Query is a default JMESPath projection applied to JSON output.
	Query string `env:"QUERY"`
}
