package datatable

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format is an output format for a table.
type Format string

const (
	// FormatTable renders aligned text columns.
	FormatTable Format = "table"
	// FormatJSON encodes the visible rows as a JSON array.
	FormatJSON Format = "json"
	// FormatYAML encodes the visible rows as a YAML sequence.
	FormatYAML Format = "yaml"
)

// Formats lists all valid output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat parses an output format, ignoring casing.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q, must be one of: table, json, yaml", s)
	}
}

// String implements the fmt.Stringer and pflag.Value interfaces.
func (f *Format) String() string {
	return string(*f)
}

// Set implements the pflag.Value interface.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements the pflag.Value interface.
func (f *Format) Type() string {
	return "format"
}

// Record is a row together with its identity, as encoded in JSON and YAML
// output.
type Record[R any] struct {
	ID  string `json:"id"`
	Row R      `json:"row"`
}

// Records returns the visible rows together with their IDs.
func (t Table[R]) Records() []Record[R] {
	rows := t.Visible()
	records := make([]Record[R], len(rows))
	for i, row := range rows {
		records[i] = Record[R]{ID: t.ID(row), Row: row}
	}
	return records
}

// Encode writes the table in the given format.
func (t Table[R]) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTable, "":
		return t.Render(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Records())
	case FormatYAML:
		b, err := yaml.Marshal(t.Records())
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
