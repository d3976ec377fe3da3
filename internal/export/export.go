// Package export writes ranked tables in download and terminal formats.
package export

import (
	"fmt"
	"io"

	"link-analyzer/internal/rank"
)

type Exporter interface {
	// Export writes the table to w
	Export(w io.Writer, t *rank.Table) error
}

// New returns the exporter for format: "csv", "json" or "table".
func New(format string) (Exporter, error) {
	switch format {
	case "csv":
		return NewCSVExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "table":
		return NewTableExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
