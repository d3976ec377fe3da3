package export

import (
	"io"

	"github.com/rodaine/table"

	"link-analyzer/internal/rank"
)

// TableExporter prints an aligned plain-text table.
type TableExporter struct{}

func NewTableExporter() Exporter {
	return &TableExporter{}
}

func (e *TableExporter) Export(w io.Writer, t *rank.Table) error {
	var tbl table.Table
	if t.Algorithm == rank.HITS {
		tbl = table.New("Title", "Link", "Authority", "Hub").WithWriter(w)
		for _, r := range t.Rows {
			tbl.AddRow(r.Title, r.Link, r.Authority, r.Hub)
		}
	} else {
		tbl = table.New("Title", "Link", "PageRank").WithWriter(w)
		for _, r := range t.Rows {
			tbl.AddRow(r.Title, r.Link, r.PageRank)
		}
	}
	tbl.Print()
	return nil
}
