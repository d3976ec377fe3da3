package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"link-analyzer/internal/rank"
)

type PageRankRow struct {
	Title    string  `csv:"Title"`
	Link     string  `csv:"Link"`
	PageRank float64 `csv:"PageRank"`
}

type HITSRow struct {
	Title     string  `csv:"Title"`
	Link      string  `csv:"Link"`
	Authority float64 `csv:"Authority"`
	Hub       float64 `csv:"Hub"`
}

type CSVExporter struct{}

func NewCSVExporter() Exporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(w io.Writer, t *rank.Table) error {
	var err error
	switch t.Algorithm {
	case rank.HITS:
		rows := make([]HITSRow, 0, len(t.Rows))
		for _, r := range t.Rows {
			rows = append(rows, HITSRow{Title: r.Title, Link: r.Link, Authority: r.Authority, Hub: r.Hub})
		}
		err = gocsv.Marshal(&rows, w)
	default:
		rows := make([]PageRankRow, 0, len(t.Rows))
		for _, r := range t.Rows {
			rows = append(rows, PageRankRow{Title: r.Title, Link: r.Link, PageRank: r.PageRank})
		}
		err = gocsv.Marshal(&rows, w)
	}
	if err != nil {
		return fmt.Errorf("error exporting table to CSV: %w", err)
	}
	return nil
}
