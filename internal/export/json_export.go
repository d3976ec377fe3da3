package export

import (
	"encoding/json"
	"fmt"
	"io"

	"link-analyzer/internal/rank"
)

type Record struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	PageRank  *float64 `json:"pagerank,omitempty"`
	Authority *float64 `json:"authority,omitempty"`
	Hub       *float64 `json:"hub,omitempty"`
}

type Document struct {
	Algorithm string   `json:"algorithm"`
	Rows      []Record `json:"rows"`
}

type JSONExporter struct{}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(w io.Writer, t *rank.Table) error {
	doc := Document{Algorithm: t.Algorithm.String(), Rows: make([]Record, 0, len(t.Rows))}
	for _, r := range t.Rows {
		rec := Record{Title: r.Title, Link: r.Link}
		if t.Algorithm == rank.HITS {
			rec.Authority, rec.Hub = &r.Authority, &r.Hub
		} else {
			rec.PageRank = &r.PageRank
		}
		doc.Rows = append(doc.Rows, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error exporting table to JSON: %w", err)
	}
	return nil
}
