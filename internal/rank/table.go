package rank

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"link-analyzer/internal/linkgraph"
)

// Row is one ranked page. Only the scores of the table's algorithm are set.
type Row struct {
	Title     string
	Link      string
	PageRank  float64
	Hub       float64
	Authority float64
}

// Score returns the score rows are ordered by under alg.
func (r Row) Score(alg Algorithm) float64 {
	if alg == HITS {
		return r.Authority
	}
	return r.PageRank
}

type Table struct {
	Algorithm Algorithm
	Rows      []Row
}

// Rank scores every page of g with alg and returns the rows sorted by
// descending score.
func Rank(ctx context.Context, logger *slog.Logger, g *linkgraph.Graph, alg Algorithm) (*Table, error) {
	logger = logger.With(slog.String("algorithm", alg.String()))
	logger.DebugContext(ctx, "Starting to rank pages", slog.Int("nodes", g.NodeCount()))

	pages := g.Pages()
	rows := make([]Row, 0, len(pages))

	switch alg {
	case PageRank:
		scores := PageRankScores(g.Directed())
		for _, p := range pages {
			rows = append(rows, Row{Title: p.URL, Link: p.URL, PageRank: scores[p.ID()]})
		}
	case HITS:
		scores, err := HITSScores(g.Directed(), MaxHITSIterations, Tolerance)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to rank pages", slog.Any("error", err))
			return nil, err
		}
		for _, p := range pages {
			s := scores[p.ID()]
			rows = append(rows, Row{Title: p.URL, Link: p.URL, Hub: s.Hub, Authority: s.Authority})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}

	SortRows(alg, rows)

	logger.InfoContext(ctx, "Ranked pages", slog.Int("rows", len(rows)))
	return &Table{Algorithm: alg, Rows: rows}, nil
}

// SortRows orders rows by descending score, keeping the relative order of ties.
func SortRows(alg Algorithm, rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score(alg) > rows[j].Score(alg)
	})
}
