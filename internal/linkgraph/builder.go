package linkgraph

import (
	"context"
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Extractor returns the outbound links of a page. Implementations report
// failures as an empty set.
type Extractor interface {
	ExtractLinks(ctx context.Context, logger *slog.Logger, pageURL string) mapset.Set[string]
}

// Build extracts links from every seed and adds an edge seed→link for each.
// Discovered pages are not crawled themselves.
func Build(ctx context.Context, logger *slog.Logger, extractor Extractor, seeds []string) *Graph {
	g := New()

	for _, seed := range seeds {
		seedLogger := logger.With(slog.String("seed_url", seed))
		g.AddPage(seed)

		links := extractor.ExtractLinks(ctx, seedLogger, seed).ToSlice()
		slices.Sort(links)

		added := 0
		for _, link := range links {
			if g.AddLink(seed, link) {
				added++
			}
		}

		seedLogger.DebugContext(ctx, "Added seed links to graph",
			slog.Int("links_discovered", len(links)),
			slog.Int("edges_added", added),
		)
	}

	logger.InfoContext(ctx, "Built link graph",
		slog.Int("seeds", len(seeds)),
		slog.Int("nodes", g.NodeCount()),
		slog.Int("edges", g.EdgeCount()),
	)

	return g
}
