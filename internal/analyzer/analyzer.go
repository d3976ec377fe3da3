package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"link-analyzer/internal/linkgraph"
	"link-analyzer/internal/rank"
	"link-analyzer/internal/render"
)

// SeedURL derives the article URL for keyword. Spaces become underscores;
// nothing else is escaped or validated.
func SeedURL(baseURL, keyword string) string {
	return baseURL + strings.ReplaceAll(keyword, " ", "_")
}

type Analyzer struct {
	baseURL   string
	extractor linkgraph.Extractor
	render    render.Options
}

func New(baseURL string, extractor linkgraph.Extractor) *Analyzer {
	return &Analyzer{
		baseURL:   baseURL,
		extractor: extractor,
		render:    render.DefaultOptions(),
	}
}

// BuildGraph builds the depth-one link graph of the keyword's article.
func (a *Analyzer) BuildGraph(ctx context.Context, logger *slog.Logger, keyword string) (string, *linkgraph.Graph) {
	seed := SeedURL(a.baseURL, keyword)
	return seed, linkgraph.Build(ctx, logger, a.extractor, []string{seed})
}

func sessionLogger(logger *slog.Logger, session Session) *slog.Logger {
	return logger.With(
		slog.String("analysis_id", uuid.NewString()),
		slog.String("keyword", session.Keyword),
		slog.String("algorithm", session.Algorithm.String()),
	)
}

// Rank builds the graph for the session and ranks it, without rendering.
func (a *Analyzer) Rank(ctx context.Context, logger *slog.Logger, session Session) (*AnalysisResult, error) {
	return a.rank(ctx, sessionLogger(logger, session), session)
}

func (a *Analyzer) rank(ctx context.Context, logger *slog.Logger, session Session) (*AnalysisResult, error) {
	logger.DebugContext(ctx, "Starting analysis")

	// --- 1. Build Graph ---
	seed, g := a.BuildGraph(ctx, logger, session.Keyword)

	// --- 2. Rank ---
	table, err := rank.Rank(ctx, logger, g, session.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to rank graph: %w", err)
	}

	return &AnalysisResult{
		Session: session,
		SeedURL: seed,
		Summary: GraphSummary{Nodes: g.NodeCount(), Edges: g.EdgeCount()},
		Graph:   g,
		Table:   table,
	}, nil
}

// Analyze runs the full pipeline: build, rank and render.
func (a *Analyzer) Analyze(ctx context.Context, logger *slog.Logger, session Session) (*AnalysisResult, error) {
	logger = sessionLogger(logger, session)

	result, err := a.rank(ctx, logger, session)
	if err != nil {
		return nil, err
	}

	// --- 3. Render ---
	result.Image, err = render.PNG(result.Graph, a.render)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render graph", slog.Any("error", err))
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Group("results",
			slog.String("seed_url", result.SeedURL),
			slog.Int("nodes", result.Summary.Nodes),
			slog.Int("edges", result.Summary.Edges),
			slog.Int("rows", len(result.Table.Rows)),
			slog.Int("image_bytes", len(result.Image)),
		),
	)

	return result, nil
}
