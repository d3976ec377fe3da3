package analyzer

import (
	"link-analyzer/internal/linkgraph"
	"link-analyzer/internal/rank"
)

// Session is the user input driving one analysis run.
type Session struct {
	Keyword   string
	Algorithm rank.Algorithm
}

type GraphSummary struct {
	Nodes int
	Edges int
}

type AnalysisResult struct {
	Session Session
	SeedURL string
	Summary GraphSummary
	Graph   *linkgraph.Graph
	Table   *rank.Table
	// Image holds the rendered PNG, nil when rendering was not requested.
	Image []byte
}
