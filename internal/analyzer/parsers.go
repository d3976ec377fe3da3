package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/net/html"
)

const absoluteLinkPrefix = "http"

func parseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// extractLinks keeps href values verbatim; only those starting with "http"
// survive, so relative, mailto:, javascript: and fragment links are dropped.
func extractLinks(ctx context.Context, logger *slog.Logger, doc *goquery.Document) mapset.Set[string] {
	logger.DebugContext(ctx, "Starting to extract links")

	links := mapset.NewSet[string]()
	skipped := 0

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")

		if !strings.HasPrefix(href, absoluteLinkPrefix) {
			logger.DebugContext(ctx, "Skipping non-absolute link", slog.String("href", href))
			skipped++
			return
		}

		links.Add(href)
	})

	logger.InfoContext(ctx, "Finished extracting links",
		slog.Int("links_found", links.Cardinality()),
		slog.Int("links_skipped", skipped),
	)

	return links
}
