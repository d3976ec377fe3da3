package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	mapset "github.com/deckarep/golang-set/v2"
)

// LinkExtractor fetches a page and collects its absolute outbound links.
type LinkExtractor struct {
	Client *http.Client
}

func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{Client: &http.Client{}}
}

// ExtractLinks never fails: a page that cannot be fetched or parsed
// yields an empty set and a warning.
func (e *LinkExtractor) ExtractLinks(ctx context.Context, logger *slog.Logger, pageURL string) mapset.Set[string] {
	logger = logger.With(slog.String("analyzing_page_link", pageURL))

	data, err := loadWebPage(ctx, logger, e.Client, pageURL)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load web page, continuing without links", slog.Any("error", err))
		return mapset.NewSet[string]()
	}
	defer data.Body.Close()

	doc, err := parseDocument(data.Body)
	if err != nil {
		logger.WarnContext(ctx, "Failed to parse HTML document, continuing without links", slog.Any("error", err))
		return mapset.NewSet[string]()
	}

	return extractLinks(ctx, logger, doc)
}

func loadWebPage(ctx context.Context, logger *slog.Logger, client *http.Client, pageURL string) (*http.Response, error) {
	logger.DebugContext(ctx, "Starting to load web page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create HTTP request: %w", err)
	}

	data, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch page: %w", err)
	}

	// The status code is reported but not acted upon; any returned body is parsed.
	logger.InfoContext(ctx, "Fetched page",
		slog.Int("status_code", data.StatusCode),
		slog.String("content_type", data.Header.Get("Content-Type")),
	)

	return data, nil
}
