package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logRecords decodes the JSON lines written by a slog.JSONHandler.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	return records
}

func warnings(records []map[string]any) []map[string]any {
	var out []map[string]any
	for _, rec := range records {
		if rec[slog.LevelKey] == slog.LevelWarn.String() {
			out = append(out, rec)
		}
	}
	return out
}

func TestLoadWebPage(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Hello, client")
		}))
		defer server.Close()

		resp, err := loadWebPage(context.Background(), logger, server.Client(), server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Hello, client")
	})

	t.Run("Non-success status is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		resp, err := loadWebPage(context.Background(), logger, server.Client(), server.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Malformed URL", func(t *testing.T) {
		_, err := loadWebPage(context.Background(), logger, http.DefaultClient, "http://a b.com/\x7f")
		assert.Error(t, err)
	})
}

func TestLinkExtractor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
			<a href="https://a.example">a</a>
			<a href="https://b.example">b</a>
			<a href="/local">local</a>
		</body></html>`)
	}))
	defer server.Close()

	links := NewLinkExtractor().ExtractLinks(context.Background(), newTestLogger(), server.URL)

	assert.Equal(t, 2, links.Cardinality())
	assert.True(t, links.Contains("https://a.example", "https://b.example"), "unexpected links: %v", links)
}

func TestLinkExtractor_ErrorPageBodyIsParsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<a href="https://en.wikipedia.org/wiki/Main_Page">Main page</a>`)
	}))
	defer server.Close()

	links := NewLinkExtractor().ExtractLinks(context.Background(), newTestLogger(), server.URL)

	assert.Equal(t, 1, links.Cardinality())
	assert.True(t, links.Contains("https://en.wikipedia.org/wiki/Main_Page"))
}

func TestLinkExtractor_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("request", "r-1"))

	links := NewLinkExtractor().ExtractLinks(context.Background(), logger, server.URL)

	require.NotNil(t, links)
	assert.Equal(t, 0, links.Cardinality())

	warns := warnings(logRecords(t, &buf))
	require.Len(t, warns, 1)
	assert.Equal(t, "Failed to load web page, continuing without links", warns[0][slog.MessageKey])
	assert.Equal(t, server.URL, warns[0]["analyzing_page_link"])
	assert.Equal(t, "r-1", warns[0]["request"], "the caller's logger attributes must be kept")
	assert.NotEmpty(t, warns[0]["error"])
}

func TestLinkExtractor_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "ftp://example.com/file", "http://a b.com/\x7f"} {
		t.Run(u, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			links := NewLinkExtractor().ExtractLinks(context.Background(), logger, u)

			require.NotNil(t, links)
			assert.Equal(t, 0, links.Cardinality())

			warns := warnings(logRecords(t, &buf))
			require.Len(t, warns, 1)
			assert.Equal(t, u, warns[0]["analyzing_page_link"])
		})
	}
}

func TestLinkExtractor_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `<a href="https://late.example">late</a>`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	links := NewLinkExtractor().ExtractLinks(ctx, newTestLogger(), server.URL)

	assert.Equal(t, 0, links.Cardinality())
}
