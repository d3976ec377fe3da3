package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-analyzer/internal/analyzer"
	"link-analyzer/internal/config"
)

func newTestApplication(t *testing.T) (*application, *httptest.Server) {
	t.Helper()

	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Graph_theory" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<a href="https://a.example">a</a><a href="https://b.example">b</a>`)
	}))
	t.Cleanup(wiki.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Defaults()
	cfg.WikiBaseURL = wiki.URL + "/wiki/"

	app, err := newApplication(logger, cfg, analyzer.New(cfg.WikiBaseURL, analyzer.NewLinkExtractor()))
	require.NoError(t, err)

	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return app, srv
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHandleRequest_GetRendersForm(t *testing.T) {
	app, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="keyword"`)
	assert.Contains(t, body, app.cfg.DefaultKeyword)
	assert.Contains(t, body, `<option value="HITS" selected>`)
	assert.Contains(t, body, `<option value="PageRank">`)
	assert.NotContains(t, body, "<table>")
}

func TestHandleRequest_PostAnalyzes(t *testing.T) {
	_, srv := newTestApplication(t)

	for _, alg := range []string{"HITS", "PageRank"} {
		t.Run(alg, func(t *testing.T) {
			resp, err := http.PostForm(srv.URL+"/", url.Values{"keyword": {"Graph theory"}, "algorithm": {alg}})
			require.NoError(t, err)
			body := readBody(t, resp)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "<table>")
			assert.Contains(t, body, "https://a.example")
			assert.Contains(t, body, "3 nodes, 2 edges")
			assert.Contains(t, body, `src="data:image/png;base64,`)
			assert.Contains(t, body, fmt.Sprintf(`<option value="%s" selected>`, alg))
		})
	}
}

func TestHandleRequest_PostUnknownAlgorithm(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.PostForm(srv.URL+"/", url.Values{"keyword": {"Graph theory"}, "algorithm": {"Katz"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `class="error"`)
	assert.NotContains(t, body, "<table>")
}

func TestHandleRequest_MethodNotAllowed(t *testing.T) {
	_, srv := newTestApplication(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleRequest_NotFound(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleExportCSV(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/export.csv?keyword=Graph+theory&algorithm=PageRank")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Title,Link,PageRank", lines[0])
	assert.True(t, strings.HasSuffix(lines[3][:strings.LastIndex(lines[3], ",")], "/wiki/Graph_theory"))
}

func TestHandleExportCSV_BadAlgorithm(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/export.csv?keyword=Graph+theory&algorithm=Katz")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGraphDOT(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/graph.dot?keyword=Graph+theory")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "digraph links")
	assert.Contains(t, body, "https://b.example")
}

func TestHandleGraphDOT_IgnoresAlgorithm(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/graph.dot?keyword=Graph+theory&algorithm=Katz")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "https://a.example")
}

func TestHandleGraphDOT_DefaultKeyword(t *testing.T) {
	app, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/graph.dot")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, strings.ReplaceAll(app.cfg.DefaultKeyword, " ", "_"))
	assert.NotContains(t, body, "->", "the default article is not served, so it has no links")
}

func TestStaticFiles(t *testing.T) {
	_, srv := newTestApplication(t)

	resp, err := http.Get(srv.URL + "/static/main.css")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "border-collapse")
}
