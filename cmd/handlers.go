package main

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"

	"link-analyzer/internal/analyzer"
	"link-analyzer/internal/config"
	"link-analyzer/internal/export"
	"link-analyzer/internal/rank"
	"link-analyzer/ui"
)

type application struct {
	logger   *slog.Logger
	cfg      config.Config
	analyzer *analyzer.Analyzer
	tmpl     *template.Template
}

func newApplication(logger *slog.Logger, cfg config.Config, a *analyzer.Analyzer) (*application, error) {
	tmpl, err := template.ParseFS(ui.Files, "html/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &application{logger: logger, cfg: cfg, analyzer: a, tmpl: tmpl}, nil
}

func (app *application) routes() http.Handler {
	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("/export.csv", app.handleExportCSV)
	mux.HandleFunc("/graph.dot", app.handleGraphDOT)
	mux.HandleFunc("/", app.handleRequest)
	return mux
}

type TemplateData struct {
	Keyword    string
	Algorithm  rank.Algorithm
	Algorithms []rank.Algorithm
	Error      string
	Results    *analyzer.AnalysisResult
	ImageURL   template.URL
}

func clientError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := string(debug.Stack())
	app.logger.Error("Internal Server Error", "error", err, "trace", trace)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// keywordFromForm returns the submitted keyword, or the configured one when
// the field is absent. An empty submitted value is kept.
func (app *application) keywordFromForm(r *http.Request) string {
	if _, ok := r.Form["keyword"]; ok {
		return r.FormValue("keyword")
	}
	return app.cfg.DefaultKeyword
}

// sessionFromForm reads keyword and algorithm, falling back to the
// configured keyword and HITS when absent.
func (app *application) sessionFromForm(r *http.Request) (analyzer.Session, error) {
	session := analyzer.Session{Keyword: app.keywordFromForm(r), Algorithm: rank.HITS}

	if v := r.FormValue("algorithm"); v != "" {
		alg, err := rank.ParseAlgorithm(v)
		if err != nil {
			return session, err
		}
		session.Algorithm = alg
	}
	return session, nil
}

func (app *application) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		clientError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		clientError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	data := TemplateData{
		Keyword:    app.cfg.DefaultKeyword,
		Algorithm:  rank.HITS,
		Algorithms: rank.Algorithms,
	}

	if r.Method == http.MethodPost {
		session, err := app.sessionFromForm(r)
		data.Keyword, data.Algorithm = session.Keyword, session.Algorithm
		if err != nil {
			app.logger.Warn("Rejected analysis request", "error", err)
			data.Error = "Please choose one of the listed algorithms."
		} else {
			results, err := app.analyzer.Analyze(r.Context(), app.logger, session)
			if err != nil {
				app.logger.Warn("Analysis failed for keyword", "keyword", session.Keyword, "error", err)
				data.Error = fmt.Sprintf("Failed to analyze %q: %v", session.Keyword, err)
			} else {
				app.logger.Info("Analysis successful", "keyword", session.Keyword, "seed_url", results.SeedURL)
				data.Results = results
				data.ImageURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(results.Image))
			}
		}
	}

	err := app.tmpl.ExecuteTemplate(w, "index.html", data)

	if err != nil {
		app.serverError(w, err)
	}
}

func (app *application) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		clientError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		clientError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	session, err := app.sessionFromForm(r)
	if err != nil {
		clientError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := app.analyzer.Rank(r.Context(), app.logger, session)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ranking.csv"`)
	if err := export.NewCSVExporter().Export(w, results.Table); err != nil {
		app.logger.Error("Failed to write CSV export", "error", err)
	}
}

func (app *application) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		clientError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		clientError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	_, g := app.analyzer.BuildGraph(r.Context(), app.logger, app.keywordFromForm(r))

	b, err := g.MarshalDOT("links")
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="graph.dot"`)
	if _, err := w.Write(b); err != nil {
		app.logger.Error("Failed to write DOT export", "error", err)
	}
}
