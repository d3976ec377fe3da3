package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/briandowns/spinner"
	charmlog "github.com/charmbracelet/log"

	"link-analyzer/internal/analyzer"
	"link-analyzer/internal/config"
	"link-analyzer/internal/export"
	"link-analyzer/internal/rank"
)

type CLIFlags struct {
	Keyword    string `arg:"" optional:"" help:"Article name; defaults to the configured keyword."`
	Algorithm  string `short:"a" default:"HITS" enum:"HITS,PageRank" help:"Ranking algorithm (HITS or PageRank)."`
	Format     string `short:"f" default:"table" enum:"table,csv,json" help:"Output format (table, csv or json)."`
	Image      string `short:"o" type:"path" help:"Write the rendered link graph PNG to this file."`
	ConfigFile string `name:"config" short:"c" type:"path" help:"YAML configuration file."`
	BaseURL    string `name:"base-url" help:"Article URL prefix, overrides the configuration file."`
	Verbose    bool   `short:"v" help:"Enable debug logging."`
}

func main() {
	var flags CLIFlags
	kong.Parse(&flags,
		kong.Name("linkrank"),
		kong.Description("Rank the outbound links of a Wikipedia article with PageRank or HITS."),
	)

	if err := run(context.Background(), flags, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.Config, verbose bool) *slog.Logger {
	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.Level(level),
	})
	return slog.New(handler)
}

func run(ctx context.Context, flags CLIFlags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	if flags.BaseURL != "" {
		cfg.WikiBaseURL = flags.BaseURL
	}

	alg, err := rank.ParseAlgorithm(flags.Algorithm)
	if err != nil {
		return err
	}
	exporter, err := export.New(flags.Format)
	if err != nil {
		return err
	}

	keyword := flags.Keyword
	if keyword == "" {
		keyword = cfg.DefaultKeyword
	}

	logger := newLogger(stderr, cfg, flags.Verbose)
	a := analyzer.New(cfg.WikiBaseURL, analyzer.NewLinkExtractor())
	session := analyzer.Session{Keyword: keyword, Algorithm: alg}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(stderr))
	s.Suffix = " analyzing " + analyzer.SeedURL(cfg.WikiBaseURL, keyword)
	s.Start()

	var result *analyzer.AnalysisResult
	if flags.Image != "" {
		result, err = a.Analyze(ctx, logger, session)
	} else {
		result, err = a.Rank(ctx, logger, session)
	}
	s.Stop()
	if err != nil {
		return err
	}

	if flags.Image != "" {
		if err := os.WriteFile(flags.Image, result.Image, 0o644); err != nil {
			return fmt.Errorf("writing image %s: %w", flags.Image, err)
		}
		logger.Info("Wrote link graph image", "path", flags.Image, "bytes", len(result.Image))
	}

	return exporter.Export(stdout, result.Table)
}
