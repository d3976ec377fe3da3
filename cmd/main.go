package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"link-analyzer/internal/analyzer"
	"link-analyzer/internal/config"
)

type CLIFlags struct {
	ConfigFile string `name:"config" short:"c" type:"path" help:"YAML configuration file."`
	Addr       string `name:"addr" help:"Listen address, overrides the configuration file."`
}

func main() {
	var flags CLIFlags
	kong.Parse(&flags,
		kong.Name("link-analyzer"),
		kong.Description("Web UI ranking the outbound links of a Wikipedia article with PageRank or HITS."),
	)

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if flags.Addr != "" {
		cfg.Addr = flags.Addr
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	app, err := newApplication(logger, cfg, analyzer.New(cfg.WikiBaseURL, analyzer.NewLinkExtractor()))
	if err != nil {
		logger.Error("Failed to initialise application", "error", err)
		os.Exit(1)
	}

	logger.Info("Server starting...", "addr", cfg.Addr)

	err = http.ListenAndServe(cfg.Addr, app.routes())
	if err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
