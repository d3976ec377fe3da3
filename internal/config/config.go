package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Addr           string `yaml:"addr"`
	WikiBaseURL    string `yaml:"wiki_base_url"`
	DefaultKeyword string `yaml:"default_keyword"`
	LogLevel       string `yaml:"log_level"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		WikiBaseURL:    "https://en.wikipedia.org/wiki/",
		DefaultKeyword: "Đại học quốc gia Hà Nội",
		LogLevel:       "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that required fields are present and values are valid.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.WikiBaseURL == "" {
		return fmt.Errorf("wiki_base_url is required")
	}
	u, err := url.Parse(c.WikiBaseURL)
	if err != nil {
		return fmt.Errorf("invalid wiki_base_url %q: %w", c.WikiBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid wiki_base_url %q: scheme must be http or https", c.WikiBaseURL)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
