// Package config loads report settings from YAML, .env and TOPEVENTS_* variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"

	"github.com/sieginglion/polymarket/internal/render"
)

type Config struct {
	LogLevel   string `yaml:"log_level"` // debug, info, warn, error
	Polymarket struct {
		GammaURL    string   `yaml:"gamma_url"`
		SiteURL     string   `yaml:"site_url"`
		UserAgent   string   `yaml:"user_agent"`
		HTTPTimeout Duration `yaml:"http_timeout"`
	} `yaml:"polymarket"`
	Report struct {
		// Limit is the number of market records requested.
		Limit    int     `yaml:"limit"`
		Days     int     `yaml:"days"`
		Top      int     `yaml:"top"`
		Scored   bool    `yaml:"scored"`
		MinScore float64 `yaml:"min_score"`
		Format   string  `yaml:"format"`
	} `yaml:"report"`
	Server struct {
		Addr           string   `yaml:"addr"`
		CORSOrigins    []string `yaml:"cors_origins"`
		RequestTimeout Duration `yaml:"request_timeout"`
	} `yaml:"server"`
}

func Defaults() Config {
	var cfg Config
	cfg.LogLevel = "info"
	cfg.Polymarket.GammaURL = "https://gamma-api.polymarket.com"
	cfg.Polymarket.SiteURL = "https://polymarket.com"
	cfg.Polymarket.HTTPTimeout = Duration(30 * time.Second)
	cfg.Report.Limit = 500
	cfg.Report.Days = 30
	cfg.Report.Top = 16
	cfg.Report.MinScore = 0.8
	cfg.Report.Format = string(render.FormatTable)
	cfg.Server.Addr = ":8080"
	cfg.Server.RequestTimeout = Duration(45 * time.Second)
	return cfg
}

// Load starts from Defaults, applies the YAML file at path (skipped when path
// is empty), then a .env file if present, then TOPEVENTS_* variables.
// The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("couldn't parse config: %w", err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if u, err := url.Parse(c.Polymarket.GammaURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("polymarket.gamma_url must be an absolute URL, got %q", c.Polymarket.GammaURL))
	}
	if c.Polymarket.SiteURL == "" {
		errs = append(errs, errors.New("polymarket.site_url is required"))
	}
	if c.Polymarket.HTTPTimeout.Duration() <= 0 {
		errs = append(errs, errors.New("polymarket.http_timeout must be positive"))
	}

	if c.Report.Limit <= 0 {
		errs = append(errs, errors.New("report.limit must be greater than 0"))
	}
	if c.Report.Days < 0 {
		errs = append(errs, errors.New("report.days must not be negative"))
	}
	if c.Report.Top <= 0 {
		errs = append(errs, errors.New("report.top must be greater than 0"))
	}
	if c.Report.MinScore < 0 || c.Report.MinScore > 1 {
		errs = append(errs, errors.New("report.min_score must be between 0 and 1"))
	}
	if _, err := render.ParseFormat(c.Report.Format); err != nil {
		errs = append(errs, fmt.Errorf("report.format: %w", err))
	}

	if c.Server.RequestTimeout.Duration() <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
}
