package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/sieginglion/polymarket/internal/config"
)

type flags struct {
	configPath string
	limit      int
	days       int
	top        int
	scored     bool
	minScore   float64
	format     string
	logLevel   string
}

// loadConfig reads the config file named by -config, then applies any flag
// the user set explicitly on top of it.
func loadConfig(args []string, stderr io.Writer) (*config.Config, error) {
	def := config.Defaults()

	var f flags
	fs := flag.NewFlagSet("topevents", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to config file (optional)")
	fs.IntVar(&f.limit, "limit", def.Report.Limit, "number of markets to fetch")
	fs.IntVar(&f.days, "days", def.Report.Days, "only include events ending within this many days")
	fs.IntVar(&f.top, "top", def.Report.Top, "number of events to show")
	fs.BoolVar(&f.scored, "score", def.Report.Scored, "score events and filter by -min-score")
	fs.Float64Var(&f.minScore, "min-score", def.Report.MinScore, "minimum event score in [0, 1] when -score is set")
	fs.StringVar(&f.format, "format", def.Report.Format, "output format: table, csv or json")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "limit":
			cfg.Report.Limit = f.limit
		case "days":
			cfg.Report.Days = f.days
		case "top":
			cfg.Report.Top = f.top
		case "score":
			cfg.Report.Scored = f.scored
		case "min-score":
			cfg.Report.MinScore = f.minScore
		case "format":
			cfg.Report.Format = f.format
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("couldn't validate config: %w", err)
	}
	return cfg, nil
}
