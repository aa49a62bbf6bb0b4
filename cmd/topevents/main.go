package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sieginglion/polymarket/internal/events"
	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	"github.com/sieginglion/polymarket/internal/price"
	"github.com/sieginglion/polymarket/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Couldn't load config: %v\n", err)
		return 1
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []gamma.Option{gamma.WithTimeout(cfg.Polymarket.HTTPTimeout.Duration())}
	if cfg.Polymarket.UserAgent != "" {
		opts = append(opts, gamma.WithUserAgent(cfg.Polymarket.UserAgent))
	}
	client := gamma.New(cfg.Polymarket.GammaURL, opts...)

	var minScore *price.Price
	if cfg.Report.Scored {
		p := price.FromFloat(cfg.Report.MinScore)
		minScore = &p
	}

	report := events.NewPipeline(client, logger).Run(ctx, events.Params{
		Limit:       cfg.Report.Limit,
		HorizonDays: cfg.Report.Days,
		MinScore:    minScore,
		Top:         cfg.Report.Top,
	})

	format, _ := render.ParseFormat(cfg.Report.Format)
	if len(report.Events) == 0 && format == render.FormatTable {
		logger.Warn("no events to report", "run_id", report.RunID)
		fmt.Fprintln(stderr, "No events found.")
		return 0
	}

	err = render.Write(stdout, report.Events, render.Options{
		Format:  format,
		Title:   render.DefaultTitle(cfg.Report.Top, cfg.Report.Scored),
		SiteURL: cfg.Polymarket.SiteURL,
		Scored:  cfg.Report.Scored,
	})
	if err != nil {
		logger.Error("writing report failed", "run_id", report.RunID, "error", err)
		return 1
	}
	return 0
}
