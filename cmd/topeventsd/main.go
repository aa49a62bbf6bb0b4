package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sieginglion/polymarket/internal/config"
	"github.com/sieginglion/polymarket/internal/events"
	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	transporthttp "github.com/sieginglion/polymarket/internal/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Couldn't read config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Couldn't validate config: %v", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []gamma.Option{gamma.WithTimeout(cfg.Polymarket.HTTPTimeout.Duration())}
	if cfg.Polymarket.UserAgent != "" {
		opts = append(opts, gamma.WithUserAgent(cfg.Polymarket.UserAgent))
	}
	pipeline := events.NewPipeline(gamma.New(cfg.Polymarket.GammaURL, opts...), logger)

	srv := transporthttp.NewServer(pipeline, transporthttp.Defaults{
		Limit:    cfg.Report.Limit,
		Days:     cfg.Report.Days,
		Top:      cfg.Report.Top,
		MinScore: cfg.Report.MinScore,
		SiteURL:  cfg.Polymarket.SiteURL,
	}, logger)

	requestTimeout := cfg.Server.RequestTimeout.Duration()
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(cfg.Server.CORSOrigins, requestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "gamma_url", cfg.Polymarket.GammaURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
