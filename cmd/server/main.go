package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/config"
	"github.com/me/backoffice/internal/logging"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/internal/querycache"
	"github.com/me/backoffice/internal/server"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Upstream API base URL")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Time zone periods are resolved in")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	resolver := period.NewResolver(period.SystemClock, loc)

	opts := []api.Option{
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	var serverOpts []server.Option
	if cfg.CacheTTL > 0 {
		qc := querycache.New(cfg.CacheSize, cfg.CacheTTL)
		opts = append(opts, api.WithCache(qc))
		serverOpts = append(serverOpts, server.WithCache(qc))
		logger.Info("query cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}
	client := api.NewClient(cfg.APIURL, logger, opts...)
	logger.Info("upstream api", "url", client.BaseURL(), "rate_limit", cfg.RateLimit, "timezone", loc.String())

	srv := server.New(cfg, client, resolver, logger, serverOpts...)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "version", server.Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
