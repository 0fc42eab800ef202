// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
	"github.com/H0llyW00dzZ/autodns/src/metrics"
	"github.com/H0llyW00dzZ/autodns/src/resolvconf"
)

const metricsShutdownTimeout = 5 * time.Second

func (a *app) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the selection daemon until interrupted",
		Args:  cobra.NoArgs,
		RunE:  a.runDaemon,
	}
}

func (a *app) runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	checker, err := a.newChecker(cfg)
	if err != nil {
		return err
	}

	collector := metrics.New()
	sched, err := autodns.NewScheduler(checker, resolvconf.NewManager(cfg.ResolvConfPath),
		autodns.WithMode(cfg.Mode),
		autodns.WithInterval(cfg.Interval()),
		autodns.WithSelectCount(cfg.SelectCount),
		autodns.WithSchedulerLogger(a.logger),
		autodns.WithObserver(collector),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsListen != "" {
		srv := a.serveMetrics(cfg.MetricsListen, collector)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	a.logger.Info("starting autodns",
		"mode", string(sched.Mode()),
		"interval", sched.Interval().String(),
		"select_count", cfg.SelectCount,
	)

	if err := sched.Run(ctx); err != nil {
		return err
	}

	a.logger.Info("shutting down")
	return nil
}

// serveMetrics starts the /metrics endpoint in the background.
func (a *app) serveMetrics(addr string, collector *metrics.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("metrics server listening", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
