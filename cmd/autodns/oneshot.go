// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
	"github.com/H0llyW00dzZ/autodns/src/report"
	"github.com/H0llyW00dzZ/autodns/src/resolvconf"
)

type oneShotOptions struct {
	dryRun bool
	export string
}

func (a *app) checkCommand() *cobra.Command {
	var opts oneShotOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe reachability once and publish the first online servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOnce(cmd.Context(), autodns.ModeFirstOnline, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the selection without writing resolv.conf")
	return cmd
}

func (a *app) benchmarkCommand() *cobra.Command {
	var opts oneShotOptions
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure latency once and publish the fastest servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOnce(cmd.Context(), autodns.ModeBenchmark, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the selection without writing resolv.conf")
	cmd.Flags().StringVar(&opts.export, "export", "", "write the results to an .xlsx spreadsheet")
	return cmd
}

// runOnce runs a single cycle in mode, regardless of the mode in the
// configuration file.
func (a *app) runOnce(ctx context.Context, mode autodns.Mode, opts oneShotOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	checker, err := a.newChecker(cfg)
	if err != nil {
		return err
	}

	var publisher autodns.Publisher = resolvconf.NewManager(cfg.ResolvConfPath)
	if opts.dryRun {
		publisher = dryRunPublisher{logger: a.logger}
	} else if err := publisher.CheckPermissions(); err != nil {
		return fmt.Errorf("%w: %w", autodns.ErrPermission, err)
	}

	sched, err := autodns.NewScheduler(checker, publisher,
		autodns.WithMode(mode),
		autodns.WithSelectCount(cfg.SelectCount),
		autodns.WithSchedulerLogger(a.logger),
	)
	if err != nil {
		return err
	}

	rep := sched.RunCycle(ctx)
	if opts.dryRun {
		rep.Published = false
	}
	report.PrintCycle(a.stdout, rep)

	if opts.export != "" {
		if err := report.ExportXLSX(opts.export, rep); err != nil {
			return err
		}
		a.logger.Info("results exported", "path", opts.export)
	}

	switch {
	case errors.Is(rep.Err, autodns.ErrPublish),
		errors.Is(rep.Err, context.Canceled),
		errors.Is(rep.Err, context.DeadlineExceeded):
		return rep.Err
	}
	return nil
}

// dryRunPublisher accepts every selection without touching the system.
type dryRunPublisher struct {
	logger *slog.Logger
}

func (dryRunPublisher) CheckPermissions() error { return nil }

func (p dryRunPublisher) UpdateDNSServers(servers []string) error {
	p.logger.Info("dry run, resolv.conf left unchanged", "servers", servers)
	return nil
}
