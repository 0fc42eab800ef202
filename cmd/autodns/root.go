// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
	"github.com/H0llyW00dzZ/autodns/src/config"
)

// app carries the state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	logger *slog.Logger

	// checkerOptions are appended after the options derived from the
	// configuration file.
	checkerOptions []autodns.Option
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "autodns",
		Short: "Select healthy DNS resolvers and keep resolv.conf up to date",
		Long: "autodns probes a configured list of DNS servers, selects the first online\n" +
			"or the fastest ones, and rewrites resolv.conf with the selection.\n" +
			"Without a subcommand it runs as a daemon.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := newLogger(a.stderr, a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: a.runDaemon,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "config.yaml", "path to the YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		a.runCommand(),
		a.checkCommand(),
		a.benchmarkCommand(),
		a.statusCommand(),
	)
	return root
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", format)
	}
}

// loadConfig reads the configuration file and logs its warnings.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	for _, w := range cfg.Warnings {
		a.logger.Warn("configuration warning", "warning", w)
	}
	a.logger.Info("configuration loaded",
		"path", a.configPath,
		"servers", len(cfg.DNSServers),
		"mode", string(cfg.Mode),
		"interval", cfg.Interval().String(),
		"timeout", cfg.Timeout().String(),
		"resolv_conf", cfg.ResolvConfPath,
	)
	return cfg, nil
}

// newChecker builds the probe engine for cfg.
func (a *app) newChecker(cfg *config.Config) (*autodns.Checker, error) {
	opts := []autodns.Option{
		autodns.WithServers(cfg.Servers()),
		autodns.WithTimeout(cfg.Timeout()),
		autodns.WithTestDomain(cfg.TestDomain),
		autodns.WithLogger(a.logger),
	}
	return autodns.New(append(opts, a.checkerOptions...)...)
}
