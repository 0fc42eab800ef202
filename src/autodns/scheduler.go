// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Default scheduler values.
const (
	defaultInterval    = 120 * time.Second
	defaultSelectCount = 2
)

// Prober runs one probe batch. [Checker] implements it.
type Prober interface {
	Probe(ctx context.Context, variant Variant) ([]ProbeResult, error)
}

// Publisher writes the selected servers into the system resolver
// configuration.
type Publisher interface {
	// CheckPermissions is called once before the first cycle.
	CheckPermissions() error

	// UpdateDNSServers is called at most once per cycle with a
	// non-empty selection.
	UpdateDNSServers(addrs []string) error
}

// Observer receives a report after every cycle.
type Observer interface {
	ObserveCycle(report CycleReport)
}

// Ticker is the timer driving the scheduler loop.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// timeTicker adapts [time.Ticker] to [Ticker].
type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// SchedulerOption is a functional option for configuring a [Scheduler].
type SchedulerOption func(*Scheduler)

// WithMode sets the operation mode. The default is [ModeFirstOnline].
func WithMode(mode Mode) SchedulerOption {
	return func(s *Scheduler) {
		s.mode = mode
	}
}

// WithInterval sets the fixed period between cycles.
// The default is 120 seconds. Non-positive values are ignored.
func WithInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSelectCount sets how many servers are published per cycle.
// The default is 2. Non-positive values are ignored.
func WithSelectCount(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.count = n
		}
	}
}

// WithSchedulerLogger sets the logger for cycle events.
// Passing nil keeps [slog.Default].
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an [Observer] notified after every cycle.
func WithObserver(o Observer) SchedulerOption {
	return func(s *Scheduler) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithTicker replaces the timer factory. Tests use it to drive the loop
// by hand.
func WithTicker(newTicker func(time.Duration) Ticker) SchedulerOption {
	return func(s *Scheduler) {
		if newTicker != nil {
			s.newTicker = newTicker
		}
	}
}

// Scheduler owns the daemon loop: one cycle at startup, then one cycle
// per interval, each cycle being probe → select → publish.
type Scheduler struct {
	prober    Prober
	publisher Publisher
	mode      Mode
	variant   Variant
	selector  Selector
	interval  time.Duration
	count     int
	logger    *slog.Logger
	observers []Observer
	newTicker func(time.Duration) Ticker
}

// NewScheduler creates a [Scheduler]. It returns [ErrUnknownMode] when
// the configured mode has no selector.
func NewScheduler(prober Prober, publisher Publisher, opts ...SchedulerOption) (*Scheduler, error) {
	if prober == nil || publisher == nil {
		return nil, errors.New("autodns: scheduler needs a prober and a publisher")
	}

	s := &Scheduler{
		prober:    prober,
		publisher: publisher,
		mode:      ModeFirstOnline,
		interval:  defaultInterval,
		count:     defaultSelectCount,
		newTicker: newTimeTicker,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	selector, err := SelectorFor(s.mode)
	if err != nil {
		return nil, err
	}
	variant, err := VariantFor(s.mode)
	if err != nil {
		return nil, err
	}
	s.selector = selector
	s.variant = variant

	return s, nil
}

// Run checks publisher permissions, runs one cycle immediately and then
// one cycle per tick until ctx is cancelled.
//
// Only the permission check can make Run fail. Cycle problems (no online
// server, publish errors) are logged and reported to observers; the next
// tick retries from scratch. Run returns nil once ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.publisher.CheckPermissions(); err != nil {
		return fmt.Errorf("%w: %w", ErrPermission, err)
	}

	s.logger.Info("starting scheduler",
		"mode", string(s.mode),
		"interval", s.interval.String(),
		"select_count", s.count,
	)

	s.RunCycle(ctx)

	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-ticker.C():
			s.RunCycle(ctx)
		}
	}
}

// RunCycle runs one probe → select → publish cycle and returns its report.
//
// An empty selection never reaches the publisher: the previously published
// configuration stays in place.
func (s *Scheduler) RunCycle(ctx context.Context) (report CycleReport) {
	report = CycleReport{
		Mode:    s.mode,
		Started: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.Started)
		for _, o := range s.observers {
			o.ObserveCycle(report)
		}
	}()

	s.logger.Info("running DNS cycle", "mode", string(s.mode), "variant", s.variant.String())

	results, err := s.prober.Probe(ctx, s.variant)
	if err != nil {
		report.Err = err
		s.logger.Error("probe batch failed", "error", err)
		return report
	}
	report.Results = results

	// A shutdown during probing leaves every server offline; do not
	// turn that into a configuration change.
	if err := ctx.Err(); err != nil {
		report.Err = err
		return report
	}

	s.logger.Info("probe batch complete",
		"online", report.OnlineCount(),
		"total", len(results),
	)

	report.Selection = s.selector.Select(results, s.count)
	if len(report.Selection) == 0 {
		report.Err = ErrEmptySelection
		s.logger.Warn("no online DNS servers found, keeping current configuration",
			"total", len(results),
		)
		return report
	}

	if err := s.publisher.UpdateDNSServers(report.Selection); err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrPublish, err)
		s.logger.Error("failed to update DNS servers", "error", err)
		return report
	}

	report.Published = true
	s.logger.Info("updated DNS servers", "servers", report.Selection)
	return report
}

// Mode returns the operation mode.
func (s *Scheduler) Mode() Mode { return s.mode }

// Interval returns the fixed period between cycles.
func (s *Scheduler) Interval() time.Duration { return s.interval }
