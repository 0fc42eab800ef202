// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"fmt"
	"time"
)

// Server is a candidate DNS server eligible for probing.
type Server struct {
	// Name is a display name. It does not have to be unique.
	Name string

	// Address is the IP address of the server. A "host:port" value is
	// also accepted and dialled as-is; a bare IP is dialled on the
	// checker's port (53 by default).
	Address string
}

// ProbeResult is the outcome of probing a single [Server].
type ProbeResult struct {
	// Address is the probed server address.
	Address string

	// Name is the display name of the probed server.
	Name string

	// Online reports whether the server answered the test query
	// within the timeout.
	Online bool

	// Latency is the round-trip time of the test query.
	// Only meaningful when Timed is true.
	Latency time.Duration

	// Timed is true when the probe measured latency and succeeded.
	Timed bool
}

// LatencyMs returns the measured latency in milliseconds and whether a
// measurement is present.
func (r ProbeResult) LatencyMs() (float64, bool) {
	if !r.Online || !r.Timed {
		return 0, false
	}
	return float64(r.Latency) / float64(time.Millisecond), true
}

// Variant selects which kind of probe a batch runs.
type Variant int

const (
	// VariantReachability only reports whether a server answers.
	VariantReachability Variant = iota

	// VariantLatency also measures the round-trip time of successful probes.
	VariantLatency
)

// String implements [fmt.Stringer].
func (v Variant) String() string {
	switch v {
	case VariantReachability:
		return "reachability"
	case VariantLatency:
		return "latency"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Mode is the operation mode of the daemon. It decides both the probe
// [Variant] and the [Selector] used on every cycle.
type Mode string

const (
	// ModeFirstOnline keeps the first reachable servers in configured order.
	ModeFirstOnline Mode = "firstonline"

	// ModeBenchmark keeps the fastest reachable servers.
	ModeBenchmark Mode = "benchmark"
)

// ParseMode converts a configuration string into a [Mode].
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFirstOnline, ModeBenchmark:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// CycleReport describes one probe → select → publish cycle.
type CycleReport struct {
	// Mode is the mode the cycle ran in.
	Mode Mode

	// Results is the probe batch, in configured server order.
	Results []ProbeResult

	// Selection is the ordered address list chosen by the selector.
	Selection []string

	// Published is true when the selection was handed to the publisher
	// and the publisher accepted it.
	Published bool

	// Err is nil for a fully successful cycle. It wraps
	// [ErrEmptySelection] or [ErrPublish] for the non-fatal cycle
	// conditions, or the context error when the cycle was interrupted.
	Err error

	// Started is when the cycle began.
	Started time.Time

	// Duration is the wall-clock time the cycle took.
	Duration time.Duration
}

// OnlineCount returns how many results in the batch are online.
func (r CycleReport) OnlineCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Online {
			n++
		}
	}
	return n
}
