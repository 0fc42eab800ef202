// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"cmp"
	"fmt"
	"slices"
)

// Selector reduces a probe batch to the ordered list of addresses that
// should become the active resolvers.
//
// Implementations never fail: when fewer than count servers qualify they
// return every qualifying address, and when none qualify they return an
// empty, non-nil slice.
type Selector interface {
	Select(results []ProbeResult, count int) []string
}

// FirstOnline keeps the first count online servers in batch order.
type FirstOnline struct{}

// Select implements [Selector].
func (FirstOnline) Select(results []ProbeResult, count int) []string {
	selected := make([]string, 0, max(0, min(count, len(results))))
	if count <= 0 {
		return selected
	}

	for _, r := range results {
		if !r.Online {
			continue
		}
		selected = append(selected, r.Address)
		if len(selected) == count {
			break
		}
	}
	return selected
}

// BestLatency keeps the count fastest online servers, fastest first.
// Servers without a latency measurement are ignored. Equal latencies
// keep their batch order.
type BestLatency struct{}

// Select implements [Selector].
func (BestLatency) Select(results []ProbeResult, count int) []string {
	if count <= 0 {
		return []string{}
	}

	timed := make([]ProbeResult, 0, len(results))
	for _, r := range results {
		if r.Online && r.Timed {
			timed = append(timed, r)
		}
	}

	slices.SortStableFunc(timed, func(a, b ProbeResult) int {
		return cmp.Compare(a.Latency, b.Latency)
	})

	selected := make([]string, 0, min(count, len(timed)))
	for _, r := range timed[:min(count, len(timed))] {
		selected = append(selected, r.Address)
	}
	return selected
}

// SelectorFor returns the [Selector] used by mode.
func SelectorFor(mode Mode) (Selector, error) {
	switch mode {
	case ModeFirstOnline:
		return FirstOnline{}, nil
	case ModeBenchmark:
		return BestLatency{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// VariantFor returns the probe [Variant] required by mode.
func VariantFor(mode Mode) (Variant, error) {
	switch mode {
	case ModeFirstOnline:
		return VariantReachability, nil
	case ModeBenchmark:
		return VariantLatency, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
