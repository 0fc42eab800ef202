// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
)

// Summary holds latency statistics in milliseconds over the timed
// results of a batch.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	P95    float64
}

// Summarize computes latency statistics over the reachable, timed
// results. It returns an error wrapping [stats.EmptyInputErr] when no
// result carries a latency.
func Summarize(results []autodns.ProbeResult) (Summary, error) {
	var data stats.Float64Data
	for _, r := range results {
		if ms, ok := r.LatencyMs(); ok && r.Online {
			data = append(data, ms)
		}
	}

	if len(data) == 0 {
		return Summary{}, fmt.Errorf("report: no latency samples: %w", stats.EmptyInputErr)
	}

	s := Summary{Count: len(data)}
	var err error
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	if s.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return Summary{}, err
	}
	return s, nil
}
