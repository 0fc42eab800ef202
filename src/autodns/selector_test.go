// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
)

func online(name, addr string) autodns.ProbeResult {
	return autodns.ProbeResult{Name: name, Address: addr, Online: true}
}

func offline(name, addr string) autodns.ProbeResult {
	return autodns.ProbeResult{Name: name, Address: addr}
}

func timed(name, addr string, latency time.Duration) autodns.ProbeResult {
	return autodns.ProbeResult{Name: name, Address: addr, Online: true, Latency: latency, Timed: true}
}

func TestFirstOnlineScenarioA(t *testing.T) {
	batch := []autodns.ProbeResult{
		online("X", "10.0.0.1"),
		offline("Y", "10.0.0.2"),
		online("Z", "10.0.0.3"),
	}

	got := autodns.FirstOnline{}.Select(batch, 2)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.3"}, got)
}

func TestBestLatencyScenarioB(t *testing.T) {
	batch := []autodns.ProbeResult{
		timed("X", "10.0.0.1", 20*time.Millisecond),
		offline("Y", "10.0.0.2"),
		timed("Z", "10.0.0.3", 50*time.Millisecond),
	}

	got := autodns.BestLatency{}.Select(batch, 2)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.3"}, got)
}

func TestSelectScenarioC(t *testing.T) {
	batch := []autodns.ProbeResult{offline("X", "10.0.0.1")}

	for _, sel := range []autodns.Selector{autodns.FirstOnline{}, autodns.BestLatency{}} {
		got := sel.Select(batch, 2)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestSelectEmptyBatch(t *testing.T) {
	for _, sel := range []autodns.Selector{autodns.FirstOnline{}, autodns.BestLatency{}} {
		assert.Empty(t, sel.Select(nil, 2))
		assert.Empty(t, sel.Select([]autodns.ProbeResult{}, 2))
	}
}

func TestSelectNonPositiveCount(t *testing.T) {
	batch := []autodns.ProbeResult{
		timed("X", "10.0.0.1", time.Millisecond),
	}
	for _, sel := range []autodns.Selector{autodns.FirstOnline{}, autodns.BestLatency{}} {
		assert.Empty(t, sel.Select(batch, 0))
		assert.Empty(t, sel.Select(batch, -1))
	}
}

func TestFirstOnlineFailOpen(t *testing.T) {
	batch := []autodns.ProbeResult{
		offline("A", "192.0.2.1"),
		offline("B", "192.0.2.2"),
		online("Cloudflare-1", "1.1.1.1"),
		offline("C", "192.0.2.3"),
	}

	assert.Equal(t, []string{"1.1.1.1"}, autodns.FirstOnline{}.Select(batch, 2))
}

func TestFirstOnlineStopsAtCount(t *testing.T) {
	batch := []autodns.ProbeResult{
		online("Cloudflare-1", "1.1.1.1"),
		online("Cloudflare-2", "1.0.0.1"),
		online("Google-1", "8.8.8.8"),
		online("Google-2", "8.8.4.4"),
	}

	assert.Equal(t, []string{"1.1.1.1", "1.0.0.1"}, autodns.FirstOnline{}.Select(batch, 2))
	assert.Equal(t, []string{"1.1.1.1"}, autodns.FirstOnline{}.Select(batch, 1))
}

func TestBestLatencyIgnoresUntimed(t *testing.T) {
	batch := []autodns.ProbeResult{
		online("untimed", "10.0.0.1"),
		timed("slow", "10.0.0.2", 80*time.Millisecond),
		// Latency without Online must never be selected.
		{Name: "stale", Address: "10.0.0.3", Latency: time.Millisecond, Timed: true},
		timed("fast", "10.0.0.4", 10*time.Millisecond),
	}

	assert.Equal(t, []string{"10.0.0.4", "10.0.0.2"}, autodns.BestLatency{}.Select(batch, 5))
}

func TestBestLatencyTiesKeepBatchOrder(t *testing.T) {
	batch := []autodns.ProbeResult{
		timed("A", "10.0.0.1", 30*time.Millisecond),
		timed("B", "10.0.0.2", 10*time.Millisecond),
		timed("C", "10.0.0.3", 10*time.Millisecond),
		timed("D", "10.0.0.4", 10*time.Millisecond),
		timed("E", "10.0.0.5", 0),
	}

	assert.NotPanics(t, func() {
		got := autodns.BestLatency{}.Select(batch, 4)
		assert.Equal(t, []string{"10.0.0.5", "10.0.0.2", "10.0.0.3", "10.0.0.4"}, got)
	})
}

func TestSelectDoesNotMutateBatch(t *testing.T) {
	batch := []autodns.ProbeResult{
		timed("A", "10.0.0.1", 30*time.Millisecond),
		timed("B", "10.0.0.2", 10*time.Millisecond),
	}
	orig := slices.Clone(batch)

	_ = autodns.BestLatency{}.Select(batch, 2)
	_ = autodns.FirstOnline{}.Select(batch, 2)
	assert.Equal(t, orig, batch)
}

// randomBatch builds a batch of n results with random reachability and
// latencies drawn from a small range so that ties are common.
func randomBatch(r *rand.Rand, n int) []autodns.ProbeResult {
	batch := make([]autodns.ProbeResult, n)
	for i := range batch {
		addr := fmt.Sprintf("10.0.%d.%d", i/256, i%256)
		if r.IntN(3) == 0 {
			batch[i] = offline("srv", addr)
			continue
		}
		batch[i] = timed("srv", addr, time.Duration(r.IntN(5))*time.Millisecond)
	}
	return batch
}

func TestFirstOnlineProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		batch := randomBatch(r, r.IntN(12))
		k := r.IntN(6)

		reachable := []string{}
		for _, res := range batch {
			if res.Online {
				reachable = append(reachable, res.Address)
			}
		}

		got := autodns.FirstOnline{}.Select(batch, k)
		want := min(k, len(reachable))
		require.Len(t, got, want)
		assert.Equal(t, reachable[:want], got, "selection must be an in-order prefix of the reachable servers")

		// Idempotence.
		assert.Equal(t, got, autodns.FirstOnline{}.Select(batch, k))
	}
}

func TestBestLatencyProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	for range 200 {
		batch := randomBatch(r, r.IntN(12))
		k := r.IntN(6)

		var latencies []time.Duration
		byAddr := make(map[string]time.Duration)
		for _, res := range batch {
			if res.Online && res.Timed {
				latencies = append(latencies, res.Latency)
				byAddr[res.Address] = res.Latency
			}
		}
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

		got := autodns.BestLatency{}.Select(batch, k)
		want := min(k, len(latencies))
		require.Len(t, got, want)

		for i, addr := range got {
			lat, ok := byAddr[addr]
			require.True(t, ok, "selected %s is not a reachable timed server", addr)
			assert.Equal(t, latencies[i], lat, "selection[%d] is not the %d-th smallest latency", i, i)
		}

		// Idempotence.
		assert.Equal(t, got, autodns.BestLatency{}.Select(batch, k))
	}
}

func TestSelectorFor(t *testing.T) {
	sel, err := autodns.SelectorFor(autodns.ModeFirstOnline)
	require.NoError(t, err)
	assert.IsType(t, autodns.FirstOnline{}, sel)

	sel, err = autodns.SelectorFor(autodns.ModeBenchmark)
	require.NoError(t, err)
	assert.IsType(t, autodns.BestLatency{}, sel)

	_, err = autodns.SelectorFor("check")
	assert.ErrorIs(t, err, autodns.ErrUnknownMode)
}

func TestVariantFor(t *testing.T) {
	v, err := autodns.VariantFor(autodns.ModeFirstOnline)
	require.NoError(t, err)
	assert.Equal(t, autodns.VariantReachability, v)

	v, err = autodns.VariantFor(autodns.ModeBenchmark)
	require.NoError(t, err)
	assert.Equal(t, autodns.VariantLatency, v)

	_, err = autodns.VariantFor("")
	assert.ErrorIs(t, err, autodns.ErrUnknownMode)
}
