// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// Default configuration values.
const (
	defaultTimeout    = 5 * time.Second
	defaultTestDomain = "google.com"
	defaultPort       = 53
	defaultEDNS0Size  = 1232 // Recommended size to prevent IP fragmentation
)

// Checker probes a fixed list of DNS servers.
//
// A Checker is safe for concurrent use; its configuration never changes
// after [New] returns.
type Checker struct {
	servers    []Server
	timeout    time.Duration
	testDomain string
	port       int
	edns0Size  uint16
	dnsClient  *dns.Client
	logger     *slog.Logger

	// exchange sends one query. It is a field so tests can
	// substitute a faulty transport.
	exchange func(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, error)
}

// New creates a new [Checker]. Use functional options to customize
// behavior.
//
//	c, err := autodns.New(
//	    autodns.WithServers([]autodns.Server{
//	        {Name: "Cloudflare", Address: "1.1.1.1"},
//	        {Name: "Google", Address: "8.8.8.8"},
//	    }),
//	    autodns.WithTimeout(2*time.Second),
//	)
//
// New returns [ErrInvalidDomain] when the test domain set with
// [WithTestDomain] cannot be normalized.
func New(opts ...Option) (*Checker, error) {
	c := &Checker{
		timeout:    defaultTimeout,
		testDomain: defaultTestDomain,
		port:       defaultPort,
		edns0Size:  defaultEDNS0Size,
	}

	for _, opt := range opts {
		opt(c)
	}

	domain, err := NormalizeDomain(c.testDomain)
	if err != nil {
		return nil, err
	}
	c.testDomain = domain

	if c.logger == nil {
		c.logger = slog.Default()
	}

	// Initialize shared DNS client if not set by WithDNSClient option.
	if c.dnsClient == nil {
		c.dnsClient = &dns.Client{
			Timeout: c.timeout,
			Net:     "udp",
		}
	}

	c.exchange = func(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, error) {
		resp, _, err := c.dnsClient.ExchangeContext(ctx, msg, addr)
		return resp, err
	}

	return c, nil
}

// Probe runs one probe of the given variant against every configured
// server concurrently and waits for all of them to finish.
//
// The returned batch has one entry per server, in configured order,
// regardless of completion order. A failing or panicking probe never
// affects its siblings; it is reported as offline.
func (c *Checker) Probe(ctx context.Context, variant Variant) ([]ProbeResult, error) {
	if len(c.servers) == 0 {
		return nil, ErrNoServers
	}

	results := make([]ProbeResult, len(c.servers))
	var wg sync.WaitGroup

	for i, srv := range c.servers {
		wg.Add(1)

		go func(idx int, server Server) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("probe panicked",
						"name", server.Name,
						"address", server.Address,
						"error", fmt.Errorf("%w: %v", ErrInternalPanic, r),
					)
					results[idx] = ProbeResult{
						Address: server.Address,
						Name:    server.Name,
					}
				}
			}()

			results[idx] = c.probeServer(ctx, server, variant)
		}(i, srv)
	}

	wg.Wait()
	return results, nil
}

// Check probes every server for reachability only.
// This is a convenience wrapper around [Checker.Probe].
func (c *Checker) Check(ctx context.Context) ([]ProbeResult, error) {
	return c.Probe(ctx, VariantReachability)
}

// Benchmark probes every server and measures latency.
// This is a convenience wrapper around [Checker.Probe].
func (c *Checker) Benchmark(ctx context.Context) ([]ProbeResult, error) {
	return c.Probe(ctx, VariantLatency)
}

// CheckOne probes a single server for reachability.
// The server does not need to be part of the configured list.
func (c *Checker) CheckOne(ctx context.Context, server Server) ProbeResult {
	return c.probeServer(ctx, server, VariantReachability)
}

// BenchmarkOne probes a single server and measures latency.
// The server does not need to be part of the configured list.
func (c *Checker) BenchmarkOne(ctx context.Context, server Server) ProbeResult {
	return c.probeServer(ctx, server, VariantLatency)
}

// Servers returns a copy of the configured DNS servers.
func (c *Checker) Servers() []Server {
	servers := make([]Server, len(c.servers))
	copy(servers, c.servers)
	return servers
}

// Timeout returns the per-probe timeout.
func (c *Checker) Timeout() time.Duration { return c.timeout }

// TestDomain returns the normalized domain resolved by every probe.
func (c *Checker) TestDomain() string { return c.testDomain }
