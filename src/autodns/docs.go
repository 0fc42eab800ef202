// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package autodns probes a fixed list of DNS servers and picks the ones
// that should become the machine's active resolvers.
//
// It works by sending a single test query (an A lookup for "google.com"
// by default) straight to every candidate server, never through the
// system resolver, and classifying each server as online or offline.
// In benchmark mode the round-trip time of every successful query is
// measured as well.
//
// # Components
//
//   - [Checker] runs one probe per server concurrently and returns the
//     results in configured order once every probe has finished or
//     timed out.
//   - [Selector] reduces a batch to an ordered address list. [FirstOnline]
//     keeps the first reachable servers in configured order;
//     [BestLatency] keeps the fastest ones.
//   - [Scheduler] runs a cycle at startup and then on a fixed interval,
//     handing every non-empty selection to a [Publisher].
//
// # Failure Model
//
// Probe failures (timeouts, refused connections, SERVFAIL, empty answers,
// even panics) never escape a probe; the server is simply reported as
// offline. A cycle that finds no online server is logged and skipped:
// the publisher is not called, so the previously written configuration
// stays untouched. A publisher error is logged and the next tick tries
// the whole cycle again. Only the publisher's permission check at
// startup can make [Scheduler.Run] fail.
//
// # Quick Start
//
//	c, err := autodns.New(
//	    autodns.WithServers([]autodns.Server{
//	        {Name: "Cloudflare-1", Address: "1.1.1.1"},
//	        {Name: "Google-1", Address: "8.8.8.8"},
//	        {Name: "Quad9", Address: "9.9.9.9"},
//	    }),
//	    autodns.WithTimeout(2*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := c.Benchmark(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, addr := range (autodns.BestLatency{}).Select(results, 2) {
//	    fmt.Println("nameserver", addr)
//	}
//
// # Running the Daemon Loop
//
//	sched, err := autodns.NewScheduler(c, resolvconf.NewManager("/etc/resolv.conf"),
//	    autodns.WithMode(autodns.ModeBenchmark),
//	    autodns.WithInterval(30*time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sched.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package autodns
