// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"log/slog"
	"time"

	"github.com/miekg/dns"
)

// Option is a functional option for configuring a [Checker].
type Option func(*Checker)

// WithServers replaces all configured DNS servers.
// The slice is copied; the checker never modifies the caller's slice.
func WithServers(servers []Server) Option {
	return func(c *Checker) {
		c.servers = make([]Server, len(servers))
		copy(c.servers, servers)
	}
}

// WithTimeout sets the timeout for each probe.
// The default is 5 seconds. Non-positive values are ignored.
//
// The timeout bounds the whole attempt, including any time spent
// inside a custom client set via [WithDNSClient].
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTestDomain sets the domain resolved by every probe.
// The default is "google.com". The name is normalized when the
// checker is built; an invalid name makes [New] fail.
func WithTestDomain(domain string) Option {
	return func(c *Checker) {
		c.testDomain = domain
	}
}

// WithPort sets the port used for servers configured with a bare IP.
// The default is 53.
func WithPort(port int) Option {
	return func(c *Checker) {
		if port > 0 && port <= 65535 {
			c.port = port
		}
	}
}

// WithDNSClient sets a custom [dns.Client] for all probes.
// This allows full control over the transport configuration, including:
//
//   - TCP transport (Net: "tcp")
//   - DNS-over-TLS (Net: "tcp-tls" with TLSConfig)
//   - Custom Dialer for interface binding
//
// Passing nil is a no-op and the default UDP client will be used.
func WithDNSClient(client *dns.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.dnsClient = client
		}
	}
}

// WithEDNS0Size sets the EDNS0 UDP buffer size advertised by probes.
// The default is 1232 bytes, which is the recommended size to prevent
// IP fragmentation over UDP.
//
// See: https://dnsflagday.net/2020/
func WithEDNS0Size(size uint16) Option {
	return func(c *Checker) {
		if size > 0 {
			c.edns0Size = size
		}
	}
}

// WithLogger sets the logger used for per-probe events.
// Passing nil keeps [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}
