// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/miekg/dns"
)

// newQuery builds the test query sent to every server.
func (c *Checker) newQuery() *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(c.testDomain), dns.TypeA)
	msg.RecursionDesired = true
	msg.SetEdns0(c.edns0Size, false)
	return msg
}

// target returns the dial address for a server. A bare IP gets the
// configured port; anything else is assumed to be "host:port".
func (c *Checker) target(address string) string {
	if net.ParseIP(address) != nil {
		return net.JoinHostPort(address, strconv.Itoa(c.port))
	}
	return address
}

// queryDNS sends msg to addr and waits at most the configured timeout.
// The query goes to addr only; there is no fallback to the system resolver.
func (c *Checker) queryDNS(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Create a channel to receive the result so we can
	// respect the deadline even if the transport does not.
	type dnsResult struct {
		msg *dns.Msg
		err error
	}
	ch := make(chan dnsResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- dnsResult{err: fmt.Errorf("%w: %v", ErrInternalPanic, r)}
			}
		}()
		resp, err := c.exchange(ctx, msg, addr)
		ch <- dnsResult{msg: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrDNSTimeout, ctx.Err())
	case result := <-ch:
		if result.err != nil {
			return nil, result.err
		}
		return result.msg, nil
	}
}

// checkResponse reports whether resp counts as a valid answer.
func checkResponse(resp *dns.Msg) error {
	if resp == nil {
		return ErrEmptyAnswer
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("%w: %s", ErrUnexpectedRcode, dns.RcodeToString[resp.Rcode])
	}
	if len(resp.Answer) == 0 {
		return ErrEmptyAnswer
	}
	return nil
}

// probeServer performs one probe against server. Every failure is
// logged and reported as offline; no error leaves this function.
func (c *Checker) probeServer(ctx context.Context, server Server, variant Variant) ProbeResult {
	result := ProbeResult{
		Address: server.Address,
		Name:    server.Name,
	}

	c.logger.Debug("probing DNS server",
		"name", server.Name,
		"address", server.Address,
		"variant", variant.String(),
	)

	msg := c.newQuery()
	addr := c.target(server.Address)

	start := time.Now()
	resp, err := c.queryDNS(ctx, msg, addr)
	elapsed := time.Since(start)

	if err == nil {
		err = checkResponse(resp)
	}

	if err != nil {
		c.logger.Warn("DNS server is offline",
			"name", server.Name,
			"address", server.Address,
			"error", err,
		)
		return result
	}

	result.Online = true

	if variant == VariantLatency {
		result.Latency = elapsed
		result.Timed = true
		ms, _ := result.LatencyMs()
		c.logger.Info("DNS server responded",
			"name", server.Name,
			"address", server.Address,
			"latency_ms", fmt.Sprintf("%.2f", ms),
		)
		return result
	}

	c.logger.Info("DNS server is online",
		"name", server.Name,
		"address", server.Address,
	)
	return result
}
