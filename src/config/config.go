// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads and validates the autodns YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
	"github.com/H0llyW00dzZ/autodns/src/resolvconf"
)

// Default configuration values.
const (
	DefaultTimeoutSeconds = 2
	DefaultSelectCount    = 2
	DefaultTestDomain     = "google.com"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// DNSServer is one configured candidate server.
type DNSServer struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Config is the daemon configuration file.
type Config struct {
	DNSServers               []DNSServer  `yaml:"dns_servers"`
	Mode                     autodns.Mode `yaml:"mode"`
	ExecutionIntervalSeconds uint64       `yaml:"execution_interval_seconds"`
	TimeoutSeconds           uint64       `yaml:"timeout_seconds"`
	ResolvConfPath           string       `yaml:"resolv_conf_path"`
	SelectCount              int          `yaml:"select_count"`
	TestDomain               string       `yaml:"test_domain"`
	MetricsListen            string       `yaml:"metrics_listen"`

	// Warnings lists the non-fatal findings of the last validation.
	Warnings []string `yaml:"-"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read configuration file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		ResolvConfPath: resolvconf.DefaultPath,
		SelectCount:    DefaultSelectCount,
		TestDomain:     DefaultTestDomain,
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: failed to parse YAML configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and records warnings in
// [Config.Warnings].
func (c *Config) Validate() error {
	c.Warnings = nil

	if len(c.DNSServers) == 0 {
		return invalid("at least one DNS server must be configured")
	}
	if len(c.DNSServers) < 2 {
		c.warn("only %d DNS server configured; at least 2 are recommended for redundancy", len(c.DNSServers))
	}

	if _, err := autodns.ParseMode(string(c.Mode)); err != nil {
		return invalid("mode must be %q or %q, got %q", autodns.ModeFirstOnline, autodns.ModeBenchmark, c.Mode)
	}

	if c.ExecutionIntervalSeconds == 0 {
		return invalid("execution_interval_seconds must be greater than 0")
	}
	if c.ExecutionIntervalSeconds < 30 {
		c.warn("execution_interval_seconds is very short (%d seconds); this may cause excessive DNS queries, recommended: 120+ seconds",
			c.ExecutionIntervalSeconds)
	}

	if c.TimeoutSeconds == 0 {
		return invalid("timeout_seconds must be greater than 0")
	}
	if c.TimeoutSeconds > 10 {
		c.warn("timeout_seconds is very long (%d seconds); recommended: 2-5 seconds", c.TimeoutSeconds)
	}

	if c.SelectCount < 1 {
		return invalid("select_count must be at least 1")
	}

	if _, err := autodns.NormalizeDomain(c.TestDomain); err != nil {
		return invalid("test_domain: %v", err)
	}

	if err := c.validateServers(); err != nil {
		return err
	}

	if strings.TrimSpace(c.ResolvConfPath) == "" {
		return invalid("resolv_conf_path cannot be empty")
	}
	parent := filepath.Dir(c.ResolvConfPath)
	if st, err := os.Stat(parent); err != nil || !st.IsDir() {
		return invalid("parent directory does not exist for resolv_conf_path: %s", parent)
	}

	switch c.Mode {
	case autodns.ModeFirstOnline:
		if c.ExecutionIntervalSeconds > 300 {
			c.warn("in firstonline mode, long intervals (%d seconds) may delay detection of DNS failures; recommended: 120 seconds",
				c.ExecutionIntervalSeconds)
		}
	case autodns.ModeBenchmark:
		if c.ExecutionIntervalSeconds < 300 {
			c.warn("in benchmark mode, short intervals (%d seconds) may cause excessive DNS load; recommended: 1800 seconds",
				c.ExecutionIntervalSeconds)
		}
	}

	return nil
}

// validateServers rejects empty names, non-IP addresses and duplicate
// addresses, and warns about duplicate names.
func (c *Config) validateServers() error {
	seenAddr := make(map[netip.Addr]struct{}, len(c.DNSServers))
	seenName := make(map[string]struct{}, len(c.DNSServers))
	var dupAddrs, dupNames []string

	for i, s := range c.DNSServers {
		if strings.TrimSpace(s.Name) == "" {
			return invalid("dns_servers[%d]: name cannot be empty", i)
		}

		addr, err := netip.ParseAddr(strings.TrimSpace(s.Address))
		if err != nil {
			return invalid("dns_servers[%d] (%s): invalid IP address %q", i, s.Name, s.Address)
		}
		addr = addr.Unmap()

		if _, ok := seenAddr[addr]; ok {
			dupAddrs = append(dupAddrs, fmt.Sprintf("%s (%s)", s.Name, addr))
		}
		seenAddr[addr] = struct{}{}

		if _, ok := seenName[s.Name]; ok {
			dupNames = append(dupNames, s.Name)
		}
		seenName[s.Name] = struct{}{}
	}

	if len(dupAddrs) > 0 {
		return invalid("duplicate DNS server addresses found:\n  - %s", strings.Join(dupAddrs, "\n  - "))
	}
	if len(dupNames) > 0 {
		c.warn("duplicate DNS server names found: %s", strings.Join(dupNames, ", "))
	}
	return nil
}

// Servers returns the candidate list for the probe engine, with
// addresses in canonical form.
func (c *Config) Servers() []autodns.Server {
	servers := make([]autodns.Server, 0, len(c.DNSServers))
	for _, s := range c.DNSServers {
		addr := strings.TrimSpace(s.Address)
		if a, err := netip.ParseAddr(addr); err == nil {
			addr = a.Unmap().String()
		}
		servers = append(servers, autodns.Server{Name: s.Name, Address: addr})
	}
	return servers
}

// Timeout returns the per-probe timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Interval returns the period between cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.ExecutionIntervalSeconds) * time.Second
}

func (c *Config) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
