// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
	"github.com/H0llyW00dzZ/autodns/src/config"
)

// document renders a configuration with a resolv.conf path inside a
// temporary directory so the parent directory check passes.
func document(t *testing.T, body string) string {
	t.Helper()
	resolv := filepath.Join(t.TempDir(), "resolv.conf")
	return body + fmt.Sprintf("\nresolv_conf_path: %q\n", resolv)
}

const validBody = `
dns_servers:
  - name: "Cloudflare-1"
    address: "1.1.1.1"
  - name: "Google-1"
    address: "8.8.8.8"
mode: "firstonline"
execution_interval_seconds: 120
`

func TestParseValid(t *testing.T) {
	cfg, err := config.Parse([]byte(document(t, validBody)))
	require.NoError(t, err)

	assert.Equal(t, autodns.ModeFirstOnline, cfg.Mode)
	assert.Equal(t, 120*time.Second, cfg.Interval())
	assert.Equal(t, 2*time.Second, cfg.Timeout(), "timeout_seconds defaults to 2")
	assert.Equal(t, config.DefaultSelectCount, cfg.SelectCount)
	assert.Equal(t, config.DefaultTestDomain, cfg.TestDomain)
	assert.Empty(t, cfg.MetricsListen)
	assert.Empty(t, cfg.Warnings)

	assert.Equal(t, []autodns.Server{
		{Name: "Cloudflare-1", Address: "1.1.1.1"},
		{Name: "Google-1", Address: "8.8.8.8"},
	}, cfg.Servers())
}

func TestParseDefaultResolvConfPath(t *testing.T) {
	// /etc exists on every unix test host.
	if _, err := os.Stat("/etc"); err != nil {
		t.Skip("/etc not available")
	}
	cfg, err := config.Parse([]byte(validBody))
	require.NoError(t, err)
	assert.Equal(t, "/etc/resolv.conf", cfg.ResolvConfPath)
}

func TestParseAllFields(t *testing.T) {
	body := `
dns_servers:
  - name: "Quad9"
    address: "9.9.9.9"
  - name: "Cloudflare-v6"
    address: "2606:4700:4700::1111"
mode: "benchmark"
execution_interval_seconds: 1800
timeout_seconds: 3
select_count: 1
test_domain: "Example.ORG"
metrics_listen: "127.0.0.1:9153"
`
	cfg, err := config.Parse([]byte(document(t, body)))
	require.NoError(t, err)

	assert.Equal(t, autodns.ModeBenchmark, cfg.Mode)
	assert.Equal(t, 30*time.Minute, cfg.Interval())
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, 1, cfg.SelectCount)
	assert.Equal(t, "127.0.0.1:9153", cfg.MetricsListen)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, "2606:4700:4700::1111", cfg.Servers()[1].Address)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "no servers",
			body: "dns_servers: []\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "at least one DNS server",
		},
		{
			name: "zero interval",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 0\n",
			want: "execution_interval_seconds must be greater than 0",
		},
		{
			name: "zero timeout",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\ntimeout_seconds: 0\n",
			want: "timeout_seconds must be greater than 0",
		},
		{
			name: "unknown mode",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: fastest\nexecution_interval_seconds: 120\n",
			want: "mode must be",
		},
		{
			name: "missing mode",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nexecution_interval_seconds: 120\n",
			want: "mode must be",
		},
		{
			name: "invalid address",
			body: "dns_servers:\n  - {name: a, address: 999.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "invalid IP address",
		},
		{
			name: "hostname address",
			body: "dns_servers:\n  - {name: a, address: dns.google}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "invalid IP address",
		},
		{
			name: "empty name",
			body: "dns_servers:\n  - {name: '', address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "name cannot be empty",
		},
		{
			name: "duplicate address",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: b, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "duplicate DNS server addresses",
		},
		{
			name: "select count",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\nselect_count: 0\n",
			want: "select_count must be at least 1",
		},
		{
			name: "test domain",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\ntest_domain: localhost\n",
			want: "test_domain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(document(t, tt.body)))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseResolvConfPathErrors(t *testing.T) {
	base := "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\n"

	_, err := config.Parse([]byte(base + "resolv_conf_path: ''\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "resolv_conf_path cannot be empty")

	missing := filepath.Join(t.TempDir(), "missing", "resolv.conf")
	_, err = config.Parse([]byte(base + fmt.Sprintf("resolv_conf_path: %q\n", missing)))
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "parent directory does not exist")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse([]byte(document(t, validBody+"retries: 3\n")))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("dns_servers: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseWarnings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single server",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "at least 2 are recommended",
		},
		{
			name: "short interval",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: b, address: 1.0.0.1}\nmode: firstonline\nexecution_interval_seconds: 10\n",
			want: "very short",
		},
		{
			name: "long timeout",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: b, address: 1.0.0.1}\nmode: firstonline\nexecution_interval_seconds: 120\ntimeout_seconds: 15\n",
			want: "very long",
		},
		{
			name: "duplicate names",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: a, address: 1.0.0.1}\nmode: firstonline\nexecution_interval_seconds: 120\n",
			want: "duplicate DNS server names found: a",
		},
		{
			name: "firstonline long interval",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: b, address: 1.0.0.1}\nmode: firstonline\nexecution_interval_seconds: 600\n",
			want: "in firstonline mode",
		},
		{
			name: "benchmark short interval",
			body: "dns_servers:\n  - {name: a, address: 1.1.1.1}\n  - {name: b, address: 1.0.0.1}\nmode: benchmark\nexecution_interval_seconds: 120\n",
			want: "in benchmark mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(document(t, tt.body)))
			require.NoError(t, err)
			require.NotEmpty(t, cfg.Warnings)
			assert.Contains(t, strings.Join(cfg.Warnings, "\n"), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document(t, validBody)), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.DNSServers, 2)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServersCanonicalAddress(t *testing.T) {
	cfg := &config.Config{
		DNSServers: []config.DNSServer{
			{Name: "mapped", Address: "::ffff:1.1.1.1"},
			{Name: "spaced", Address: " 8.8.8.8 "},
		},
	}
	assert.Equal(t, []autodns.Server{
		{Name: "mapped", Address: "1.1.1.1"},
		{Name: "spaced", Address: "8.8.8.8"},
	}, cfg.Servers())
}
