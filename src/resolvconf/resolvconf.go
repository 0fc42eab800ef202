// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package resolvconf rewrites the nameserver entries of a resolv.conf file.
//
// Only "nameserver" lines are managed. Every other line (search, domain,
// options, comments) is kept as-is so that local resolver tuning
// survives an update.
package resolvconf

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
)

// DefaultPath is the system resolver configuration file.
const DefaultPath = "/etc/resolv.conf"

// header marks files written by this package. It is dropped and written
// again on every update.
const header = "# Generated by autodns; nameserver lines are managed automatically."

// Sentinel errors for the resolvconf package.
var (
	// ErrNotWritable is returned by [Manager.CheckPermissions] when the
	// file, or its directory when the file does not exist, is not writable.
	ErrNotWritable = errors.New("resolvconf: file is not writable")

	// ErrNoServers is returned when an update carries no addresses.
	ErrNoServers = errors.New("resolvconf: no nameservers to write")

	// ErrInvalidAddress is returned when an address is not an IP.
	ErrInvalidAddress = errors.New("resolvconf: invalid nameserver address")
)

// Manager owns one resolv.conf file.
type Manager struct {
	path string
}

// NewManager returns a [Manager] for path. An empty path means
// [DefaultPath].
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath
	}
	return &Manager{path: path}
}

// Path returns the managed file path.
func (m *Manager) Path() string { return m.path }

// CheckPermissions reports whether the file can be rewritten.
func (m *Manager) CheckPermissions() error {
	if st, err := os.Stat(m.path); err == nil && st.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotWritable, m.path)
	}
	if err := checkWritable(m.path); err != nil {
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	return nil
}

// UpdateDNSServers replaces the nameserver lines with addrs, in order.
// The file is created with mode 0644 if it does not exist; otherwise its
// mode is preserved.
func (m *Manager) UpdateDNSServers(addrs []string) error {
	if len(addrs) == 0 {
		return ErrNoServers
	}
	for _, addr := range addrs {
		if net.ParseIP(addr) == nil {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
	}

	existing, err := os.ReadFile(m.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", m.path, err)
	}

	mode := os.FileMode(0o644)
	if st, statErr := os.Stat(m.path); statErr == nil {
		mode = st.Mode().Perm()
	}

	content := Render(string(existing), addrs)
	if err := os.WriteFile(m.path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	return nil
}

// Servers returns the nameserver addresses currently in the file.
func (m *Manager) Servers() ([]string, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return nil, err
	}
	return ParseNameservers(string(b)), nil
}

// Render returns existing with its nameserver lines replaced by addrs.
func Render(existing string, addrs []string) string {
	var kept []string
	for _, line := range strings.Split(normalizeNewlines(existing), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == header || isNameserver(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	if rest := strings.Trim(strings.Join(kept, "\n"), "\n"); rest != "" {
		b.WriteString(rest)
		b.WriteString("\n")
	}

	for _, addr := range addrs {
		b.WriteString("nameserver ")
		b.WriteString(addr)
		b.WriteString("\n")
	}
	return b.String()
}

// ParseNameservers extracts the nameserver addresses from content,
// in file order.
func ParseNameservers(content string) []string {
	var servers []string
	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "nameserver" {
			servers = append(servers, fields[1])
		}
	}
	return servers
}

func isNameserver(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == "nameserver"
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
