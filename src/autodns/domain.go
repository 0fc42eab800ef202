// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// IsValidDomain reports whether domain is a syntactically valid domain name
// in its ASCII form.
//
// A valid domain must have at least two labels separated by dots,
// each label must be 1-63 characters long, contain only ASCII
// letters, digits, or hyphens, and must not start or end with a hyphen.
// The TLD (last label) must contain only letters unless it is an
// IDNA "xn--" label.
func IsValidDomain(domain string) bool {
	domain = strings.TrimSuffix(domain, ".")
	if domain == "" || len(domain) > 253 {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for i, label := range labels {
		if len(label) < 1 || len(label) > 63 {
			return false
		}

		// Labels must not start or end with a hyphen.
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}

		isTLD := i == len(labels)-1
		punycode := strings.HasPrefix(strings.ToLower(label), "xn--")

		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z':
				// ok
			case c >= 'A' && c <= 'Z':
				// ok
			case c >= '0' && c <= '9', c == '-':
				if isTLD && !punycode {
					return false // TLD must be letters only.
				}
			default:
				return false
			}
		}
	}

	return true
}

// NormalizeDomain lowercases, trims and converts domain to its ASCII
// (punycode) form, then validates it with [IsValidDomain].
func NormalizeDomain(domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidDomain, domain, err)
	}

	if !IsValidDomain(ascii) {
		return "", fmt.Errorf("%w: %s", ErrInvalidDomain, domain)
	}
	return ascii, nil
}
