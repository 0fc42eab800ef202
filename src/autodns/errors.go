// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package autodns

import "errors"

// Sentinel errors for the autodns package.
var (
	// ErrNoServers is returned when no DNS servers are configured.
	ErrNoServers = errors.New("autodns: no DNS servers configured")

	// ErrUnknownMode is returned for an operation mode other than
	// "firstonline" or "benchmark".
	ErrUnknownMode = errors.New("autodns: unknown operation mode")

	// ErrEmptySelection is reported when no server qualified in a cycle.
	// The publisher is not called in that case.
	ErrEmptySelection = errors.New("autodns: no online DNS servers")

	// ErrPermission is returned by [Scheduler.Run] when the publisher's
	// permission check fails at startup.
	ErrPermission = errors.New("autodns: insufficient permissions")

	// ErrPublish wraps a publisher failure in a [CycleReport].
	ErrPublish = errors.New("autodns: failed to publish DNS servers")

	// ErrInternalPanic is used when a panic is recovered inside a probe.
	ErrInternalPanic = errors.New("autodns: internal panic recovered")

	// ErrDNSTimeout is used when a probe exceeds the configured timeout.
	ErrDNSTimeout = errors.New("autodns: DNS query timed out")

	// ErrUnexpectedRcode is used when a server answers with a
	// response code other than NOERROR.
	ErrUnexpectedRcode = errors.New("autodns: unexpected response code")

	// ErrEmptyAnswer is used when a server answers without records.
	ErrEmptyAnswer = errors.New("autodns: empty answer")

	// ErrInvalidDomain is returned when the probe target is not a valid
	// domain name.
	ErrInvalidDomain = errors.New("autodns: invalid domain name")
)
