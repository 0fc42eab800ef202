// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command autodns keeps the system resolver file pointed at healthy DNS
// servers.
//
// Usage:
//
//	autodns [run]      # daemon: probe, select and publish on a fixed period
//	autodns check      # one reachability cycle
//	autodns benchmark  # one latency cycle, optionally exported to .xlsx
//	autodns status     # show the nameservers currently published
package main

import (
	"os"
)

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCommand(a).Execute(); err != nil {
		os.Exit(1)
	}
}
