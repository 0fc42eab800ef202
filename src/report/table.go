// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders probe batches for humans: a coloured terminal
// table, a latency summary and a spreadsheet export.
package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
)

var (
	bold    = color.New(color.Bold)
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	yellow  = color.New(color.FgYellow)
	faint   = color.New(color.Faint)
	columns = []string{"#", "NAME", "ADDRESS", "STATUS", "LATENCY", "SELECTED"}
)

// PrintResults writes a table of the batch to w. Servers in selection
// are marked with their position in the published list.
func PrintResults(w io.Writer, results []autodns.ProbeResult, selection []string) {
	nameWidth, addrWidth := len(columns[1]), len(columns[2])
	for _, r := range results {
		nameWidth = max(nameWidth, len(r.Name))
		addrWidth = max(addrWidth, len(r.Address))
	}

	bold.Fprintf(w, "%-3s %-*s %-*s %-8s %-10s %s\n",
		columns[0], nameWidth, columns[1], addrWidth, columns[2], columns[3], columns[4], columns[5])

	for i, r := range results {
		status := red.Sprintf("%-8s", "OFFLINE")
		if r.Online {
			status = green.Sprintf("%-8s", "ONLINE")
		}

		latency := faint.Sprintf("%-10s", "-")
		if ms, ok := r.LatencyMs(); ok {
			latency = fmt.Sprintf("%-10s", formatMs(ms))
		}

		selected := ""
		if pos := slices.Index(selection, r.Address); pos >= 0 {
			selected = yellow.Sprint(strconv.Itoa(pos + 1))
		}

		fmt.Fprintf(w, "%-3d %-*s %-*s %s %s %s\n",
			i+1, nameWidth, r.Name, addrWidth, r.Address, status, latency, selected)
	}
}

// PrintCycle writes the batch table followed by the online count and
// the cycle outcome.
func PrintCycle(w io.Writer, report autodns.CycleReport) {
	PrintResults(w, report.Results, report.Selection)
	fmt.Fprintln(w)

	online := report.OnlineCount()
	counter := green
	if online == 0 {
		counter = red
	}
	fmt.Fprintf(w, "%s DNS servers online\n", counter.Sprintf("%d/%d", online, len(report.Results)))

	if report.Mode == autodns.ModeBenchmark {
		if s, err := Summarize(report.Results); err == nil {
			PrintSummary(w, s)
		}
	}

	switch {
	case report.Published:
		fmt.Fprintf(w, "%s %v\n", green.Sprint("Published:"), report.Selection)
	case len(report.Selection) > 0 && report.Err == nil:
		fmt.Fprintf(w, "%s %v\n", yellow.Sprint("Selected (not published):"), report.Selection)
	case report.Err != nil:
		fmt.Fprintf(w, "%s %v\n", red.Sprint("Not published:"), report.Err)
	}
	fmt.Fprintf(w, "Completed in %s\n", report.Duration.Round(time.Millisecond))
}

// PrintSummary writes the latency statistics line.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Latency over %d servers: min %s, median %s, mean %s, p95 %s, max %s\n",
		s.Count, formatMs(s.Min), formatMs(s.Median), formatMs(s.Mean), formatMs(s.P95), formatMs(s.Max))
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 2, 64) + "ms"
}
