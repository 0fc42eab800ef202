// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"github.com/H0llyW00dzZ/autodns/src/autodns"
)

// Sheet names used by [ExportXLSX].
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

var resultsHeader = []any{"#", "Name", "Address", "Online", "Latency (ms)", "Selected"}

// ExportXLSX writes the cycle batch to a spreadsheet at path. The
// Results sheet has one row per server in configured order; the Summary
// sheet carries the cycle metadata and latency statistics.
func ExportXLSX(path string, report autodns.CycleReport) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	idx, err := f.NewSheet(ResultsSheet)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := writeResults(f, report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := writeSummary(f, report); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: failed to save %s: %w", path, err)
	}
	return nil
}

func writeResults(f *excelize.File, report autodns.CycleReport) error {
	if err := f.SetSheetRow(ResultsSheet, "A1", &resultsHeader); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ResultsSheet, "A1", "F1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(ResultsSheet, "B", "C", 24); err != nil {
		return err
	}

	for i, r := range report.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		var latency any = "-"
		if ms, ok := r.LatencyMs(); ok {
			latency = math.Round(ms*1000) / 1000
		}

		var selected any = "-"
		if pos := slices.Index(report.Selection, r.Address); pos >= 0 {
			selected = pos + 1
		}

		row := []any{i + 1, r.Name, r.Address, r.Online, latency, selected}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, report autodns.CycleReport) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	status := "not published"
	if report.Published {
		status = "published"
	}
	if report.Err != nil {
		status = report.Err.Error()
	}

	rows := [][]any{
		{"Mode", string(report.Mode)},
		{"Started", report.Started.UTC().Format(time.RFC3339)},
		{"Duration (ms)", report.Duration.Milliseconds()},
		{"Online", fmt.Sprintf("%d/%d", report.OnlineCount(), len(report.Results))},
		{"Selection", fmt.Sprint(report.Selection)},
		{"Status", status},
	}

	s, err := Summarize(report.Results)
	switch {
	case err == nil:
		rows = append(rows,
			[]any{"Latency min (ms)", s.Min},
			[]any{"Latency median (ms)", s.Median},
			[]any{"Latency mean (ms)", s.Mean},
			[]any{"Latency p95 (ms)", s.P95},
			[]any{"Latency max (ms)", s.Max},
		)
	case !errors.Is(err, stats.EmptyInputErr):
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 22)
}
