package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"longsd/metrics"
)

// printSummary writes the end-of-run report.
func printSummary(w io.Writer, s metrics.Summary) {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w)
	header.Fprintf(w, "━━━ Run Summary ━━━\n")
	dim.Fprintf(w, "  run %s, version %s, %v\n\n", s.RunID, s.Version, s.Elapsed.Round(time.Millisecond))

	for _, d := range s.Documents {
		var icon string
		var clr *color.Color
		switch d.Status {
		case metrics.StatusSuccess:
			icon, clr = "✓", color.New(color.FgGreen)
		case metrics.StatusPartial:
			icon, clr = "!", color.New(color.FgYellow)
		default:
			icon, clr = "✗", color.New(color.FgRed)
		}

		clr.Fprintf(w, "  %s %s", icon, d.Name)
		dim.Fprintf(w, " - %s\n", documentDetail(d))
		if d.ErrorMsg != "" {
			clr.Fprintf(w, "    └─ %s\n", firstLine(d.ErrorMsg))
		}
	}

	fmt.Fprintln(w)
	failed := 0
	for _, d := range s.Documents {
		if d.Status != metrics.StatusSuccess {
			failed++
		}
	}
	line := fmt.Sprintf("%d documents, %d failed; %d tasks, %d errors",
		len(s.Documents), failed, s.Tasks.TotalProcessed, s.Tasks.TotalErrors)
	if s.Failed() {
		color.New(color.FgRed, color.Bold).Fprintf(w, "━━━ %s ━━━\n\n", line)
	} else {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "━━━ %s ━━━\n\n", line)
	}
}

func documentDetail(d metrics.DocumentRecord) string {
	parts := []string{
		fmt.Sprintf("%d/%d rendered", d.Rendered, d.Planned),
	}
	if d.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", d.Failed))
	}
	if len(d.Skipped) > 0 {
		parts = append(parts, "complete: "+strings.Join(d.Skipped, ","))
	}
	if d.Status == metrics.StatusError {
		parts = append(parts, "stopped at "+d.State)
	}
	if d.Output != "" {
		parts = append(parts, d.Output)
	}
	parts = append(parts, d.Duration.Round(time.Millisecond).String())
	return strings.Join(parts, ", ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
