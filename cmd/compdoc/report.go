package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ursazoo/compdoc/pkg/pipeline"
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleFailure = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// printReport writes a per-file summary of a run. pathOf maps a document
// name to the file it was written to.
func printReport(w io.Writer, report *pipeline.Report, pathOf func(string) string) {
	var sb strings.Builder

	for _, f := range report.Files {
		if f.Success {
			sb.WriteString(styleSuccess.Render("✓ " + f.Component))
			sb.WriteString(" ")
			sb.WriteString(styleDim.Render("→ " + pathOf(f.Output)))
		} else {
			sb.WriteString(styleFailure.Render("✗ " + f.Path))
			sb.WriteString(" ")
			sb.WriteString(styleDim.Render(f.Err.Error()))
		}
		sb.WriteString("\n")
		for _, warning := range f.Warnings {
			sb.WriteString(styleWarning.Render("  ! " + warning))
			sb.WriteString("\n")
		}
	}

	if report.IndexErr != nil {
		sb.WriteString(styleFailure.Render("✗ index: " + report.IndexErr.Error()))
		sb.WriteString("\n")
	}
	if report.StageErr != nil {
		sb.WriteString(styleWarning.Render("! " + report.StageErr.Error()))
		sb.WriteString("\n")
	}

	summary := fmt.Sprintf("processed %d component files, %d failed (%dms)",
		report.Processed, report.Failed, report.Duration.Milliseconds())
	if report.Success() {
		sb.WriteString(styleHeader.Render(summary))
	} else {
		sb.WriteString(styleFailure.Render(summary))
	}
	sb.WriteString("\n")

	fmt.Fprint(w, sb.String())
}

// printCheck writes the stale pages of a check run and returns their count.
func printCheck(w io.Writer, report *pipeline.Report, withDiff bool) int {
	var sb strings.Builder
	stale := report.Stale()

	for _, f := range report.Files {
		if f.Err != nil {
			sb.WriteString(styleFailure.Render("✗ " + f.Path))
			sb.WriteString(" ")
			sb.WriteString(styleDim.Render(f.Err.Error()))
			sb.WriteString("\n")
		}
	}
	for _, f := range stale {
		sb.WriteString(styleWarning.Render("~ " + f.Component))
		sb.WriteString(" ")
		sb.WriteString(styleDim.Render("out of date"))
		sb.WriteString("\n")
		if withDiff {
			sb.WriteString(f.Diff)
			if !strings.HasSuffix(f.Diff, "\n") {
				sb.WriteString("\n")
			}
		}
	}

	if len(stale) == 0 && report.Success() {
		sb.WriteString(styleSuccess.Render(fmt.Sprintf("✓ %d component docs up to date", len(report.Files))))
	} else {
		sb.WriteString(styleHeader.Render(fmt.Sprintf("%d of %d component docs out of date", len(stale), len(report.Files))))
	}
	sb.WriteString("\n")

	fmt.Fprint(w, sb.String())
	return len(stale)
}
