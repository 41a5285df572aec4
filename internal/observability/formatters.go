// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// maxDefectsToShow is the default number of defects to display in summaries
	maxDefectsToShow = 10
	// dividerWidth is the width of record separators
	dividerWidth = 80
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Printf writes a formatted line through the printer.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// PrintDefects lists the first maxDefectsToShow defects with a trailer for
// the rest.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDefects(defects []types.Defect) {
	if len(defects) == 0 {
		return
	}

	fmt.Fprintf(p.out, "Found %d validation defects:\n", len(defects))
	count := min(len(defects), maxDefectsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(p.out, "  %s\n", defects[i])
	}
	if len(defects) > maxDefectsToShow {
		fmt.Fprintf(p.out, "  ... and %d more\n", len(defects)-maxDefectsToShow)
	}
}

// PrintSummary outputs the final import run summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(result *types.ImportResult) {
	fmt.Fprintf(p.out, "\nImport summary (%s, run %s):\n", result.Source, result.RunID)
	fmt.Fprintf(p.out, "  Rows processed:    %d\n", result.TotalRows)
	fmt.Fprintf(p.out, "  Records persisted: %d (%d new, %d updated)\n", result.Persisted, result.Inserted, result.Updated)
	fmt.Fprintf(p.out, "  Rows with defects: %d\n", result.RowsWithDefects)
	fmt.Fprintf(p.out, "  Rows failed:       %d\n", len(result.RowErrors))
	if result.BackupsCreated > 0 || result.BackupErrors > 0 {
		fmt.Fprintf(p.out, "  Backups created:   %d (%d failed)\n", result.BackupsCreated, result.BackupErrors)
	}
}

// PrintValidationSummary outputs the summary for a validate-only run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationSummary(result *types.ImportResult) {
	fmt.Fprintf(p.out, "\nValidation summary (%s):\n", result.Source)
	fmt.Fprintf(p.out, "  Total records:     %d\n", result.TotalRows)
	fmt.Fprintf(p.out, "  Valid records:     %d\n", result.Converted-result.RowsWithDefects)
	fmt.Fprintf(p.out, "  Records w/defects: %d\n", result.RowsWithDefects)
	fmt.Fprintf(p.out, "  Rows failed:       %d\n", len(result.RowErrors))

	if len(result.Defects) == 0 && len(result.RowErrors) == 0 {
		fmt.Fprintf(p.out, "\nAll data is valid.\n")
		return
	}
	fmt.Fprintln(p.out)
	for _, d := range result.Defects {
		fmt.Fprintf(p.out, "  %s\n", d)
	}
	for _, e := range result.RowErrors {
		fmt.Fprintf(p.out, "  %s\n", e)
	}
}

// PrintStoredResume outputs one stored record in show-data format.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStoredResume(index int, sr db.StoredResume) {
	fmt.Fprintf(p.out, "Record %d:\n", index)
	fmt.Fprintf(p.out, "  ID: %d\n", sr.ID)
	fmt.Fprintf(p.out, "  Name: %s\n", sr.FullName)
	fmt.Fprintf(p.out, "  Email: %s\n", sr.Email)
	fmt.Fprintf(p.out, "  Phone: %s\n", sr.Phone)
	fmt.Fprintf(p.out, "  Resume File: %s\n", sr.ResumeFile)
	fmt.Fprintf(p.out, "  Position Applied: %s\n", sr.PositionApplied)
	if sr.TestScore != nil {
		fmt.Fprintf(p.out, "  Test Score: %g\n", *sr.TestScore)
	}
	if sr.InterviewStatus != "" {
		fmt.Fprintf(p.out, "  Interview Status: %s\n", sr.InterviewStatus)
	}
	if sr.ApplicationStatus != "" {
		fmt.Fprintf(p.out, "  Application Status: %s\n", sr.ApplicationStatus)
	}
	fmt.Fprintf(p.out, "  Source: %s\n", sr.Source)
	fmt.Fprintf(p.out, "  Created: %s\n", sr.CreatedAt.Format("2006-01-02 15:04:05"))
	if sr.RecruiterNotes != "" {
		fmt.Fprintf(p.out, "  Recruiter Notes: %s\n", sr.RecruiterNotes)
	}
	if sr.HRNotes != "" {
		fmt.Fprintf(p.out, "  HR Notes: %s\n", sr.HRNotes)
	}
	fmt.Fprintln(p.out, strings.Repeat("-", dividerWidth))
}
