package driver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-importer/internal/types"
)

// csvFieldMapping maps plain-CSV headers to Record fields. Several common
// aliases are accepted for the same field.
var csvFieldMapping = map[string]string{
	"id":                 "source_id",
	"name":               "full_name",
	"full_name":          "full_name",
	"email":              "email",
	"phone":              "phone",
	"resume":             "resume_file",
	"resume_file":        "resume_file",
	"position":           "position_applied",
	"position_applied":   "position_applied",
	"test_score":         "test_score",
	"test_url":           "test_url",
	"interview_status":   "interview_status",
	"application_status": "application_status",
	"recruiter_notes":    "recruiter_notes",
	"hr_notes":           "hr_notes",
	"technical_notes":    "technical_notes",
	"skills":             "skills",
	"experience":         "years_experience",
	"years_experience":   "years_experience",
}

// CSVDriver imports candidates from a local CSV file with English headers.
type CSVDriver struct {
	filePath string
}

// NewCSVDriver creates a CSV driver reading the given file.
func NewCSVDriver(filePath string) *CSVDriver {
	return &CSVDriver{filePath: filePath}
}

// Source returns the csv source tag.
func (d *CSVDriver) Source() types.Source { return types.SourceCSV }

// FetchRows reads and parses the CSV file.
func (d *CSVDriver) FetchRows(_ context.Context) ([]Row, error) {
	if d.filePath == "" {
		return nil, fmt.Errorf("CSV source requires a file path")
	}
	data, err := os.ReadFile(d.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", d.filePath, err)
	}
	rows, err := parseCSVRows(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file %s: %w", d.filePath, err)
	}
	return rows, nil
}

// ToRecord maps one CSV row to a Record. Status columns already use the
// normalized vocabulary; unrecognized values are dropped.
func (d *CSVDriver) ToRecord(row Row, index int) (*types.Record, error) {
	fields := applyMapping(csvFieldMapping, row)
	if allEmpty(fields) {
		return nil, fmt.Errorf("row %d: %w", index, ErrEmptyRow)
	}

	interview := csvInterviewStatus(fields["interview_status"])
	application := csvApplicationStatus(fields["application_status"])
	delete(fields, "interview_status")
	delete(fields, "application_status")

	rec := newRecord(types.SourceCSV, fields)
	rec.InterviewStatus = interview
	rec.ApplicationStatus = application
	return rec, nil
}

// ResolveLink is a no-op for CSV files.
func (d *CSVDriver) ResolveLink(context.Context, Row, int) (string, bool) {
	return "", false
}

func csvInterviewStatus(s string) types.InterviewStatus {
	switch types.InterviewStatus(strings.ToLower(strings.TrimSpace(s))) {
	case types.InterviewScheduled:
		return types.InterviewScheduled
	case types.InterviewCompleted:
		return types.InterviewCompleted
	case types.InterviewCancelled:
		return types.InterviewCancelled
	case types.InterviewPending:
		return types.InterviewPending
	case types.InterviewNotScheduled:
		return types.InterviewNotScheduled
	default:
		return ""
	}
}

func csvApplicationStatus(s string) types.ApplicationStatus {
	switch types.ApplicationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case types.StatusApplied:
		return types.StatusApplied
	case types.StatusScreening:
		return types.StatusScreening
	case types.StatusInterview:
		return types.StatusInterview
	case types.StatusOffer:
		return types.StatusOffer
	case types.StatusRejected:
		return types.StatusRejected
	case types.StatusHired:
		return types.StatusHired
	case types.StatusWithdrawn:
		return types.StatusWithdrawn
	default:
		return ""
	}
}
