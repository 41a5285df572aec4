package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-importer/internal/fetch"
	"github.com/jonathan/resume-importer/internal/types"
)

// Cake applications are tracked in a shared Google Sheet; rows are fetched
// through the sheet's CSV export endpoint.
const (
	cakeSpreadsheetID = "1hinp7M0dyMdL6bnoq4hRv4iHuwa9CuZzd8Xs8pdwoOo"
	cakeSheetURL      = "https://docs.google.com/spreadsheets/d/" + cakeSpreadsheetID + "/export?format=csv&gid=341040725"
)

// cakeFieldMapping maps the Cake sheet's mixed Chinese/English headers to
// Record fields. The sheet carries 是否約面 twice; the export dedupes the
// second occurrence to "是否約面.1" and it serves as a backup column.
var cakeFieldMapping = map[string]string{
	"名字":      "full_name",
	"email":   "email",
	"分數":      "test_score",
	"測驗結果":    "test_url",
	"履歷":      "resume_file",
	"是否約面":    "interview_status",
	"是否約面.1":  "interview_status_2",
	"職缺":      "position_applied",
	"補充說明":    "recruiter_notes",
	"Comment": "hr_notes",
	"FROM":    "source_id",
}

// CakeDriver imports candidates from the Cake job-board sheet.
type CakeDriver struct {
	sheetURL string
	fetcher  *fetch.Client
}

// NewCakeDriver creates a Cake driver. sheetURL overrides the default export
// URL when non-empty.
func NewCakeDriver(fetcher *fetch.Client, sheetURL string) *CakeDriver {
	if sheetURL == "" {
		sheetURL = cakeSheetURL
	}
	if fetcher == nil {
		fetcher = fetch.NewClient(nil)
	}
	return &CakeDriver{sheetURL: sheetURL, fetcher: fetcher}
}

// Source returns the cake source tag.
func (d *CakeDriver) Source() types.Source { return types.SourceCake }

// FetchRows downloads the sheet's CSV export and parses it.
func (d *CakeDriver) FetchRows(ctx context.Context) ([]Row, error) {
	result, err := d.fetcher.URL(ctx, d.sheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Cake sheet: %w", err)
	}
	rows, err := parseCSVRows(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Cake sheet: %w", err)
	}
	return rows, nil
}

// ToRecord maps one Cake row to a Record. Scores arrive as percentage
// strings ("87%"); the two interview columns are checked in order with the
// first non-empty value winning.
func (d *CakeDriver) ToRecord(row Row, index int) (*types.Record, error) {
	fields := applyMapping(cakeFieldMapping, row)
	if allEmpty(fields) {
		return nil, fmt.Errorf("row %d: %w", index, ErrEmptyRow)
	}

	rawStatus := fields["interview_status"]
	if rawStatus == "" {
		rawStatus = fields["interview_status_2"]
	}
	status := cakeInterviewStatus(rawStatus)
	delete(fields, "interview_status")
	delete(fields, "interview_status_2")

	rec := newRecord(types.SourceCake, fields)
	rec.InterviewStatus = status
	return rec, nil
}

// ResolveLink is a no-op for Cake; the sheet cells carry literal values.
func (d *CakeDriver) ResolveLink(context.Context, Row, int) (string, bool) {
	return "", false
}

// cakeInterviewStatus converts the Cake sheet's interview vocabulary,
// including the boolean strings the sheet checkboxes export.
func cakeInterviewStatus(s string) types.InterviewStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "true", "yes", "是", "約面":
		return types.InterviewScheduled
	case "false", "no", "否":
		return types.InterviewNotScheduled
	default:
		return types.InterviewPending
	}
}
