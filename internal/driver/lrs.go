package driver

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-importer/internal/fetch"
	"github.com/jonathan/resume-importer/internal/types"
)

// LRS publishes its applicant tracker as a Google Sheet; rows are fetched
// through the sheet's CSV export endpoint.
const (
	lrsSpreadsheetID = "1mGpl2LzdXZlrKYXatWdAKQrI5SsagjTEen58xtjDNms"
	lrsSheetURL      = "https://docs.google.com/spreadsheets/d/" + lrsSpreadsheetID + "/export?format=csv&gid=127001815"

	// 履歷 is column D of the LRS sheet.
	lrsResumeColumnRange = "D:D"
)

// lrsFieldMapping maps the LRS sheet's Chinese column headers to Record
// fields.
var lrsFieldMapping = map[string]string{
	"編號":          "source_id",
	"名字":          "full_name",
	"作答email":     "email",
	"履歷":          "resume_file",
	"補充說明By LRS":  "recruiter_notes",
	"測驗結果":        "test_url",
	"筆試分數":        "test_score",
	"是否約面":        "interview_status",
	"補充說明 By集雅":   "hr_notes",
}

// LRSDriver imports candidates from the LRS Google Sheet. It is the only
// driver with real hyperlink resolution: the 履歷 column displays filenames
// whose true Drive URLs live in the cell metadata.
type LRSDriver struct {
	sheetURL string
	fetcher  *fetch.Client
	resolver LinkResolver

	// hyperlinks is populated lazily on the first ResolveLink call. A
	// failed lookup leaves an empty non-nil map so the API is not retried
	// per row.
	hyperlinks map[int]string
}

// NewLRSDriver creates an LRS driver. sheetURL overrides the default export
// URL when non-empty; resolver may be nil, which disables hyperlink
// resolution.
func NewLRSDriver(fetcher *fetch.Client, sheetURL string, resolver LinkResolver) *LRSDriver {
	if sheetURL == "" {
		sheetURL = lrsSheetURL
	}
	if fetcher == nil {
		fetcher = fetch.NewClient(nil)
	}
	return &LRSDriver{sheetURL: sheetURL, fetcher: fetcher, resolver: resolver}
}

// Source returns the lrs source tag.
func (d *LRSDriver) Source() types.Source { return types.SourceLRS }

// FetchRows downloads the sheet's CSV export and parses it.
func (d *LRSDriver) FetchRows(ctx context.Context) ([]Row, error) {
	result, err := d.fetcher.URL(ctx, d.sheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch LRS sheet: %w", err)
	}
	rows, err := parseCSVRows(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LRS sheet: %w", err)
	}
	return rows, nil
}

// ToRecord maps one LRS row to a Record.
func (d *LRSDriver) ToRecord(row Row, index int) (*types.Record, error) {
	fields := applyMapping(lrsFieldMapping, row)
	if allEmpty(fields) {
		return nil, fmt.Errorf("row %d: %w", index, ErrEmptyRow)
	}

	status := lrsInterviewStatus(fields["interview_status"])
	delete(fields, "interview_status")

	rec := newRecord(types.SourceLRS, fields)
	rec.InterviewStatus = status
	return rec, nil
}

// ResolveLink looks up the Drive URL behind the row's 履歷 cell. The whole
// column is fetched once and cached for the rest of the run. Any failure,
// including a missing resolver, reports no resolution rather than an error.
func (d *LRSDriver) ResolveLink(ctx context.Context, _ Row, index int) (string, bool) {
	if d.resolver == nil {
		return "", false
	}
	if d.hyperlinks == nil {
		links, err := d.resolver.ColumnHyperlinks(ctx, lrsSpreadsheetID, lrsResumeColumnRange)
		if err != nil || links == nil {
			links = map[int]string{}
		}
		d.hyperlinks = links
	}
	url, ok := d.hyperlinks[index]
	return url, ok
}

// lrsInterviewStatus converts the sheet's 是否約面 vocabulary to an
// InterviewStatus.
func lrsInterviewStatus(s string) types.InterviewStatus {
	switch s {
	case "":
		return ""
	case "是", "約面", "YES", "yes":
		return types.InterviewScheduled
	case "否", "NO", "no":
		return types.InterviewNotScheduled
	default:
		return types.InterviewPending
	}
}
