package driver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-importer/internal/types"
)

// defaultYouratorPath is where the Yourator export is expected when no
// explicit file path is given.
const defaultYouratorPath = "./yourator.xlsx"

// youratorDateLayout matches the 投遞時間 cell format.
const youratorDateLayout = "2006-01-02 15:04:05"

// youratorFieldMapping maps the Yourator export's Chinese column headers to
// Record fields. Education and work-history columns land in the notes
// fields for lack of dedicated columns.
var youratorFieldMapping = map[string]string{
	"投遞編號":  "source_id",
	"求職者姓名": "full_name",
	"求職者信箱": "email",
	"求職者電話": "phone",
	"職位名稱":  "position_applied",
	"投遞時間":  "application_date",
	"投遞狀態":  "application_status",
	"履歷連結":  "resume_file",
	"簡介":    "recruiter_notes",
	"學歷一":   "technical_notes",
	"工作經歷一": "hr_notes",
}

// YouratorDriver imports candidates from a Yourator .xlsx export.
type YouratorDriver struct {
	filePath string
}

// NewYouratorDriver creates a Yourator driver reading the given Excel file,
// or ./yourator.xlsx when filePath is empty.
func NewYouratorDriver(filePath string) *YouratorDriver {
	if filePath == "" {
		filePath = defaultYouratorPath
	}
	return &YouratorDriver{filePath: filePath}
}

// Source returns the yourator source tag.
func (d *YouratorDriver) Source() types.Source { return types.SourceYourator }

// FetchRows reads the first sheet of the Excel file. The first row is the
// header row.
func (d *YouratorDriver) FetchRows(ctx context.Context) ([]Row, error) {
	if _, err := os.Stat(d.filePath); err != nil {
		return nil, fmt.Errorf("Excel file not found: %s", d.filePath)
	}

	f, err := excelize.OpenFile(d.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Yourator Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Yourator Excel file has no sheets: %s", d.filePath)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Yourator Excel sheet: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("Yourator Excel sheet is empty: %s", d.filePath)
	}

	headers := dedupeHeaders(raw[0])
	rows := make([]Row, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ToRecord maps one Yourator row to a Record.
func (d *YouratorDriver) ToRecord(row Row, index int) (*types.Record, error) {
	fields := applyMapping(youratorFieldMapping, row)
	if allEmpty(fields) {
		return nil, fmt.Errorf("row %d: %w", index, ErrEmptyRow)
	}

	appliedAt := parseYouratorDate(fields["application_date"])
	status := youratorApplicationStatus(fields["application_status"])
	delete(fields, "application_date")
	delete(fields, "application_status")

	rec := newRecord(types.SourceYourator, fields)
	rec.ApplicationDate = appliedAt
	rec.ApplicationStatus = status
	rec.Phone = cleanPhone(rec.Phone)
	return rec, nil
}

// ResolveLink is a no-op for Yourator; 履歷連結 cells hold literal URLs.
func (d *YouratorDriver) ResolveLink(context.Context, Row, int) (string, bool) {
	return "", false
}

func parseYouratorDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(youratorDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// youratorApplicationStatus converts the export's 投遞狀態 vocabulary. An
// unrecognized non-empty value defaults to applied.
func youratorApplicationStatus(s string) types.ApplicationStatus {
	switch strings.TrimSpace(s) {
	case "":
		return ""
	case "待審核", "pending", "submitted":
		return types.StatusApplied
	case "審核中", "reviewing", "screening":
		return types.StatusScreening
	case "面試", "interview", "interviewing":
		return types.StatusInterview
	case "錄取", "hired", "accepted":
		return types.StatusHired
	case "拒絕", "rejected", "declined":
		return types.StatusRejected
	default:
		return types.StatusApplied
	}
}
