// Package sheets provides best-effort hyperlink resolution against the
// Google Sheets API. Sheet cells often display a bare filename while the
// true Drive URL lives only in the cell's rich metadata; this package digs
// it out. Resolution is an enhancement layered on a working filename-only
// path: failures degrade, they never abort an import.
package sheets

import (
	"context"
	"fmt"
	"regexp"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// gridFields restricts the grid-data response to the cell properties that
// can carry a hyperlink.
const gridFields = "sheets(data(rowData(values(hyperlink,userEnteredValue,textFormatRuns))))"

// hyperlinkFormula matches HYPERLINK("url", "display") and HYPERLINK("url").
var hyperlinkFormula = regexp.MustCompile(`HYPERLINK\("([^"]+)"`)

// Client wraps a Sheets API service for hyperlink lookups.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient creates a sheets client authenticated with the given service
// account credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ColumnHyperlinks fetches one column of a spreadsheet with grid data and
// returns the hyperlink targets found, keyed by 0-based data row index (the
// header row is excluded). Rows without a hyperlink are simply absent.
func (c *Client) ColumnHyperlinks(ctx context.Context, spreadsheetID, columnRange string) (map[int]string, error) {
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Ranges(columnRange).
		IncludeGridData(true).
		Fields(gridFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid data for %s: %w", columnRange, err)
	}

	links := make(map[int]string)
	if len(resp.Sheets) == 0 || len(resp.Sheets[0].Data) == 0 {
		return links, nil
	}

	rowData := resp.Sheets[0].Data[0].RowData
	if len(rowData) < 2 {
		return links, nil
	}

	// Skip the header row.
	for i, row := range rowData[1:] {
		if row == nil || len(row.Values) == 0 {
			continue
		}
		if url := extractHyperlink(row.Values[0]); url != "" {
			links[i] = url
		}
	}
	return links, nil
}

// extractHyperlink checks the cell properties that can carry a link, in
// order: the direct hyperlink, a HYPERLINK formula, and formatted text runs.
func extractHyperlink(cell *sheetsapi.CellData) string {
	if cell == nil {
		return ""
	}

	if cell.Hyperlink != "" {
		return cell.Hyperlink
	}

	if cell.UserEnteredValue != nil && cell.UserEnteredValue.FormulaValue != nil {
		if m := hyperlinkFormula.FindStringSubmatch(*cell.UserEnteredValue.FormulaValue); m != nil {
			return m[1]
		}
	}

	for _, run := range cell.TextFormatRuns {
		if run != nil && run.Format != nil && run.Format.Link != nil && run.Format.Link.Uri != "" {
			return run.Format.Link.Uri
		}
	}

	return ""
}
