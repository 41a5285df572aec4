package driver

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-importer/internal/types"
)

// parseCSVRows parses CSV bytes into rows keyed by header. A repeated header
// gets a ".1", ".2", ... suffix so both columns stay addressable, matching
// the naming the Cake sheet export relies on.
func parseCSVRows(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	headers := dedupeHeaders(records[0])

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
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

func dedupeHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			headers[i] = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
			headers[i] = h
		}
	}
	return headers
}

// applyMapping projects a raw row through a source header table, producing a
// record-field → value map. Headers absent from the table are ignored. When
// several source headers map to the same field (CSV aliases), the first
// non-empty value wins.
func applyMapping(mapping map[string]string, row Row) map[string]string {
	fields := make(map[string]string, len(mapping))
	for srcField, recField := range mapping {
		value, ok := row[srcField]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if fields[recField] == "" {
			fields[recField] = value
		}
	}
	return fields
}

func allEmpty(fields map[string]string) bool {
	for _, v := range fields {
		if v != "" {
			return false
		}
	}
	return true
}

// parseScore parses a test score cell. A trailing "%" is stripped (Cake
// exports scores as percentages). Unparseable values yield nil, not an
// error.
func parseScore(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseYears(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// newRecord fills the common Record fields from a mapped field set. Keys the
// caller already consumed (statuses, dates) must be deleted beforehand;
// anything left over lands in Extras.
func newRecord(source types.Source, fields map[string]string) *types.Record {
	consume := func(key string) string {
		v := fields[key]
		delete(fields, key)
		return v
	}

	rec := &types.Record{Source: source}
	rec.SourceID = consume("source_id")
	rec.FullName = consume("full_name")
	rec.Email = strings.ToLower(consume("email"))
	rec.Phone = consume("phone")
	rec.ResumeFile = consume("resume_file")
	rec.PositionApplied = consume("position_applied")
	rec.TestURL = consume("test_url")
	rec.RecruiterNotes = consume("recruiter_notes")
	rec.HRNotes = consume("hr_notes")
	rec.TechnicalNotes = consume("technical_notes")
	rec.Skills = consume("skills")
	rec.TestScore = parseScore(consume("test_score"))
	rec.YearsExperience = parseYears(consume("years_experience"))

	for k, v := range fields {
		if v == "" {
			continue
		}
		if rec.Extras == nil {
			rec.Extras = make(map[string]string)
		}
		rec.Extras[k] = v
	}
	return rec
}

// cleanPhone strips common phone formatting characters.
func cleanPhone(s string) string {
	replacer := strings.NewReplacer("(", "", ")", "", "-", "", " ", "")
	return replacer.Replace(strings.TrimSpace(s))
}
