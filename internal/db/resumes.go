package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-importer/internal/types"
)

// ErrNoNaturalKey rejects a record with no identifying field at all; such a
// record cannot be upserted stably.
var ErrNoNaturalKey = errors.New("record has no natural key (source_id, email, or full_name)")

// timeLayout is the text format for stored timestamps.
const timeLayout = time.RFC3339

// StoredResume is a resume record as persisted, with store metadata.
type StoredResume struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	types.Record
}

// NaturalKey derives the stable upsert key for a record: the source-assigned
// ID when present, else the lowercased email, else the case-folded trimmed
// full name. The pair (source, natural key) is unique in the store, so
// re-importing an unchanged source updates rows in place.
func NaturalKey(rec *types.Record) (string, error) {
	if rec.SourceID != "" {
		return rec.SourceID, nil
	}
	if rec.Email != "" {
		return strings.ToLower(rec.Email), nil
	}
	if name := strings.ToLower(strings.TrimSpace(rec.FullName)); name != "" {
		return name, nil
	}
	return "", ErrNoNaturalKey
}

// UpsertResume writes a record keyed by (source, natural key), returning the
// stored row id and whether a new row was inserted. On conflict every data
// column and updated_at are replaced; id and created_at are preserved.
func (d *DB) UpsertResume(ctx context.Context, rec *types.Record) (id int64, inserted bool, err error) {
	key, err := NaturalKey(rec)
	if err != nil {
		return 0, false, err
	}

	extras := "{}"
	if len(rec.Extras) > 0 {
		b, err := json.Marshal(rec.Extras)
		if err != nil {
			return 0, false, fmt.Errorf("failed to marshal extras: %w", err)
		}
		extras = string(b)
	}

	now := time.Now().UTC().Format(timeLayout)

	var existing int64
	err = d.pool.QueryRowContext(ctx,
		`SELECT id FROM resumes WHERE source = ? AND natural_key = ?;`,
		string(rec.Source), key,
	).Scan(&existing)

	switch {
	case err == nil:
		_, err = d.pool.ExecContext(ctx, `
UPDATE resumes SET
  source_id = ?, full_name = ?, email = ?, phone = ?, resume_file = ?,
  position_applied = ?, application_date = ?, test_score = ?, test_url = ?,
  interview_status = ?, interview_date = ?, application_status = ?,
  recruiter_notes = ?, hr_notes = ?, technical_notes = ?,
  years_experience = ?, skills = ?, extras = ?, updated_at = ?
WHERE id = ?;`,
			rec.SourceID, rec.FullName, rec.Email, rec.Phone, rec.ResumeFile,
			rec.PositionApplied, nullableTime(rec.ApplicationDate), nullableFloat(rec.TestScore), rec.TestURL,
			string(rec.InterviewStatus), nullableTime(rec.InterviewDate), string(rec.ApplicationStatus),
			rec.RecruiterNotes, rec.HRNotes, rec.TechnicalNotes,
			nullableInt(rec.YearsExperience), rec.Skills, extras, now,
			existing,
		)
		if err != nil {
			return 0, false, fmt.Errorf("failed to update resume: %w", err)
		}
		return existing, false, nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := d.pool.ExecContext(ctx, `
INSERT INTO resumes (
  source, natural_key, source_id, full_name, email, phone, resume_file,
  position_applied, application_date, test_score, test_url,
  interview_status, interview_date, application_status,
  recruiter_notes, hr_notes, technical_notes,
  years_experience, skills, extras, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			string(rec.Source), key, rec.SourceID, rec.FullName, rec.Email, rec.Phone, rec.ResumeFile,
			rec.PositionApplied, nullableTime(rec.ApplicationDate), nullableFloat(rec.TestScore), rec.TestURL,
			string(rec.InterviewStatus), nullableTime(rec.InterviewDate), string(rec.ApplicationStatus),
			rec.RecruiterNotes, rec.HRNotes, rec.TechnicalNotes,
			nullableInt(rec.YearsExperience), rec.Skills, extras, now, now,
		)
		if err != nil {
			return 0, false, fmt.Errorf("failed to insert resume: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("failed to read inserted id: %w", err)
		}
		return id, true, nil

	default:
		return 0, false, fmt.Errorf("failed to look up resume: %w", err)
	}
}

// ListOpts filters ListResumes.
type ListOpts struct {
	Source string
	Limit  int
}

// ListResumes retrieves stored records, newest first.
func (d *DB) ListResumes(ctx context.Context, opts ListOpts) ([]StoredResume, error) {
	query := `
SELECT id, source, source_id, full_name, email, phone, resume_file,
       position_applied, application_date, test_score, test_url,
       interview_status, interview_date, application_status,
       recruiter_notes, hr_notes, technical_notes,
       years_experience, skills, extras, created_at, updated_at
FROM resumes`
	args := []any{}
	if opts.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := d.pool.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []StoredResume
	for rows.Next() {
		sr, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return out, nil
}

// CountResumes counts stored records, optionally filtered by source.
func (d *DB) CountResumes(ctx context.Context, source string) (int, error) {
	query := `SELECT COUNT(*) FROM resumes`
	args := []any{}
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}

	var n int
	if err := d.pool.QueryRowContext(ctx, query+";", args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}

func scanResume(rows *sql.Rows) (StoredResume, error) {
	var (
		sr        StoredResume
		source    string
		appDate   sql.NullString
		testScore sql.NullFloat64
		intStatus string
		intDate   sql.NullString
		appStatus string
		years     sql.NullInt64
		extras    string
		createdAt string
		updatedAt string
	)

	err := rows.Scan(
		&sr.ID, &source, &sr.SourceID, &sr.FullName, &sr.Email, &sr.Phone, &sr.ResumeFile,
		&sr.PositionApplied, &appDate, &testScore, &sr.TestURL,
		&intStatus, &intDate, &appStatus,
		&sr.RecruiterNotes, &sr.HRNotes, &sr.TechnicalNotes,
		&years, &sr.Skills, &extras, &createdAt, &updatedAt,
	)
	if err != nil {
		return StoredResume{}, fmt.Errorf("failed to scan resume: %w", err)
	}

	sr.Source = types.Source(source)
	sr.InterviewStatus = types.InterviewStatus(intStatus)
	sr.ApplicationStatus = types.ApplicationStatus(appStatus)
	sr.ApplicationDate = parseStoredTime(appDate)
	sr.InterviewDate = parseStoredTime(intDate)
	if testScore.Valid {
		v := testScore.Float64
		sr.TestScore = &v
	}
	if years.Valid {
		v := int(years.Int64)
		sr.YearsExperience = &v
	}
	if extras != "" && extras != "{}" {
		_ = json.Unmarshal([]byte(extras), &sr.Extras)
	}
	sr.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	sr.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return sr, nil
}

func parseStoredTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
