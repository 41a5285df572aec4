// Package pipeline provides the high-level orchestration for resume imports:
// fetch rows from a source driver, convert them to normalized records,
// validate, persist, and back up referenced resume files.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-importer/internal/backup"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/driver"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/jonathan/resume-importer/internal/validation"
)

// RunOptions contains all options for an import run
type RunOptions struct {
	// Driver reads and converts rows from one source. Required.
	Driver driver.Driver

	// DB receives the converted records. Required unless ValidateOnly.
	DB *db.DB

	// Backups archives referenced resume files after each persist. A nil
	// store disables backups.
	Backups *backup.Store

	// SkipValidation suppresses the validation stage entirely.
	SkipValidation bool

	// ValidateOnly stops the run after validation, touching neither the
	// database nor the backup tree.
	ValidateOnly bool

	// Printer receives progress output in verbose mode. Nil is silent.
	Printer *observability.Printer
}

// Run executes one import for a single source. Row-level problems (a row
// that cannot convert, a record with no natural key, a failed backup) are
// collected in the result and never abort the run; only a failed fetch or a
// database error outside a single upsert is fatal.
func Run(ctx context.Context, opts RunOptions) (*types.ImportResult, error) {
	if opts.Driver == nil {
		return nil, fmt.Errorf("pipeline requires a source driver")
	}
	if opts.DB == nil && !opts.ValidateOnly {
		return nil, fmt.Errorf("pipeline requires a database for import runs")
	}

	result := &types.ImportResult{
		RunID:  uuid.New(),
		Source: opts.Driver.Source(),
		Stage:  types.StageStarted,
	}

	result.Stage = types.StageFetching
	verbosef(opts.Printer, "Fetching rows from %s...\n", result.Source)
	rows, err := opts.Driver.FetchRows(ctx)
	if err != nil {
		result.Stage = types.StageFailed
		return result, fmt.Errorf("failed to fetch rows from %s: %w", result.Source, err)
	}
	result.TotalRows = len(rows)
	verbosef(opts.Printer, "Fetched %d rows\n", len(rows))

	result.Stage = types.StageConverting
	records := make([]*types.Record, 0, len(rows))
	indexes := make([]int, 0, len(rows))
	for i, row := range rows {
		rec, err := opts.Driver.ToRecord(row, i)
		if err != nil {
			result.RowErrors = append(result.RowErrors, types.RowError{
				RowIndex: i,
				Message:  err.Error(),
			})
			continue
		}
		if url, ok := opts.Driver.ResolveLink(ctx, row, i); ok {
			rec.ResumeFile = url
		}
		records = append(records, rec)
		indexes = append(indexes, i)
		result.Converted++
	}

	if !opts.SkipValidation {
		result.Stage = types.StageValidating
		for n, rec := range records {
			defects := validation.Validate(rec, indexes[n])
			if len(defects) > 0 {
				result.RowsWithDefects++
				result.Defects = append(result.Defects, defects...)
			}
		}
		verbosef(opts.Printer, "Validation found %d defects across %d rows\n",
			len(result.Defects), result.RowsWithDefects)
	}

	if opts.ValidateOnly {
		result.Stage = types.StageCompleted
		return result, nil
	}

	result.Stage = types.StagePersisting
	for n, rec := range records {
		_, inserted, err := opts.DB.UpsertResume(ctx, rec)
		if err != nil {
			result.RowErrors = append(result.RowErrors, types.RowError{
				RowIndex: indexes[n],
				Message:  fmt.Sprintf("failed to persist record: %v", err),
			})
			continue
		}
		result.Persisted++
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}

		if opts.Backups == nil || rec.ResumeFile == "" {
			continue
		}
		if _, err := opts.Backups.Backup(ctx, rec.Source, rec.ResumeFile); err != nil {
			if !errors.Is(err, backup.ErrNotRetrievable) {
				result.BackupErrors++
				verbosef(opts.Printer, "Warning: backup failed for row %d: %v\n", indexes[n], err)
			}
			continue
		}
		result.BackupsCreated++
	}

	result.Stage = types.StageCompleted
	return result, nil
}

func verbosef(p *observability.Printer, format string, args ...any) {
	if p != nil {
		p.Printf(format, args...)
	}
}
