package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/backup"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/driver"
	"github.com/jonathan/resume-importer/internal/types"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "resume.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func csvDriver(t *testing.T, path string) driver.Driver {
	t.Helper()
	drv, err := driver.New("csv", driver.Options{FilePath: path})
	require.NoError(t, err)
	return drv
}

func TestRun_EndToEnd(t *testing.T) {
	path := writeCSV(t, "name,email,resume_file\nAlice,a@x.com,alice.pdf\n,bad,\n")
	d := openTestDB(t)

	result, err := Run(context.Background(), RunOptions{
		Driver:  csvDriver(t, path),
		DB:      d,
		Backups: backup.New(t.TempDir(), nil),
	})
	require.NoError(t, err)

	assert.Equal(t, types.StageCompleted, result.Stage)
	assert.Equal(t, types.SourceCSV, result.Source)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 2, result.Persisted)
	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.RowErrors)

	// The second row is defective but still persisted: email is its key.
	assert.Equal(t, 1, result.RowsWithDefects)
	fields := make(map[string]bool)
	for _, def := range result.Defects {
		assert.Equal(t, 1, def.RowIndex)
		fields[def.Field] = true
	}
	assert.True(t, fields["full_name"])
	assert.True(t, fields["email"])

	// Neither resume_file is retrievable, and that is not an error.
	assert.Equal(t, 0, result.BackupsCreated)
	assert.Equal(t, 0, result.BackupErrors)

	n, err := d.CountResumes(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_ReimportUpdatesInPlace(t *testing.T) {
	path := writeCSV(t, "id,name,email\n1,Alice,a@x.com\n2,Bob,b@x.com\n")
	d := openTestDB(t)
	opts := RunOptions{Driver: csvDriver(t, path), DB: d}

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)
	assert.Equal(t, 0, first.Updated)

	second, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Updated)

	n, err := d.CountResumes(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_FetchFailureIsFatal(t *testing.T) {
	d := openTestDB(t)
	result, err := Run(context.Background(), RunOptions{
		Driver: csvDriver(t, filepath.Join(t.TempDir(), "missing.csv")),
		DB:     d,
	})
	require.Error(t, err)
	assert.Equal(t, types.StageFailed, result.Stage)
}

func TestRun_ValidateOnly(t *testing.T) {
	path := writeCSV(t, "name,email\n,bad\n")

	result, err := Run(context.Background(), RunOptions{
		Driver:       csvDriver(t, path),
		ValidateOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, types.StageCompleted, result.Stage)
	assert.Equal(t, 1, result.RowsWithDefects)
	assert.NotEmpty(t, result.Defects)
	assert.Equal(t, 0, result.Persisted)
}

func TestRun_SkipValidation(t *testing.T) {
	path := writeCSV(t, "name,email\n,bad\n")
	d := openTestDB(t)

	result, err := Run(context.Background(), RunOptions{
		Driver:         csvDriver(t, path),
		DB:             d,
		SkipValidation: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Defects)
	assert.Equal(t, 0, result.RowsWithDefects)
	assert.Equal(t, 1, result.Persisted)
}

// A record with no identifying field converts but cannot persist; the row is
// reported and the rest of the batch proceeds.
func TestRun_NoNaturalKeyBecomesRowError(t *testing.T) {
	path := writeCSV(t, "name,phone\nAlice,123\n,555-0000\n")
	d := openTestDB(t)

	result, err := Run(context.Background(), RunOptions{
		Driver: csvDriver(t, path),
		DB:     d,
	})
	require.NoError(t, err)
	assert.Equal(t, types.StageCompleted, result.Stage)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Persisted)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 1, result.RowErrors[0].RowIndex)
	assert.Contains(t, result.RowErrors[0].Message, "natural key")
}

func TestRun_BackupsLocalResumeFile(t *testing.T) {
	tmpDir := t.TempDir()
	resumePath := filepath.Join(tmpDir, "alice.pdf")
	require.NoError(t, os.WriteFile(resumePath, []byte("pdf"), 0644))

	path := writeCSV(t, "name,email,resume_file\nAlice,a@x.com,"+resumePath+"\n")
	d := openTestDB(t)
	backupDir := filepath.Join(tmpDir, "backup")

	result, err := Run(context.Background(), RunOptions{
		Driver:  csvDriver(t, path),
		DB:      d,
		Backups: backup.New(backupDir, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BackupsCreated)
	assert.Equal(t, 0, result.BackupErrors)

	entries, err := os.ReadDir(filepath.Join(backupDir, "resume_files", "csv"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_RequiresDriver(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{DB: openTestDB(t)})
	assert.Error(t, err)
}

func TestRun_RequiresDBForImport(t *testing.T) {
	path := writeCSV(t, "name\nAlice\n")
	_, err := Run(context.Background(), RunOptions{Driver: csvDriver(t, path)})
	assert.Error(t, err)
}
