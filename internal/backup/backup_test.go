package backup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/fetch"
	"github.com/jonathan/resume-importer/internal/types"
)

func TestBackup_LocalFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "alice.pdf")
	require.NoError(t, os.WriteFile(src, []byte("resume content"), 0644))

	store := New(filepath.Join(tmpDir, "backup"), nil)
	store.now = func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) }

	dst, err := store.Backup(context.Background(), types.SourceCSV, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "backup", "resume_files", "csv", "csv_20250801T120000_alice.pdf"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "resume content", string(data))
}

func TestBackup_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pdf bytes"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	store := New(tmpDir, fetch.NewClient(nil))
	store.now = func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) }

	dst, err := store.Backup(context.Background(), types.SourceLRS, server.URL+"/files/tony_resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "lrs_20250801T120000_tony_resume.pdf", filepath.Base(dst))
	assert.Contains(t, dst, filepath.Join("resume_files", "lrs"))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestBackup_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := New(t.TempDir(), fetch.NewClient(nil))
	_, err := store.Backup(context.Background(), types.SourceLRS, server.URL+"/gone.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download resume file")
}

// A bare filename with no matching local file is skipped, not failed.
func TestBackup_BareFilenameNotRetrievable(t *testing.T) {
	store := New(t.TempDir(), nil)
	_, err := store.Backup(context.Background(), types.SourceCSV, "alice.pdf")
	assert.True(t, errors.Is(err, ErrNotRetrievable))
}

func TestBackup_EmptyNotRetrievable(t *testing.T) {
	store := New(t.TempDir(), nil)
	_, err := store.Backup(context.Background(), types.SourceCSV, "")
	assert.True(t, errors.Is(err, ErrNotRetrievable))
}

// Backup filenames are unique across two runs on the same file because the
// timestamp differs.
func TestBackup_UniqueAcrossRuns(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "bob.pdf")
	require.NoError(t, os.WriteFile(src, []byte("v1"), 0644))

	store := New(filepath.Join(tmpDir, "backup"), nil)

	times := []time.Time{
		time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 12, 0, 1, 0, time.UTC),
	}
	var paths []string
	for _, ts := range times {
		ts := ts
		store.now = func() time.Time { return ts }
		dst, err := store.Backup(context.Background(), types.SourceCake, src)
		require.NoError(t, err)
		paths = append(paths, dst)
	}

	assert.NotEqual(t, paths[0], paths[1])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestURLBasename(t *testing.T) {
	assert.Equal(t, "r.pdf", urlBasename("https://example.com/files/r.pdf"))
	assert.Equal(t, "resume", urlBasename("https://example.com/"))
	assert.Equal(t, "resume", urlBasename("https://example.com"))
}
