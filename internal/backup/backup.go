// Package backup archives referenced resume files into a timestamped backup
// tree. Backups are best-effort side effects of persistence: a failed copy
// is logged by the caller and never affects the database write.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-importer/internal/fetch"
	"github.com/jonathan/resume-importer/internal/types"
)

// timestampLayout names backup files down to the second; duplicates across
// runs coexist because the timestamp differs.
const timestampLayout = "20060102T150405"

// resumeFilesDir is the subdirectory of the backup root holding per-source
// trees.
const resumeFilesDir = "resume_files"

// ErrNotRetrievable reports a resume_file value that is neither a fetchable
// URL nor an existing local file. Such entries are skipped, not failed.
var ErrNotRetrievable = errors.New("resume file is not retrievable")

// Store writes backup entries under a root directory.
type Store struct {
	root    string
	fetcher *fetch.Client
	now     func() time.Time
}

// New creates a backup store rooted at dir.
func New(dir string, fetcher *fetch.Client) *Store {
	if fetcher == nil {
		fetcher = fetch.NewClient(nil)
	}
	return &Store{root: dir, fetcher: fetcher, now: time.Now}
}

// Backup archives one resume file for the given source and returns the
// destination path. URLs are downloaded; bare names are treated as local
// paths and copied. A value that is neither yields ErrNotRetrievable.
//
// Destination: <root>/resume_files/<source>/<source>_<timestamp>_<name>.
func (s *Store) Backup(ctx context.Context, source types.Source, resumeFile string) (string, error) {
	if resumeFile == "" {
		return "", ErrNotRetrievable
	}

	if fetch.IsHTTPURL(resumeFile) {
		return s.download(ctx, source, resumeFile)
	}

	if _, err := os.Stat(resumeFile); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotRetrievable, resumeFile)
	}
	return s.copyLocal(source, resumeFile)
}

func (s *Store) download(ctx context.Context, source types.Source, fileURL string) (string, error) {
	result, err := s.fetcher.URL(ctx, fileURL)
	if err != nil {
		return "", fmt.Errorf("failed to download resume file: %w", err)
	}

	dst, err := s.destPath(source, urlBasename(fileURL))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, result.Body, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return dst, nil
}

func (s *Store) copyLocal(source types.Source, srcPath string) (string, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = in.Close() }()

	dst, err := s.destPath(source, filepath.Base(srcPath))
	if err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to copy resume file: %w", err)
	}
	return dst, nil
}

func (s *Store) destPath(source types.Source, origName string) (string, error) {
	dir := filepath.Join(s.root, resumeFilesDir, string(source))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	ts := s.now().UTC().Format(timestampLayout)
	name := fmt.Sprintf("%s_%s_%s", source, ts, origName)
	return filepath.Join(dir, name), nil
}

// urlBasename extracts a usable filename from a URL, falling back to
// "resume" when the path has none.
func urlBasename(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "resume"
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "resume"
	}
	return base
}
