// Package types provides type definitions for structured data used throughout the resume-importer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// Stage identifies how far an import run progressed
type Stage string

// Import run stages
const (
	StageStarted    Stage = "started"
	StageFetching   Stage = "fetching"
	StageConverting Stage = "converting"
	StageValidating Stage = "validating"
	StagePersisting Stage = "persisting"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// ImportResult summarizes one import run. A run that reaches StageCompleted
// may still carry per-row errors and defects; only StageFailed is fatal.
type ImportResult struct {
	RunID           uuid.UUID  `json:"run_id"`
	Source          Source     `json:"source"`
	Stage           Stage      `json:"stage"`
	TotalRows       int        `json:"total_rows"`
	Converted       int        `json:"converted"`
	Persisted       int        `json:"persisted"`
	Inserted        int        `json:"inserted"`
	Updated         int        `json:"updated"`
	RowsWithDefects int        `json:"rows_with_defects"`
	Defects         []Defect   `json:"defects,omitempty"`
	RowErrors       []RowError `json:"row_errors,omitempty"`
	BackupsCreated  int        `json:"backups_created"`
	BackupErrors    int        `json:"backup_errors"`
}
