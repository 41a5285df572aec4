// Package types provides type definitions for structured data used throughout the resume-importer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Defect rule names
const (
	RuleRequired = "required"
	RuleFormat   = "format"
	RuleRange    = "range"
)

// Defect represents one advisory validation problem on a single record field.
// Defects never block persistence; they are reported in the import summary.
type Defect struct {
	RowIndex int    `json:"row_index"`
	Field    string `json:"field"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	RawValue string `json:"raw_value,omitempty"`
}

func (d Defect) String() string {
	return fmt.Sprintf("row %d: %s - %s", d.RowIndex, d.Field, d.Message)
}

// RowError represents a row that could not be converted to a Record at all
type RowError struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex, e.Message)
}
