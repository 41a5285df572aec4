// Package validation provides advisory per-field rule checking for imported
// resume records. Defects are reported to the caller but never block
// persistence, and Validate never mutates the record it inspects.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-importer/internal/types"
)

// Test scores are percentages.
const (
	MinTestScore = 0.0
	MaxTestScore = 100.0
)

var validate = validator.New()

// Validate checks a single record against the field rules and returns the
// list of defects found, tagged with the given row index. A fully valid
// record yields an empty list.
//
// Rules: full_name and resume_file are required; email, when present, must be
// a well-formed address; test_score, when present, must lie within
// [MinTestScore, MaxTestScore]; years_experience, when present, must be
// non-negative.
func Validate(rec *types.Record, rowIndex int) []types.Defect {
	var defects []types.Defect

	if rec.FullName == "" {
		defects = append(defects, types.Defect{
			RowIndex: rowIndex,
			Field:    "full_name",
			Rule:     types.RuleRequired,
			Message:  "full_name is required",
		})
	}

	if rec.ResumeFile == "" {
		defects = append(defects, types.Defect{
			RowIndex: rowIndex,
			Field:    "resume_file",
			Rule:     types.RuleRequired,
			Message:  "resume_file is required",
		})
	}

	if rec.Email != "" {
		if err := validate.Var(rec.Email, "email"); err != nil {
			defects = append(defects, types.Defect{
				RowIndex: rowIndex,
				Field:    "email",
				Rule:     types.RuleFormat,
				Message:  fmt.Sprintf("invalid email format: %s", rec.Email),
				RawValue: rec.Email,
			})
		}
	}

	if rec.TestScore != nil {
		if *rec.TestScore < MinTestScore || *rec.TestScore > MaxTestScore {
			defects = append(defects, types.Defect{
				RowIndex: rowIndex,
				Field:    "test_score",
				Rule:     types.RuleRange,
				Message:  fmt.Sprintf("test_score must be between %g and %g", MinTestScore, MaxTestScore),
				RawValue: fmt.Sprintf("%g", *rec.TestScore),
			})
		}
	}

	if rec.YearsExperience != nil && *rec.YearsExperience < 0 {
		defects = append(defects, types.Defect{
			RowIndex: rowIndex,
			Field:    "years_experience",
			Rule:     types.RuleRange,
			Message:  "years_experience cannot be negative",
			RawValue: fmt.Sprintf("%d", *rec.YearsExperience),
		})
	}

	return defects
}
