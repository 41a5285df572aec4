// Package types provides type definitions for structured data used throughout the resume-importer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Source identifies where a resume record came from
type Source string

// Known import sources
const (
	SourceLRS      Source = "lrs"
	SourceCake     Source = "cake"
	SourceYourator Source = "yourator"
	SourceCSV      Source = "csv"
)

// KnownSources lists every source tag the importer understands
func KnownSources() []Source {
	return []Source{SourceLRS, SourceCake, SourceYourator, SourceCSV}
}

// ApplicationStatus represents where a candidate is in the hiring funnel
type ApplicationStatus string

// Application statuses
const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// InterviewStatus represents the state of a candidate's interview scheduling
type InterviewStatus string

// Interview statuses
const (
	InterviewScheduled    InterviewStatus = "scheduled"
	InterviewCompleted    InterviewStatus = "completed"
	InterviewCancelled    InterviewStatus = "cancelled"
	InterviewPending      InterviewStatus = "pending"
	InterviewNotScheduled InterviewStatus = "not_scheduled"
)

// Record represents one normalized candidate entry produced by a source driver.
// Missing optional fields are empty strings or nil pointers; a Record is not
// mutated after construction.
type Record struct {
	SourceID          string            `json:"source_id,omitempty"`
	FullName          string            `json:"full_name,omitempty"`
	Email             string            `json:"email,omitempty"`
	Phone             string            `json:"phone,omitempty"`
	ResumeFile        string            `json:"resume_file,omitempty"` // URL or bare filename
	PositionApplied   string            `json:"position_applied,omitempty"`
	ApplicationDate   *time.Time        `json:"application_date,omitempty"`
	TestScore         *float64          `json:"test_score,omitempty"`
	TestURL           string            `json:"test_url,omitempty"`
	InterviewStatus   InterviewStatus   `json:"interview_status,omitempty"`
	InterviewDate     *time.Time        `json:"interview_date,omitempty"`
	ApplicationStatus ApplicationStatus `json:"application_status,omitempty"`
	RecruiterNotes    string            `json:"recruiter_notes,omitempty"`
	HRNotes           string            `json:"hr_notes,omitempty"`
	TechnicalNotes    string            `json:"technical_notes,omitempty"`
	YearsExperience   *int              `json:"years_experience,omitempty"`
	Skills            string            `json:"skills,omitempty"`
	Source            Source            `json:"source"`
	Extras            map[string]string `json:"extras,omitempty"`
}

// IsComplete reports whether the record carries the minimum identifying fields
func (r *Record) IsComplete() bool {
	return r.FullName != "" && r.Email != ""
}
