package models

import (
	"time"

	"github.com/google/uuid"
)

// Remote work arrangements accepted by the extraction schema.
const (
	RemoteOptionRemote = "remote"
	RemoteOptionOnsite = "onsite"
	RemoteOptionHybrid = "hybrid"
)

// Application statuses. New rows always start as applied.
const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOA        = "oa"
	StatusRejected  = "rejected"
)

// JobSubmission is a validated inbound posting. It is built per request and
// never stored directly.
type JobSubmission struct {
	Description string
	URL         *string
	CreatedAt   time.Time
}

// Extraction is the structured output of the language model after it passed
// schema validation. Every field is present; strings may be empty.
type Extraction struct {
	JobTitle           string   `json:"jobTitle"`
	Company            string   `json:"company"`
	SkillsRequired     []string `json:"skillsRequired"`
	SkillsPreferred    []string `json:"skillsPreferred"`
	ExperienceRequired string   `json:"experienceRequired"`
	SalaryRange        string   `json:"salaryRange"`
	Remote             string   `json:"remote"`
	JobDesc            string   `json:"jobDesc"`
}

// Enrichment holds the AI-derived fields in their persisted shape.
// The zero value (with empty skill slices) means "no enrichment".
type Enrichment struct {
	JobTitle           *string  `json:"jobTitle"`
	Company            *string  `json:"company"`
	SkillsRequired     []string `json:"skillsRequired"`
	SkillsPreferred    []string `json:"skillsPreferred"`
	ExperienceRequired *string  `json:"experienceRequired"`
	SalaryRange        *string  `json:"salaryRange"`
	Remote             *string  `json:"remote"`
	JobDesc            *string  `json:"jobDesc"`
}

// JobApplication is a row of the job_applications table.
type JobApplication struct {
	ID              uuid.UUID `db:"id"               json:"id"`
	Description     string    `db:"description"      json:"description"`
	JobURL          *string   `db:"job_url"          json:"job_url"`
	AppliedAt       time.Time `db:"applied_at"       json:"applied_at"`
	JobTitle        *string   `db:"job_title"        json:"job_title"`
	Company         *string   `db:"company"          json:"company"`
	RequiredSkills  []string  `db:"required_skills"  json:"required_skills"`
	PreferredSkills []string  `db:"preferred_skills" json:"preferred_skills"`
	ExperienceLevel *string   `db:"experience_level" json:"experience_level"`
	SalaryRange     *string   `db:"salary_range"     json:"salary_range"`
	RemoteOption    *string   `db:"remote_option"    json:"remote_option"`
	AISummary       *string   `db:"ai_summary"       json:"ai_summary"`
	Status          string    `db:"status"           json:"status"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}
