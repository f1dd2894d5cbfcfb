package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	supabase "github.com/nedpals/supabase-go"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"

	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

const jobApplicationsTable = "job_applications"

// SupabaseStore persists job applications through the Supabase REST API.
type SupabaseStore struct {
	client *supabase.Client
}

// NewSupabaseStore creates a SupabaseStore for the project at url.
func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	if url == "" || key == "" {
		return nil, errors.New("supabase URL and key are required")
	}
	return &SupabaseStore{client: supabase.CreateClient(url, key)}, nil
}

// supabaseRow is the insert payload. id and created_at are left to column defaults.
type supabaseRow struct {
	Description     string    `json:"description"`
	JobURL          *string   `json:"job_url"`
	AppliedAt       time.Time `json:"applied_at"`
	JobTitle        *string   `json:"job_title"`
	Company         *string   `json:"company"`
	RequiredSkills  []string  `json:"required_skills"`
	PreferredSkills []string  `json:"preferred_skills"`
	ExperienceLevel *string   `json:"experience_level"`
	SalaryRange     *string   `json:"salary_range"`
	RemoteOption    *string   `json:"remote_option"`
	AISummary       *string   `json:"ai_summary"`
	Status          string    `json:"status"`
}

// Ping issues a cheap filtered select against the table.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	var rows []struct {
		ID string `json:"id"`
	}
	err := s.client.DB.From(jobApplicationsTable).
		Select("id").
		Eq("id", uuid.Nil.String()).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return fmt.Errorf("ping supabase: %w", classifySupabaseError(err))
	}
	return nil
}

func (s *SupabaseStore) CreateJobApplication(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	row := supabaseRow{
		Description:     app.Description,
		JobURL:          app.JobURL,
		AppliedAt:       app.AppliedAt,
		JobTitle:        app.JobTitle,
		Company:         app.Company,
		RequiredSkills:  nonNil(app.RequiredSkills),
		PreferredSkills: nonNil(app.PreferredSkills),
		ExperienceLevel: app.ExperienceLevel,
		SalaryRange:     app.SalaryRange,
		RemoteOption:    app.RemoteOption,
		AISummary:       app.AISummary,
		Status:          app.Status,
	}
	if row.Status == "" {
		row.Status = models.StatusApplied
	}

	var results []models.JobApplication
	err := s.client.DB.From(jobApplicationsTable).Insert(row).ExecuteWithContext(ctx, &results)
	if err != nil {
		return nil, fmt.Errorf("create job application: %w", classifySupabaseError(err))
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("create job application: %w: no row returned", ErrInsertRejected)
	}
	return &results[0], nil
}

// classifySupabaseError maps PostgREST and transport errors onto store sentinels.
// PostgREST reports the Postgres SQLSTATE in the code field of its error body.
func classifySupabaseError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var reqErr *postgrest.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Code == "23505":
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		case reqErr.Code == "22001":
			return fmt.Errorf("%w: %v", ErrValueTooLong, err)
		case strings.HasPrefix(reqErr.Code, "23"):
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		case strings.HasPrefix(reqErr.Code, "08") || reqErr.HTTPStatusCode >= 500:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key"):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case strings.Contains(msg, "22001") || strings.Contains(msg, "value too long"):
		return fmt.Errorf("%w: %v", ErrValueTooLong, err)
	case strings.Contains(msg, "violates") || strings.Contains(msg, "23502") ||
		strings.Contains(msg, "23503") || strings.Contains(msg, "23514"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") || strings.Contains(msg, "eof") ||
		strings.Contains(msg, "503") || strings.Contains(msg, "502"):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInsertRejected, err)
}
