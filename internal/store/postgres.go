package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const insertJobApplication = `
INSERT INTO job_applications (
	description, job_url, applied_at, job_title, company,
	required_skills, preferred_skills, experience_level, salary_range,
	remote_option, ai_summary, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, description, job_url, applied_at, job_title, company,
	required_skills, preferred_skills, experience_level, salary_range,
	remote_option, ai_summary, status, created_at`

func (s *PostgresStore) CreateJobApplication(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	status := app.Status
	if status == "" {
		status = models.StatusApplied
	}

	var r models.JobApplication
	err := s.pool.QueryRow(ctx, insertJobApplication,
		app.Description, app.JobURL, app.AppliedAt, app.JobTitle, app.Company,
		nonNil(app.RequiredSkills), nonNil(app.PreferredSkills), app.ExperienceLevel, app.SalaryRange,
		app.RemoteOption, app.AISummary, status,
	).Scan(&r.ID, &r.Description, &r.JobURL, &r.AppliedAt, &r.JobTitle, &r.Company,
		&r.RequiredSkills, &r.PreferredSkills, &r.ExperienceLevel, &r.SalaryRange,
		&r.RemoteOption, &r.AISummary, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create job application: %w", classifyPgError(err))
	}
	return &r, nil
}

// classifyPgError wraps err with the matching store sentinel.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.Message)
		case pgErr.Code == "22001": // string_data_right_truncation
			return fmt.Errorf("%w: %s", ErrValueTooLong, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "23"): // integrity_constraint_violation class
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		}
		return fmt.Errorf("%w: %s", ErrInsertRejected, pgErr.Message)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		pgconn.Timeout(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInsertRejected, err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
