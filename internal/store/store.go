package store

import (
	"context"
	"errors"

	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// Classified insert failures. Backends wrap the driver error with one of these.
var (
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrValueTooLong        = errors.New("value too long for column")
	ErrUnavailable         = errors.New("database unavailable")
	ErrInsertRejected      = errors.New("insert rejected")
)

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error
	// CreateJobApplication inserts one row and returns it as stored, with the
	// generated id and created_at filled in.
	CreateJobApplication(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error)
}

// Classification returns a short client-safe description of a store error.
func Classification(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateKey):
		return ErrDuplicateKey.Error()
	case errors.Is(err, ErrConstraintViolation):
		return ErrConstraintViolation.Error()
	case errors.Is(err, ErrValueTooLong):
		return ErrValueTooLong.Error()
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return ErrUnavailable.Error()
	default:
		return ErrInsertRejected.Error()
	}
}
