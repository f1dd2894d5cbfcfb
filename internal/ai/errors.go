package ai

import "errors"

// Provider errors. Implementations wrap one of these so the extractor can
// tell a slow model from a broken one.
var (
	ErrProviderUnavailable = errors.New("extraction provider unavailable")
	ErrInferenceTimeout    = errors.New("extraction call timed out")
	ErrEmptyResponse       = errors.New("extraction provider returned no content")
	ErrInvalidResponse     = errors.New("extraction provider returned invalid output")
	ErrSchemaViolation     = errors.New("extraction output violates the job extraction schema")
)
