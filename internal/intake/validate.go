package intake

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// DefaultMinDescriptionLength is the minimum trimmed description length in characters.
const DefaultMinDescriptionLength = 50

// Client-facing validation messages.
const (
	MsgDescriptionRequired = "Job description is needed for tracking"
	MsgInvalidCreatedAt    = "createdAt must be an ISO-8601 timestamp"
	MsgInvalidURL          = "url must be an absolute http(s) URL"
)

// SubmissionInput is the raw request body sent by the browser extension.
// Every field is optional at the decoding level.
type SubmissionInput struct {
	Description *string `json:"description"`
	URL         *string `json:"url"`
	CreatedAt   *string `json:"createdAt"`
}

var createdAtLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// Validate checks raw input and builds a JobSubmission. The description is
// kept as submitted; only the length check trims it.
func Validate(in SubmissionInput, now time.Time, minLength int) (models.JobSubmission, error) {
	if minLength <= 0 {
		minLength = DefaultMinDescriptionLength
	}
	if in.Description == nil {
		return models.JobSubmission{}, validationError(MsgDescriptionRequired)
	}
	if utf8.RuneCountInString(strings.TrimSpace(*in.Description)) < minLength {
		return models.JobSubmission{}, validationError(MsgDescriptionRequired)
	}

	sub := models.JobSubmission{
		Description: *in.Description,
		CreatedAt:   now.UTC(),
	}

	if in.CreatedAt != nil && strings.TrimSpace(*in.CreatedAt) != "" {
		t, ok := parseCreatedAt(strings.TrimSpace(*in.CreatedAt))
		if !ok {
			return models.JobSubmission{}, validationError(MsgInvalidCreatedAt)
		}
		sub.CreatedAt = t.UTC()
	}

	if in.URL != nil && strings.TrimSpace(*in.URL) != "" {
		raw := strings.TrimSpace(*in.URL)
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return models.JobSubmission{}, validationError(MsgInvalidURL)
		}
		sub.URL = &raw
	}

	return sub, nil
}

func parseCreatedAt(s string) (time.Time, bool) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
