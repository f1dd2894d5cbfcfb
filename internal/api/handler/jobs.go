package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/jobtrail/internal/api/response"
	"github.com/kiranshivaraju/jobtrail/internal/intake"
)

// MaxBodyBytes caps the request body of a submission.
const MaxBodyBytes = 1 << 20

// Submitter defines the interface the handler depends on.
type Submitter interface {
	Submit(ctx context.Context, in intake.SubmissionInput) (*intake.Result, error)
}

// NewJobsHandler returns an http.HandlerFunc for POST /api/v1/jobs and the
// extension-compatible /functions/v1/application-tracker.
func NewJobsHandler(svc Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

		var in intake.SubmissionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Failure(w, http.StatusRequestEntityTooLarge, "Request body too large", "validation error at request stage")
				return
			}
			response.Failure(w, http.StatusBadRequest, "Invalid JSON body", "validation error at request stage")
			return
		}

		res, err := svc.Submit(r.Context(), in)
		if err != nil {
			var ie *intake.Error
			if errors.As(err, &ie) {
				slog.Warn("job submission rejected", "kind", ie.Kind, "stage", ie.Stage, "error", err)
				response.Failure(w, http.StatusBadRequest, ie.Msg, ie.Details())
				return
			}
			slog.Error("job submission failed", "error", err)
			response.Failure(w, http.StatusInternalServerError, "An unexpected error occurred", "internal error")
			return
		}

		response.Success(w, res.Record, res.AIAnalysisPerformed)
	}
}
