package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/jobtrail/internal/api/handler"
	"github.com/kiranshivaraju/jobtrail/internal/intake"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

type stubSubmitter struct {
	got    *intake.SubmissionInput
	result *intake.Result
	err    error
}

func (s *stubSubmitter) Submit(_ context.Context, in intake.SubmissionInput) (*intake.Result, error) {
	s.got = &in
	return s.result, s.err
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestJobsHandler_Success(t *testing.T) {
	company := "Acme"
	sub := &stubSubmitter{result: &intake.Result{
		Record: &models.JobApplication{
			ID:          uuid.MustParse("11111111-2222-3333-4444-555555555555"),
			Description: "desc",
			Company:     &company,
			Status:      models.StatusApplied,
		},
		AIAnalysisPerformed: true,
	}}

	w, body := post(t, handler.NewJobsHandler(sub), `{"description":"desc","url":"https://x.test","createdAt":"2025-01-01T00:00:00Z"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["aiAnalysisPerformed"])
	assert.Equal(t, "Job saved and analyzed successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", data["id"])
	assert.Equal(t, "Acme", data["company"])
	assert.Equal(t, "applied", data["status"])

	require.NotNil(t, sub.got)
	assert.Equal(t, "desc", *sub.got.Description)
	assert.Equal(t, "https://x.test", *sub.got.URL)
	assert.Equal(t, "2025-01-01T00:00:00Z", *sub.got.CreatedAt)
}

func TestJobsHandler_SuccessWithoutAnalysis(t *testing.T) {
	sub := &stubSubmitter{result: &intake.Result{Record: &models.JobApplication{Description: "d"}}}

	_, body := post(t, handler.NewJobsHandler(sub), `{"description":"d"}`)

	assert.Equal(t, false, body["aiAnalysisPerformed"])
	assert.Equal(t, "Job saved successfully (no AI analysis)", body["message"])
}

func TestJobsHandler_InvalidJSON(t *testing.T) {
	for _, in := range []string{``, `{`, `not json`, `{"description": 42}`} {
		sub := &stubSubmitter{}
		w, body := post(t, handler.NewJobsHandler(sub), in)

		assert.Equal(t, http.StatusBadRequest, w.Code, in)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid JSON body", body["error"])
		assert.Nil(t, sub.got, "pipeline must not run")
	}
}

func TestJobsHandler_BodyTooLarge(t *testing.T) {
	sub := &stubSubmitter{}
	big := `{"description":"` + strings.Repeat("a", handler.MaxBodyBytes+1) + `"}`

	w, body := post(t, handler.NewJobsHandler(sub), big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, sub.got)
}

func TestJobsHandler_PipelineFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		details string
	}{
		{
			"validation",
			&intake.Error{Kind: intake.KindValidation, Stage: intake.StageValidation, Msg: intake.MsgDescriptionRequired},
			"Job description is needed for tracking",
			"validation error at validation stage",
		},
		{
			"configuration",
			&intake.Error{Kind: intake.KindConfiguration, Stage: intake.StageEnrichment, Msg: intake.MsgMissingCredential},
			"Cannot proceed without a language model API key",
			"configuration error at enrichment stage",
		},
		{
			"persistence",
			&intake.Error{Kind: intake.KindPersistence, Stage: intake.StagePersistence, Msg: "Database error: constraint violation", Err: errors.New("SQLSTATE 23514")},
			"Database error: constraint violation",
			"persistence error at persistence stage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := post(t, handler.NewJobsHandler(&stubSubmitter{err: tt.err}), `{"description":"x"}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.msg, body["error"])
			assert.Equal(t, tt.details, body["details"])
			assert.NotContains(t, w.Body.String(), "SQLSTATE")
		})
	}
}

func TestJobsHandler_UnexpectedError(t *testing.T) {
	w, body := post(t, handler.NewJobsHandler(&stubSubmitter{err: errors.New("boom")}), `{"description":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred", body["error"])
	assert.NotContains(t, w.Body.String(), "boom")
}
