package response

import (
	"encoding/json"
	"net/http"
)

// Success messages.
const (
	MsgSavedAndAnalyzed = "Job saved and analyzed successfully"
	MsgSavedOnly        = "Job saved successfully (no AI analysis)"
)

type successEnvelope struct {
	Success             bool   `json:"success"`
	Data                any    `json:"data"`
	Message             string `json:"message"`
	AIAnalysisPerformed bool   `json:"aiAnalysisPerformed"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Success writes a 200 envelope for a stored record. The message follows
// aiAnalysisPerformed.
func Success(w http.ResponseWriter, data any, aiAnalysisPerformed bool) {
	msg := MsgSavedOnly
	if aiAnalysisPerformed {
		msg = MsgSavedAndAnalyzed
	}
	writeJSON(w, http.StatusOK, successEnvelope{
		Success:             true,
		Data:                data,
		Message:             msg,
		AIAnalysisPerformed: aiAnalysisPerformed,
	})
}

// Failure writes a failure envelope. details must be a short diagnostic,
// never a stack trace or raw driver output.
func Failure(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, failureEnvelope{
		Error:   message,
		Details: details,
	})
}

// JSON writes v as-is.
func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
