package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/jobtrail/internal/api/response"
)

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler reports database and cache connectivity and the active
// extraction provider.
func NewHealthHandler(db, cache Pinger, aiProvider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := db.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := cache.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		status, code := "ok", http.StatusOK
		if checks["database"] != "ok" || checks["cache"] != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		response.JSON(w, code, map[string]any{
			"status":      status,
			"services":    checks,
			"ai_provider": aiProvider,
		})
	}
}
