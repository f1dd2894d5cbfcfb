package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/kiranshivaraju/jobtrail/internal/api/response"
)

// Recovery turns a handler panic into a 500 failure envelope. The stack is
// logged, never returned.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				slog.Error("panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Failure(w, http.StatusInternalServerError,
					"An unexpected error occurred", "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
