package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "github.com/kiranshivaraju/jobtrail/internal/api/middleware"
	"github.com/kiranshivaraju/jobtrail/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc
	JobsHandler   http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// CORS runs first so preflight requests on any path are answered.
	r.Use(mw.CORS)
	r.Use(chimw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Failure(w, http.StatusNotFound, "Not found", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Failure(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported on "+r.URL.Path)
	})

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.Auth != nil {
			r.Use(deps.Auth.Authenticate)
		}
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		jobs := orNotImplemented(deps.JobsHandler)
		r.Post("/api/v1/jobs", jobs)
		r.Post("/functions/v1/application-tracker", jobs)
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Failure(w, http.StatusNotImplemented, "Endpoint not yet implemented", "handler not configured")
	}
}
