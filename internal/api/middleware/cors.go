package middleware

import "net/http"

const (
	allowOrigin  = "*"
	allowHeaders = "authorization, x-client-info, apikey, content-type"
	allowMethods = "POST, OPTIONS"
)

// CORS adds the headers the browser extension needs to every response and
// answers preflight requests on any path.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Allow-Methods", allowMethods)

		if r.Method == http.MethodOptions {
			h.Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
