package middleware

import (
	"context"
	"net"
	"net/http"
)

type contextKey string

const clientKey contextKey = "client_key"

// SetClientKey stores the rate limiting identity for the request.
func SetClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKey, key)
}

// ClientKey returns the identity set by Auth, or the remote host when the
// request was not authenticated.
func ClientKey(r *http.Request) string {
	if key, ok := r.Context().Value(clientKey).(string); ok && key != "" {
		return key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
