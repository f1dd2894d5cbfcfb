package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiranshivaraju/jobtrail/internal/api/response"
)

// Auth checks the shared ingest key sent by the browser extension.
type Auth struct {
	hash []byte
}

// NewAuth creates an Auth for a bcrypt hash of the ingest key. An empty hash
// disables the check.
func NewAuth(keyHash string) *Auth {
	return &Auth{hash: []byte(keyHash)}
}

// Enabled reports whether requests must carry the ingest key.
func (a *Auth) Enabled() bool { return len(a.hash) > 0 }

// Authenticate accepts the key from "Authorization: Bearer" or the "apikey"
// header and records a key fingerprint as the client identity.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		rawKey := extractBearerToken(r)
		if rawKey == "" {
			rawKey = strings.TrimSpace(r.Header.Get("apikey"))
		}
		if rawKey == "" {
			response.Failure(w, http.StatusUnauthorized, "Missing or invalid Authorization header", "authentication error at request stage")
			return
		}

		if bcrypt.CompareHashAndPassword(a.hash, []byte(rawKey)) != nil {
			response.Failure(w, http.StatusUnauthorized, "Invalid API key", "authentication error at request stage")
			return
		}

		next.ServeHTTP(w, r.WithContext(SetClientKey(r.Context(), fingerprint(rawKey))))
	})
}

// fingerprint identifies a key in rate limit counters without storing it.
func fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key:" + hex.EncodeToString(sum[:8])
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
