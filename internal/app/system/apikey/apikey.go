// Package apikey extracts and checks the API key supplied by directory
// clients, either as "Authorization: Bearer <key>" or an api_key query
// parameter.
package apikey

import (
	"net/http"
	"strings"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
)

// FromRequest returns the API key from the Authorization header or the
// api_key query parameter, or "" when absent.
func FromRequest(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if key := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); key != "" {
			return key
		}
	}
	return r.URL.Query().Get("api_key")
}

// Valid reports whether key is acceptable.
//
// TODO: check against the api_keys collection once keys are provisioned.
// Until then any non-empty key is accepted; callers must not treat this as
// real authentication.
func Valid(key string) bool {
	return key != ""
}

// Require is middleware that rejects requests without a valid API key.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Valid(FromRequest(r)) {
			httpjson.Error(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
