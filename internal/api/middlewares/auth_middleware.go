package middleware

import (
	"net/http"
	"strings"
)

// BearerAuth validates the Authorization header against the static API key.
// Missing and wrong credentials both get the same 403 reply.
func BearerAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "Invalid or missing API key.", http.StatusForbidden)
				return
			}

			if strings.TrimPrefix(auth, "Bearer ") != apiKey {
				http.Error(w, "Invalid or missing API key.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
