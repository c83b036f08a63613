// Package requestid tags every request with a short unique identifier.
package requestid

import (
	"net/http"

	nanoid "github.com/matoous/go-nanoid/v2"

	"numcheck/pkg/requestcontext"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 16
	prefix   = "req-"
)

// Generate returns a new request id.
func Generate() string {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		// crypto/rand failure; keep serving with a fixed marker
		return prefix + "unknown"
	}
	return prefix + id
}

// Middleware reuses an inbound X-Request-ID or assigns a fresh one, stores it
// in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > 64 {
			id = Generate()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
