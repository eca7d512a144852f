package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps request bodies at 64 KiB; expense payloads are tiny.
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits request bodies to maxBytes. Handlers see a decode error
// once the limit is crossed and answer 400.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
