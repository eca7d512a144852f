package middleware

import (
	"net/http"
	"strings"
)

// corsAllowedMethods covers every route the API exposes.
var corsAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

var corsAllowedHeaders = []string{"Accept", "Authorization", "Content-Type"}

// CORS answers cross-origin requests from the listed origins. Credentials
// are allowed so the session cookie travels with browser requests. With no
// origins configured the middleware is a no-op.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok && origin != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", strings.Join(corsAllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
				h.Set("Access-Control-Max-Age", "86400")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
