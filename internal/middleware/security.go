// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   • Strict-Transport-Security  –  forces HTTPS (2 years)
//   • Content-Security-Policy   –  self-only policy; forms post to self
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features by default
//
// Notes
// -----
// • Headers are written *before* next.ServeHTTP; once a handler writes the
//   body the header map is frozen.  A handler may still replace any of them
//   with Header().Set.
// • HSTS is only sent when hsts is true (force_https), so a plain-HTTP dev
//   run does not pin localhost to HTTPS.

package middleware

import "net/http"

const (
	hstsValue = "max-age=63072000; includeSubDomains"
	cspValue  = "default-src 'self'; img-src 'self' data:; object-src 'none'; " +
		"base-uri 'self'; form-action 'self'; frame-ancestors 'none'"
)

// Security returns middleware that sets security headers for every
// response.
func Security(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if hsts {
				h.Set("Strict-Transport-Security", hstsValue)
			}
			h.Set("Content-Security-Policy", cspValue)
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

			next.ServeHTTP(w, r)
		})
	}
}
