// internal/server/timeouts.go
//
// HTTP server helper with explicit timeouts.
//
//   • ReadTimeout   – abort slow-loris headers
//   • WriteTimeout  – cap total response time
//   • IdleTimeout   – close keep-alives on idle clients
//
// Values come from the `http.*` config block; config.Default() supplies
// 10 s, 15 s, and 60 s.

package server

import (
	"net/http"
	"time"

	"github.com/yanizio/contactform/internal/config"
)

// ShutdownTimeout bounds graceful shutdown after a signal.
const ShutdownTimeout = 10 * time.Second

// New constructs an *http.Server from cfg.
func New(cfg config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
