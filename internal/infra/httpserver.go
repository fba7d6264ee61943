package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with the timeouts from Config and a graceful
// Shutdown passthrough.
type HTTPServer struct {
	addr   string
	server *http.Server
}

// NewHTTPServer builds the server for the configured port. ReadHeaderTimeout
// is kept short and independent of the body read timeout so slow-header
// connections are shed before they tie up a worker.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return &HTTPServer{addr: addr, server: srv}
}

// Addr reports the listen address, for startup logging.
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Start runs the HTTP server in the current goroutine until Shutdown or a
// listener error. Callers are expected to treat http.ErrServerClosed as a
// clean exit.
func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown stops accepting new connections and waits for in-flight requests
// up to the context deadline.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
