package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultHandlerTimeout    = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultIdleTimeout       = 30 * time.Second
)

// Timeouts bound one HTTP server. Zero fields fall back to defaults.
type Timeouts struct {
	Handler    time.Duration
	ReadHeader time.Duration
	Idle       time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Handler <= 0 {
		t.Handler = defaultHandlerTimeout
	}
	if t.ReadHeader <= 0 {
		t.ReadHeader = defaultReadHeaderTimeout
	}
	if t.Idle <= 0 {
		t.Idle = defaultIdleTimeout
	}
	return t
}

type HTTPServer struct {
	srv *http.Server
}

func NewHTTPServer(addr string, handler http.Handler, t Timeouts) HTTPServer {
	t = t.withDefaults()
	return HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           http.TimeoutHandler(handler, t.Handler, "request timed out"),
			ReadHeaderTimeout: t.ReadHeader,
			IdleTimeout:       t.Idle,
		},
	}
}

// Run serves until the listener fails or the server is shut down,
// then calls stopFn so the owning process can begin its teardown.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	defer stopFn()

	slog.With("op", op).Info("serving", "addr", s.srv.Addr)

	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.With("op", op).Error("listener failed", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	if err := s.srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
		return
	}
	log.Info("http server is closed")
}
