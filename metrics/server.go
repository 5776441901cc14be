package metrics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a Metrics registry over HTTP at a configurable path.
type Server struct {
	http *http.Server
}

// NewServer builds a chi-routed server exposing m's registry at path on
// addr. It does not start listening until Start is called.
func NewServer(m *Metrics, addr, path string) *Server {
	r := chi.NewRouter()
	r.Handle(path, promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return &Server{http: &http.Server{Addr: addr, Handler: r}}
}

// Start runs the server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
