// Package preview serves a finished export directory over local HTTP
// so the rendered document can be viewed in a browser.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ankictl/internal/config"
)

// Server serves one export directory until its context is canceled.
type Server struct {
	cfg     config.PreviewSettings
	dir     string
	cleanup bool
}

// New creates a preview server for dir. With cleanup set, the directory
// is removed after the server shuts down.
func New(cfg config.PreviewSettings, dir string, cleanup bool) *Server {
	return &Server{cfg: cfg, dir: dir, cleanup: cleanup}
}

// URL returns the address the server will listen on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%s", s.cfg.Host, s.cfg.Port)
}

// Handler returns the router serving the export directory.
// http.FileServer refuses paths that escape the root.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(s.dir)))
	return r
}

// Serve blocks until ctx is canceled or the listener fails, then shuts
// down gracefully within the configured timeout. Cleanup, when
// requested, runs only after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("export directory: %w", err)
	}

	srv := &http.Server{
		Addr:         s.cfg.Host + ":" + s.cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("preview server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}

	if s.cleanup {
		if err := os.RemoveAll(s.dir); err != nil {
			return fmt.Errorf("clean up export directory: %w", err)
		}
	}
	return nil
}
