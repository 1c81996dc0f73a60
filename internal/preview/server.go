package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"folio/internal/config"
	"folio/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server serves one site root.
type Server struct {
	root   string
	bind   string
	logger *slog.Logger
	server *http.Server
}

// New constructs a preview server for cfg. An empty bind uses the configured
// preview.bind address.
func New(cfg *config.Config, bind string, logger *slog.Logger) *Server {
	if strings.TrimSpace(bind) == "" {
		bind = cfg.Preview.Bind
	}
	s := &Server{
		root:   cfg.Paths.SiteRoot,
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "preview"),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the router serving the site root.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.NoCache)

	files := http.FileServer(hiddenFilter{fsys: http.Dir(s.root)})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/*", files)
	return r
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("preview listen: %w", err)
	}
	return s.ServeListener(ctx, listener)
}

// ServeListener serves on listener until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	s.logger.Info("preview server listening",
		logging.String("address", "http://"+listener.Addr().String()),
		logging.String("root", s.root),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview shutdown: %w", err)
	}
	s.logger.Info("preview server stopped")
	return nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelDebug
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			} else if status >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "request served",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", status),
				logging.Int("bytes", ww.BytesWritten()),
				logging.Duration("duration", time.Since(start)),
			)
		})
	}
}

// hiddenFilter hides every path with a dot-prefixed segment, and leaves dot
// files out of directory listings.
type hiddenFilter struct {
	fsys http.FileSystem
}

func (h hiddenFilter) Open(name string) (http.File, error) {
	if hasHiddenSegment(name) {
		return nil, fs.ErrNotExist
	}
	f, err := h.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	return hiddenFilterFile{File: f}, nil
}

type hiddenFilterFile struct {
	http.File
}

func (f hiddenFilterFile) Readdir(n int) ([]fs.FileInfo, error) {
	entries, err := f.File.Readdir(n)
	visible := entries[:0]
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			visible = append(visible, entry)
		}
	}
	return visible, err
}

func hasHiddenSegment(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
