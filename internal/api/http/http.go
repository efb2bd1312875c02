// Package httpapi exposes the JSON API over chi: the public frontend
// surface, the staff back office and the auth endpoints.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/admin"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/frontend"
)

// Config is the configuration for the http server
type Config struct {
	Port            string   `mapstructure:"port"`
	Address         string   `mapstructure:"address"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RequestTimeout  string   `mapstructure:"request_timeout"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(
	adminServer *admin.Server,
	frontendServer *frontend.Server,
	authServer *auth.Server,
) (http.Handler, error) {
	timeout := 30 * time.Second
	if s.c.RequestTimeout != "" {
		t, err := time.ParseDuration(s.c.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("can't parse request timeout: %w", err)
		}
		timeout = t
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/auth", authServer.Routes)

	r.Route("/api/frontend", func(r chi.Router) {
		if s.c.RateLimitPerMin > 0 {
			r.Use(httprate.Limit(s.c.RateLimitPerMin, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}
		frontendServer.Routes(r, authServer.MaybeSession, authServer.WithSession)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authServer.WithAdmin)
		adminServer.Routes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})

	return r, nil
}

// Start starts the server
func (s *Server) Start(ctx context.Context,
	adminServer *admin.Server,
	frontendServer *frontend.Server,
	authServer *auth.Server,
) error {
	handler, err := s.router(adminServer, frontendServer, authServer)
	if err != nil {
		return err
	}

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: handler,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("hidecraft-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		h.ServeHTTP(ww, r)
		slog.Default().InfoContext(r.Context(), "request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}

	return false
}
