package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const (
	shutdownTimeout = 5 * time.Second

	// maxBodyBytes - play and jump bodies are a single small JSON object.
	maxBodyBytes = 1 << 10
)

type sessionUseCase interface {
	NewSession(ctx context.Context) (*usecase.SessionView, error)
	State(ctx context.Context, id string) (*usecase.SessionView, error)
	Play(ctx context.Context, id string, cell int) (*usecase.SessionView, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.SessionView, error)
	ToggleSort(ctx context.Context, id string) (*usecase.SessionView, error)
	EndSession(ctx context.Context, id string) error
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	router   chi.Router
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		router:   chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.Recoverer)
	server.router.Use(server.requestLogger)

	server.router.Get("/ping", NewPingHandler().PingHandler)

	server.router.Route("/sessions", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(chimw.RequestSize(maxBodyBytes))
		r.Post("/", server.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.getSession)
			r.Delete("/", server.deleteSession)
			r.Post("/play", server.play)
			r.Post("/jump", server.jump)
			r.Post("/sort", server.toggleSort)
		})
	})

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

// requestLogger - one debug line per request with status and duration.
func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
			"requestID", chimw.GetReqID(r.Context()),
		)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
