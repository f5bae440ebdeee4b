// Package httpapi exposes the HTTP JSON surface of the server: the auth
// endpoints, the owner-scoped task CRUD, and the authorization gate through
// which every protected request passes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

// WelcomeMailer is the optional post-signup notifier. A nil mailer disables
// the welcome message entirely.
type WelcomeMailer interface {
	SendWelcome(to, name string) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	tasks   *services.TaskService
	mailer  WelcomeMailer
}

func NewServer(address string, l logging.Logger, us *services.UserService, ts *services.TaskService, mailer WelcomeMailer) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		mailer:  mailer,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.healthHandler)

	mux.HandleFunc("POST /api/auth/signup", s.signupHandler)
	mux.HandleFunc("POST /api/auth/login", s.loginHandler)
	mux.HandleFunc("PUT /api/auth/profile", s.requireAuth(s.updateProfileHandler))

	mux.HandleFunc("GET /api/tasks", s.requireAuth(s.listTasksHandler))
	mux.HandleFunc("POST /api/tasks", s.requireAuth(s.createTaskHandler))
	mux.HandleFunc("PUT /api/tasks/{id}", s.requireAuth(s.updateTaskHandler))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.requireAuth(s.deleteTaskHandler))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
