package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/api/handler"
	"taskflow/internal/api/middleware"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/pkg/token"
)

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type HTTPServer struct {
	server *http.Server
	config *ServerConfig
	logger *logger.Logger
}

func NewHTTPServer(config *ServerConfig,
	tokens *token.Manager,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
	logger *logger.Logger) *HTTPServer {

	router := setupRouter(tokens, authHandler, taskHandler, userHandler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &HTTPServer{
		server: server,
		config: config,
		logger: logger.Component("http"),
	}
}

func (s *HTTPServer) Start(_ context.Context) error {
	s.logger.Info("starting http server", "addr", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server failed", "error", err)
		}
	}()

	s.logger.Info("http server started successfully")
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping http server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", "error", err)
		return err
	}

	s.logger.Info("http server stopped successfully")
	return nil
}

func setupRouter(
	tokens *token.Manager,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
	logger *logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	})

	authenticate := middleware.Authenticate(tokens, logger)

	r.Route("/api", func(r chi.Router) {
		// login is the only unauthenticated operation
		r.Post("/auth/login", authHandler.Login)
		r.With(authenticate).Post("/auth/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Mount("/tasks", taskHandler.Routes())
			r.Mount("/users", userHandler.Routes())
		})
	})

	return r
}
