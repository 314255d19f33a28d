package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskhub/backend/internal/config"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.HttpServer.Port,
			Handler:           handler,
			ReadHeaderTimeout: cfg.HttpServer.Timeout,
			ReadTimeout:       cfg.HttpServer.Timeout,
			WriteTimeout:      cfg.HttpServer.Timeout,
			IdleTimeout:       cfg.HttpServer.IdleTimeout,
		},
	}
}

// Run blocks until the server fails or Stop is called. A graceful stop returns nil.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
