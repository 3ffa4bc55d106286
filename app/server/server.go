package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mytheresa/catalog-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	http            *http.Server
	log             *zap.Logger
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      NewHandler(db, log, cfg.HTTP.MaxBodyBytes),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		},
		log:             log,
		shutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server starting", zap.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("Server exited gracefully")
	return nil
}
