package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

type Server struct {
	config *Config
	server *http.Server
	svc    *Services
}

func New(config *Config) (*Server, error) {
	svc, err := NewServices(config)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:    config.HTTP.Addr,
		Handler: SetupRoutes(config, svc),
		// Timeouts to prevent slow client attacks. Write stays generous
		// because a large batch walk completes before the response is sent.
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return &Server{
		config: config,
		server: httpServer,
		svc:    svc,
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("reelsweep server start",
		"addr", s.config.HTTP.Addr,
		"cleanup", s.config.Roots.Cleanup,
		"target", s.config.Roots.Target,
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.runHTTPServer(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("received shutdown signal, stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Stop(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server failure", "error", err)
		return err
	}

	slog.Info("reelsweep server stopped")
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return s.svc.Shutdown(ctx)
}

func (s *Server) runHTTPServer() error {
	var err error
	if s.config.HTTP.CertFile != "" && s.config.HTTP.KeyFile != "" {
		slog.Info("listening with tls", "addr", s.config.HTTP.Addr)
		err = s.server.ListenAndServeTLS(s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	} else {
		slog.Info("listening", "addr", s.config.HTTP.Addr)
		err = s.server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
