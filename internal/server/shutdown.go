package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown returns a channel that receives the first interrupt or
// terminate signal.
func waitForShutdown() <-chan os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	return quit
}

// Shutdown stops the HTTP server, the modules in reverse boot order, the bus
// and the store. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		var errs []error
		if err := s.E.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
		for i := len(s.modules) - 1; i >= 0; i-- {
			m := s.modules[i]
			if err := m.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("module %s: %w", m.Name(), err))
			}
		}
		if err := s.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("bus: %w", err))
		}
		if err := s.store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
		s.traceCleanup()
		s.injector.Shutdown()

		s.shutdownErr = errors.Join(errs...)
		slog.Info("Server stopped", "error", s.shutdownErr)
	})
	return s.shutdownErr
}
