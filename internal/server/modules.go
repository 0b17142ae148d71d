package server

import (
	"context"
	"fmt"
	"log/slog"
)

// registerModules lets every module provide its services to the injector.
func (s *Server) registerModules() error {
	for _, m := range s.modules {
		if err := m.Register(s.injector); err != nil {
			return fmt.Errorf("failed to register module %s: %w", m.Name(), err)
		}
		slog.Debug("Module registered", "module", m.Name())
	}
	return nil
}

// bootModules boots every module on the root route group.
func (s *Server) bootModules(ctx context.Context) error {
	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root, s.injector); err != nil {
			return fmt.Errorf("failed to boot module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}
	return nil
}
