package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/handlers"
	"github.com/nfrund/parley/internal/module"
	"github.com/nfrund/parley/internal/pubsub"
	"github.com/nfrund/parley/internal/rendering"
	"github.com/nfrund/parley/internal/transcript"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg *config.Config

	injector     *do.RootScope
	modules      []module.Module
	bus          *pubsub.WatermillBridge
	store        transcript.Store
	traceCleanup func()

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a new Server instance: it builds the bus and the store, provides
// the core services to the injector, then registers and boots every module.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	tracer, traceCleanup, err := pubsub.SetupOTel(ctx, pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	bus := pubsub.NewWatermillBridgeWithTracer(tracer)

	store, err := newStore(ctx, cfg)
	if err != nil {
		_ = bus.Close()
		traceCleanup()
		return nil, err
	}

	renderer := rendering.NewUniversalRenderer()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue[pubsub.Publisher](injector, bus)
	do.ProvideValue[pubsub.Subscriber](injector, bus)
	do.ProvideValue[transcript.Store](injector, store)
	do.ProvideValue[rendering.Renderer](injector, renderer)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = renderer
	setupErrorHandling(e)
	setupMiddleware(e, cfg)
	registerCoreRoutes(e)

	s := &Server{
		E:            e,
		Cfg:          cfg,
		injector:     injector,
		modules:      AppModules(),
		bus:          bus,
		store:        store,
		traceCleanup: traceCleanup,
	}

	if err := s.registerModules(); err != nil {
		_ = s.Shutdown(ctx)
		return nil, err
	}
	if err := s.bootModules(ctx); err != nil {
		_ = s.Shutdown(ctx)
		return nil, err
	}
	if err := s.seedTranscript(ctx); err != nil {
		_ = s.Shutdown(ctx)
		return nil, err
	}

	slog.Info("Server configured", "addr", cfg.Addr, "backend", cfg.Backend, "modules", len(s.modules))
	return s, nil
}

// seedTranscript posts the messages of cfg.SeedPath into an empty transcript.
func (s *Server) seedTranscript(ctx context.Context) error {
	if s.Cfg.SeedPath == "" {
		return nil
	}
	f, err := os.Open(s.Cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("failed to open transcript seed: %w", err)
	}
	defer f.Close()

	inputs, err := transcript.LoadSeed(f)
	if err != nil {
		return err
	}
	svc, err := do.Invoke[*transcript.Service](s.injector)
	if err != nil {
		return fmt.Errorf("transcript service not found in injector: %w", err)
	}
	n, err := svc.Seed(ctx, inputs)
	if err != nil {
		return err
	}
	slog.Info("Transcript seeded", "path", s.Cfg.SeedPath, "messages", n)
	return nil
}

// newStore opens the transcript store selected by cfg.Backend.
func newStore(ctx context.Context, cfg *config.Config) (transcript.Store, error) {
	switch cfg.Backend {
	case config.BackendSurreal:
		store, err := transcript.NewSurrealStore(ctx, transcript.SurrealConfig{
			URL:       cfg.DBUrl,
			Namespace: cfg.DBNs,
			Database:  cfg.DBDb,
			User:      cfg.DBUser,
			Pass:      cfg.DBPass,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open surreal transcript store: %w", err)
		}
		return store, nil
	case config.BackendSQLite:
		store, err := transcript.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite transcript store: %w", err)
		}
		return store, nil
	case config.BackendMemory:
		return transcript.NewMemoryStore(cfg.TranscriptCapacity), nil
	default:
		return nil, fmt.Errorf("unknown transcript backend %q", cfg.Backend)
	}
}
