package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/handlers"
	"github.com/nfrund/parley/internal/hub"
	"github.com/nfrund/parley/internal/middleware"
	"github.com/nfrund/parley/internal/module"
	"github.com/nfrund/parley/internal/pubsub"
	"github.com/nfrund/parley/internal/rendering"
	"github.com/nfrund/parley/internal/stream"
	"github.com/nfrund/parley/internal/transcript"
)

// ChatModule implements the module.Module interface for the transcript: its
// routes, the live stream and the hub loop.
type ChatModule struct {
	module.BaseModule
	cancel context.CancelFunc
	hub    *hub.Hub
}

// New creates a new instance of the ChatModule.
func New() *ChatModule {
	return &ChatModule{}
}

// Name returns the module name.
func (m *ChatModule) Name() string {
	return "chat"
}

// Register provides the transcript service, the hub and the handlers. It
// expects the config, store, bus and renderer to be provided already.
func (m *ChatModule) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*hub.Hub, error) {
		return hub.NewHub(), nil
	})
	do.Provide(i, func(i do.Injector) (*transcript.Service, error) {
		cfg, err := do.Invoke[*config.Config](i)
		if err != nil {
			return nil, err
		}
		store, err := do.Invoke[transcript.Store](i)
		if err != nil {
			return nil, err
		}
		pub, err := do.Invoke[pubsub.Publisher](i)
		if err != nil {
			return nil, err
		}
		return transcript.NewService(store, pub, cfg.PageSize), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.TranscriptHandler, error) {
		svc, err := do.Invoke[*transcript.Service](i)
		if err != nil {
			return nil, err
		}
		r, err := do.Invoke[rendering.Renderer](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewTranscriptHandler(svc, r), nil
	})
	do.Provide(i, func(i do.Injector) (*stream.Renderer, error) {
		sub, err := do.Invoke[pubsub.Subscriber](i)
		if err != nil {
			return nil, err
		}
		h, err := do.Invoke[*hub.Hub](i)
		if err != nil {
			return nil, err
		}
		r, err := do.Invoke[rendering.Renderer](i)
		if err != nil {
			return nil, err
		}
		return stream.NewRenderer(sub, h, r), nil
	})
	do.Provide(i, func(i do.Injector) (*stream.Handler, error) {
		h, err := do.Invoke[*hub.Hub](i)
		if err != nil {
			return nil, err
		}
		return stream.NewHandler(h, nil), nil
	})
	return nil
}

// Boot starts the hub and the stream subscriber and sets up the routes.
func (m *ChatModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return fmt.Errorf("config not found in injector: %w", err)
	}
	th, err := do.Invoke[*handlers.TranscriptHandler](i)
	if err != nil {
		return fmt.Errorf("transcript handler not found in injector: %w", err)
	}
	renderer, err := do.Invoke[*stream.Renderer](i)
	if err != nil {
		return fmt.Errorf("stream renderer not found in injector: %w", err)
	}
	ws, err := do.Invoke[*stream.Handler](i)
	if err != nil {
		return fmt.Errorf("stream handler not found in injector: %w", err)
	}
	m.hub, err = do.Invoke[*hub.Hub](i)
	if err != nil {
		return fmt.Errorf("hub not found in injector: %w", err)
	}

	// --- Start Background Services ---
	ctx, m.cancel = context.WithCancel(ctx)
	go m.hub.Run(ctx)
	if err := renderer.Start(ctx); err != nil {
		m.cancel()
		return fmt.Errorf("failed to start stream renderer: %w", err)
	}

	// --- Register HTTP Handlers ---
	slog.Info("Booting ChatModule: Setting up routes...")
	g.GET("/", th.Page)
	g.GET("/messages", th.List)
	g.GET("/messages/:id", th.Get)
	g.POST("/messages", th.Create, middleware.RateLimiter(cfg.RateLimitPerSecond))
	g.GET("/preview", th.Preview)
	g.GET("/ws", ws.Serve)

	return nil
}

// Shutdown stops the background services and waits for the hub to release
// its subscribers.
func (m *ChatModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down ChatModule...")
	if m.cancel == nil {
		return nil
	}
	m.cancel()
	select {
	case <-m.hub.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
