package server

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/handlers"
	"github.com/nfrund/parley/internal/middleware"
)

// setupMiddleware installs the middleware shared by every route.
func setupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.Logger)

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
}

// registerCoreRoutes sets up the routes that belong to no module.
func registerCoreRoutes(e *echo.Echo) {
	e.GET("/healthz", handlers.Health)
}
