package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	// ProtectUserRoutes requires a token on /user and admin level for its mutations.
	ProtectUserRoutes bool
	// Metrics serves /metrics when set.
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	app.Get("/datauser", cfg.AuthMiddleware.Handle, cfg.Auth.DataUser)

	var read, write []fiber.Handler
	if cfg.ProtectUserRoutes {
		read = []fiber.Handler{cfg.AuthMiddleware.Handle}
		write = []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireLevel(domain.UserLevelAdmin)}
	}

	users := app.Group("/user")
	users.Get("", chain(read, cfg.Users.List)...)
	users.Post("/store", chain(write, cfg.Users.Store)...)
	users.Get("/show/:id", chain(read, cfg.Users.Show)...)
	users.Patch("/update/:id", chain(write, cfg.Users.Update)...)
	users.Delete("/destroy/:id", chain(write, cfg.Users.Destroy)...)
}

func chain(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}
