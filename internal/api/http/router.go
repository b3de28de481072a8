package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/api/http/handlers"
	"github.com/spec-kit/shift-swap-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Dashboard      *handlers.DashboardHandler
	Shifts         *handlers.ShiftsHandler
	Swaps          *handlers.SwapsHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	signedIn := cfg.AuthMiddleware.Handle
	manager := auth.RequireManager()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", signedIn, cfg.Users.Logout)
	authGroup.Get("/me", signedIn, cfg.Users.Me)

	app.Get("/dashboard", signedIn, cfg.Dashboard.Get)

	shifts := app.Group("/shifts", signedIn)
	shifts.Get("/mine", cfg.Shifts.Mine)
	shifts.Get("/", manager, cfg.Shifts.List)
	shifts.Post("/", manager, cfg.Shifts.Create)
	shifts.Post("/import", manager, cfg.Shifts.Import)
	shifts.Get("/:id", cfg.Shifts.Get)
	shifts.Put("/:id", manager, cfg.Shifts.Replace)
	shifts.Patch("/:id", manager, cfg.Shifts.Patch)
	shifts.Delete("/:id", manager, cfg.Shifts.Delete)

	app.Get("/schedule/week", signedIn, cfg.Shifts.Week)

	swaps := app.Group("/swaps", signedIn)
	swaps.Post("/", cfg.Swaps.Create)
	swaps.Get("/mine", cfg.Swaps.Mine)
	swaps.Get("/pending", manager, cfg.Swaps.Pending)
	swaps.Get("/:id", cfg.Swaps.Get)
	swaps.Post("/:id/approve", manager, cfg.Swaps.Approve)
	swaps.Post("/:id/reject", manager, cfg.Swaps.Reject)

	notifications := app.Group("/notifications", signedIn)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
}
