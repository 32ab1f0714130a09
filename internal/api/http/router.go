package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
	"github.com/spec-kit/jobboard-service/web"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	AuthMiddleware *auth.AuthMiddleware
	ServeClient    bool
}

// RegisterRoutes wires HTTP routes. Registration and login are public;
// every other /api route sits behind the bearer-token gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/register", cfg.Users.Register)
	api.Post("/auth/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/verify", cfg.Users.Verify)
	protected.Post("/jobs", cfg.Jobs.CreateJob)
	protected.Get("/jobs", cfg.Jobs.ListJobs)
	protected.Get("/jobs/:id", cfg.Jobs.GetJob)
	protected.Put("/jobs/:id", cfg.Jobs.UpdateJob)
	protected.Delete("/jobs/:id", cfg.Jobs.DeleteJob)

	api.Use(notFoundHandler)

	if cfg.ServeClient {
		app.Use("/", filesystem.New(filesystem.Config{
			Root:         nethttp.FS(web.Static),
			PathPrefix:   "static",
			Index:        "index.html",
			NotFoundFile: "static/index.html",
		}))
	}

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return apperrors.NewNotFound("route", map[string]any{
		"method": c.Method(),
		"path":   c.Path(),
	})
}
