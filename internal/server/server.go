package server

import (
	"context"

	"device-assistant-ai/internal/bootstrap"
	"device-assistant-ai/internal/config"
	"device-assistant-ai/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "device-assistant-ai",
		BodyLimit: 10 * 1024 * 1024, // 10MB, large manuals go through ChunkAndEmbed
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "listening", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")
	c.HealthController.RegisterRoutes(api)

	// every RPC shares one worker pool and one deadline
	v1 := api.Group("/v1",
		serverutils.ServiceAuth(cfg.App.ServiceJWTSecret),
		serverutils.RequestTimeout(cfg.App.RequestTimeout),
		c.Limiter.Middleware(),
	)

	c.RagController.RegisterRoutes(v1)
	c.IngestionController.RegisterRoutes(v1)
}
