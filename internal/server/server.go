package server

import (
	"context"

	"portfolio-web/internal/bootstrap"
	"portfolio-web/internal/config"
	"portfolio-web/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	log := container.Logger

	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.Upload.MaxContentLength,
		Views:                 container.Views,
		ErrorHandler:          serverutils.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(log))

	if cfg.Session.EncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key: cfg.Session.EncryptionKey,
		}))
	}

	// The session middleware wraps the error handler so flashes queued while
	// rendering an error page are still saved.
	app.Use(serverutils.SessionMiddleware(container.SessionRepository, cfg.Session, log))
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	// Routes
	registerRoutes(app, container)

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
	s.container.Logger.Info("Server", "Listening", map[string]interface{}{
		"addr": s.cfg.Addr(),
		"env":  s.cfg.App.Environment,
	})
	return s.app.Listen(s.cfg.Addr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.PageController.RegisterRoutes(app)
	c.ContactController.RegisterRoutes(app)
	c.AuthController.RegisterRoutes(app)
	c.ResumeController.RegisterRoutes(app)
	c.FeedbackController.RegisterRoutes(app)
}
