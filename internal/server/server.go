// Package server exposes the bridge over a local JSON API so non-terminal
// front ends can drive the same note folder.
package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/constants"
)

type Server struct {
	app   *fiber.App
	log   zerolog.Logger
	notes *noteController
}

type Options struct {
	// Folder returns the folder requests operate on.
	Folder func() string
	// AllowOrigins lists the browser origins allowed to call the API. When
	// empty only same-origin pages and non-browser clients get through.
	AllowOrigins []string
	// AllowAnyFolder lets requests name a folder other than Folder().
	AllowAnyFolder bool
}

func New(b *bridge.Bridge, opts Options, logger zerolog.Logger) *Server {
	log := logger.With().Str("component", "server").Logger()

	app := fiber.New(fiber.Config{
		AppName:               constants.AppName,
		BodyLimit:             10 * 1024 * 1024,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))
	app.Use(originGuard(opts.AllowOrigins))
	if len(opts.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.AllowOrigins, ","),
			AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	s := &Server{
		app:   app,
		log:   log,
		notes: newNoteController(b, opts.Folder, opts.AllowAnyFolder),
	}
	s.notes.RegisterRoutes(app.Group("/api"))

	return s
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

// Run blocks serving on addr until Shutdown is called or listening fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")

		return err
	}
}

// originGuard rejects browser requests from pages other than the API's own
// origin and the configured ones. Requests without an Origin header pass.
func originGuard(allowed []string) fiber.Handler {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[strings.TrimRight(strings.TrimSpace(origin), "/")] = true
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || origin == c.BaseURL() || set[origin] {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "origin not allowed")
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}
