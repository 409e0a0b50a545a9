// Package server is the HTTP presentation layer: an embedded single-page
// form plus a JSON API around the generation pipeline.
package server

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/drafter"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/llm"
)

//go:embed web/index.html
var indexHTML string

// Server wires the fiber app to the drafting pipeline.
type Server struct {
	app       *fiber.App
	drafter   *drafter.Drafter
	generator llm.Generator
	backend   string
	logger    *zap.Logger
}

// New builds the fiber application and its routes. backend names the
// configured generation backend for health reporting.
func New(d *drafter.Drafter, generator llm.Generator, backend string, logger *zap.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "proposal-draft",
			DisableStartupMessage: true,
			BodyLimit:             1 * 1024 * 1024,
		}),
		drafter:   d,
		generator: generator,
		backend:   backend,
		logger:    logger,
	}

	s.app.Use(fiberRecover.New())
	s.app.Use(requestLogger(logger))

	s.app.Get("/", s.handleIndex)
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api/v1")
	api.Post("/drafts", s.handleDraft)
	api.Post("/drafts/markdown", s.handleMarkdown)
	api.Post("/preview", s.handlePreview)
	api.Get("/samples", s.handleSamples)

	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
