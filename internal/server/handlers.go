package server

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/llm"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/samples"
)

type errorResponse struct {
	Error string `json:"error"`
}

type previewRequest struct {
	Markdown string `json:"markdown"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexHTML)
}

func (s *Server) handleDraft(c *fiber.Ctx) error {
	var req proposal.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	result, err := s.drafter.Generate(c.UserContext(), req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(errorResponse{Error: err.Error()})
	}

	return c.JSON(result)
}

func (s *Server) handleMarkdown(c *fiber.Ctx) error {
	var result proposal.DraftResult
	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="proposal_draft.md"`)
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(result.AsMarkdown())
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(req.Markdown), &buf); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{Error: err.Error()})
	}

	return c.JSON(previewResponse{HTML: buf.String()})
}

func (s *Server) handleSamples(c *fiber.Ctx) error {
	return c.JSON(samples.Sets())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	resp := healthResponse{Status: "ok", Backend: s.backend}

	if pinger, ok := s.generator.(llm.Pinger); ok {
		if err := pinger.Ping(c.UserContext()); err != nil {
			resp.Status = "degraded"
			resp.Detail = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
	}

	return c.JSON(resp)
}

// statusForError maps pipeline failures to HTTP statuses. Invalid input is
// the caller's fault; backend failures surface as gateway errors and are
// never retried here.
func statusForError(err error) int {
	switch {
	case errors.Is(err, proposal.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, llm.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, llm.ErrConnection), errors.Is(err, llm.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
