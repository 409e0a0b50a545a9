// Package drafter runs the generation pipeline: validate the request, build
// the prompt, execute it against the configured backend and normalize the
// reply. One execution per call, no shared state between calls.
package drafter

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/llm"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/logger"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/normalize"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/prompt"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/proposal"
)

const defaultMaxLogLength = 200

// Info labels the backend for result metadata.
type Info struct {
	Provider string
	Model    string
}

// Drafter orchestrates one draft generation per call.
type Drafter struct {
	builder   *prompt.Builder
	generator llm.Generator
	logger    *zap.Logger
	info      Info
	maxLogLen int
	now       func() time.Time
}

// New creates a Drafter. maxLogLength bounds prompt/response previews in
// debug logs; zero or negative selects the default.
func New(builder *prompt.Builder, generator llm.Generator, log *zap.Logger, info Info, maxLogLength int) *Drafter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Drafter{
		builder:   builder,
		generator: generator,
		logger:    log,
		info:      info,
		maxLogLen: maxLogLength,
		now:       time.Now,
	}
}

// Generate runs the pipeline for a single request. Validation failures
// surface before any backend call; backend failures are returned as-is for
// the caller to classify. Normalization never fails.
func (d *Drafter) Generate(ctx context.Context, req proposal.DraftRequest) (*proposal.DraftResult, error) {
	p, err := d.builder.Build(req)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("generate content request",
		zap.String("kind", string(req.Kind)),
		zap.Int("prompt_length", utf8.RuneCountInString(p)),
		zap.String("prompt_preview", logger.TruncateForLog(p, d.maxLogLen)),
	)

	start := d.now()
	raw, err := d.generator.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}

	d.logger.Debug("generate content response",
		zap.String("kind", string(req.Kind)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, d.maxLogLen)),
		zap.Duration("duration", d.now().Sub(start)),
	)

	res := normalize.Result(req.Kind, raw, req)
	res.Provider = d.info.Provider
	res.Model = d.info.Model
	res.GeneratedAt = d.now()

	d.logger.Info("draft generated",
		zap.String("kind", string(req.Kind)),
		zap.Int("evidence", len(res.Evidence)),
		zap.Int("checklist", len(res.Checklist)),
		zap.Int("questions", len(res.Questions)),
		zap.Bool("degraded", res.Degraded()),
	)

	return res, nil
}
