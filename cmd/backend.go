package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/drafter"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/llm"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/logger"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/prompt"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/secrets"
)

const (
	modeMock = "mock"
	modeLive = "live"

	providerOllama = "ollama"
	providerOpenAI = "openai"
	providerGemini = "gemini"
)

// newGenerator builds the configured generation backend. The choice is made
// once at startup and injected; nothing re-evaluates it per request.
func newGenerator(ctx context.Context, cfg *BackendConfig, log *zap.Logger) (llm.Generator, drafter.Info, error) {
	if cfg == nil {
		cfg = &BackendConfig{}
	}

	mode := strings.TrimSpace(strings.ToLower(cfg.Mode))
	switch mode {
	case "", modeMock:
		return llm.NewMock(), drafter.Info{Provider: modeMock}, nil
	case modeLive:
	default:
		return nil, drafter.Info{}, fmt.Errorf("unsupported backend mode: %s", cfg.Mode)
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", providerOllama:
		var (
			baseURL string
			model   string
			timeout time.Duration
		)
		if cfg.Ollama != nil {
			baseURL = cfg.Ollama.BaseURL
			model = cfg.Ollama.Model
			timeout = time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second
		}
		gen := llm.NewOllama(baseURL, model, timeout, logger.WithBackendFields(log, providerOllama, model))
		return gen, drafter.Info{Provider: providerOllama, Model: gen.Model()}, nil

	case providerOpenAI:
		if cfg.OpenAI == nil {
			return nil, drafter.Info{}, fmt.Errorf("openai configuration is required for the openai provider")
		}
		// Local OpenAI-compatible endpoints usually ignore the key, so a
		// missing secret is not fatal here.
		apiKey, _ := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: cfg.OpenAI.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		gen, err := llm.NewOpenAICompat(cfg.OpenAI.BaseURL, apiKey, cfg.OpenAI.Model, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, drafter.Info{}, err
		}
		return gen, drafter.Info{Provider: providerOpenAI, Model: cfg.OpenAI.Model}, nil

	case providerGemini:
		if cfg.Gemini == nil {
			return nil, drafter.Info{}, fmt.Errorf("gemini configuration is required for the gemini provider")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, drafter.Info{}, fmt.Errorf("%w (set backend.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		gen, err := llm.NewGemini(ctx, apiKey, cfg.Gemini.Model, time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, drafter.Info{}, err
		}
		return gen, drafter.Info{Provider: providerGemini, Model: gen.Model()}, nil

	default:
		return nil, drafter.Info{}, fmt.Errorf("unsupported backend provider: %s", cfg.Provider)
	}
}

// newDrafter assembles the full pipeline from configuration.
func newDrafter(ctx context.Context, config *Config, log *zap.Logger) (*drafter.Drafter, llm.Generator, drafter.Info, error) {
	generator, info, err := newGenerator(ctx, config.Backend, log)
	if err != nil {
		return nil, nil, drafter.Info{}, fmt.Errorf("building generation backend: %w", err)
	}

	opts := prompt.Options{}
	if config.Prompt != nil {
		opts = prompt.Options{
			AdvisorRole: config.Prompt.AdvisorRole,
			Tone:        config.Prompt.Tone,
			Detail:      config.Prompt.Detail,
		}
	}

	maxLogLength := 0
	if config.Backend != nil {
		maxLogLength = config.Backend.MaxLogLength
	}

	pipelineLogger := logger.WithBackendFields(log, info.Provider, info.Model)
	d := drafter.New(prompt.NewBuilder(opts), generator, pipelineLogger, info, maxLogLength)

	return d, generator, info, nil
}
