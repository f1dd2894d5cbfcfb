// Package provider builds the configured extraction provider.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiranshivaraju/jobtrail/internal/ai/gemini"
	"github.com/kiranshivaraju/jobtrail/internal/ai/openai"
	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// New constructs the provider selected in cfg. It returns a nil provider (and
// no error) when AI_PROVIDER is "none" or the provider has no credential; the
// extractor then skips every request.
// Called once at server startup.
func New(ctx context.Context, cfg config.AIConfig) (models.ExtractionProvider, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI, config.ProviderOllama, config.ProviderVLLM, config.ProviderGemini:
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, ollama, vllm, gemini, none", cfg.Provider)
	}
	if !cfg.HasCredential() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewProvider(openai.Options{
			Name:   config.ProviderOpenAI,
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}), nil
	case config.ProviderOllama:
		// Ollama ignores the key but the client sends one.
		return openai.NewProvider(openai.Options{
			Name:    config.ProviderOllama,
			APIKey:  "ollama",
			Model:   cfg.Ollama.Model,
			BaseURL: APIBase(cfg.Ollama.BaseURL),
		}), nil
	case config.ProviderVLLM:
		return openai.NewProvider(openai.Options{
			Name:    config.ProviderVLLM,
			APIKey:  "vllm",
			Model:   cfg.VLLM.Model,
			BaseURL: APIBase(cfg.VLLM.BaseURL),
		}), nil
	default:
		p, err := gemini.NewProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// APIBase points a server root at its OpenAI-compatible /v1/ prefix.
func APIBase(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL + "/"
	}
	return baseURL + "/v1/"
}
