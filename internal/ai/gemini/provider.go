// Package gemini implements models.ExtractionProvider on Google Gemini through
// langchaingo. Gemini gets the schema in its system instruction and answers
// in JSON mode; the response is validated locally like every other provider.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// Provider wraps a langchaingo model.
type Provider struct {
	model string
	llm   llms.Model
}

// NewProvider creates a Gemini-backed provider.
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{model: cfg.Model, llm: llm}, nil
}

// NewWithModel wraps an existing llms.Model.
func NewWithModel(model string, llm llms.Model) *Provider {
	return &Provider{model: model, llm: llm}
}

func (p *Provider) Name() string  { return "gemini" }
func (p *Provider) Model() string { return p.model }

// Complete sends the prompts in JSON mode and returns the first choice.
func (p *Provider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	instruction, err := systemInstruction(req)
	if err != nil {
		return "", err
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, req.UserPrompt),
	}
	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
		llms.WithJSONMode(),
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := p.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: gemini: %v", ai.ErrInferenceTimeout, err)
		}
		return "", fmt.Errorf("%w: gemini: %v", ai.ErrProviderUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

// systemInstruction appends the output schema to the system prompt.
func systemInstruction(req models.CompletionRequest) (string, error) {
	if req.Schema == nil {
		return req.SystemPrompt, nil
	}
	schemaJSON, err := json.MarshalIndent(req.Schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s schema: %w", req.SchemaName, err)
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(req.SystemPrompt, "\n"))
	b.WriteString("\n# Output\nReturn ONLY a JSON object (no markdown, no commentary) named ")
	b.WriteString(req.SchemaName)
	b.WriteString(" that strictly conforms to this JSON Schema:\n")
	b.Write(schemaJSON)
	b.WriteString("\n")
	return b.String(), nil
}

var _ models.ExtractionProvider = (*Provider)(nil)
