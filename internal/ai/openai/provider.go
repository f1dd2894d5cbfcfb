// Package openai implements models.ExtractionProvider for OpenAI and for
// servers exposing the OpenAI chat completions API (Ollama, vLLM).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// Options configures a Provider.
type Options struct {
	Name    string // reported by Name(); defaults to "openai"
	APIKey  string
	Model   string
	BaseURL string       // empty means api.openai.com
	Client  *http.Client // optional (tests)
}

// Provider sends structured-output chat completions with a strict json_schema
// response format.
type Provider struct {
	name   string
	model  string
	client oai.Client
}

// NewProvider creates a Provider. SDK retries are disabled: a failed call is
// reported once and the caller decides what to do.
func NewProvider(opts Options) *Provider {
	if opts.Name == "" {
		opts.Name = "openai"
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(withTrailingSlash(opts.BaseURL)))
	}
	if opts.Client != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.Client))
	}

	return &Provider{
		name:   opts.Name,
		model:  opts.Model,
		client: oai.NewClient(reqOpts...),
	}
}

func (p *Provider) Name() string  { return p.name }
func (p *Provider) Model() string { return p.model }

// Complete issues one chat completion and returns the message content.
func (p *Provider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.SystemPrompt),
			oai.UserMessage(req.UserPrompt),
		},
		Temperature: oai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = oai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Strict: oai.Bool(true),
					Schema: req.Schema,
				},
			},
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", p.mapError(ctx, err)
	}
	if len(completion.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}
	choice := completion.Choices[0]
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: model refused: %s", ai.ErrInvalidResponse, choice.Message.Refusal)
	}
	return choice.Message.Content, nil
}

func (p *Provider) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ai.ErrInferenceTimeout, p.name, err)
	}
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s returned status %d", ai.ErrProviderUnavailable, p.name, apiErr.StatusCode)
	}
	return fmt.Errorf("%w: %s: %v", ai.ErrProviderUnavailable, p.name, err)
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

var _ models.ExtractionProvider = (*Provider)(nil)
