package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kiranshivaraju/jobtrail/internal/schema"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// Reason records why an extraction did or did not produce enrichment.
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonShortInput      Reason = "skipped_short_input"
	ReasonNoProvider      Reason = "skipped_no_provider"
	ReasonProviderError   Reason = "provider_error"
	ReasonTimeout         Reason = "timeout"
	ReasonEmptyResponse   Reason = "empty_response"
	ReasonInvalidJSON     Reason = "invalid_json"
	ReasonSchemaViolation Reason = "schema_violation"
)

const (
	defaultMaxTokens = 900
	// maxInputBytes caps the description sent to the model.
	maxInputBytes = 20000
)

// Outcome is the result of an extraction attempt: either a validated
// Extraction, or nil with the Reason enrichment did not happen.
type Outcome struct {
	Extraction *models.Extraction
	Reason     Reason
}

// Performed reports whether enrichment data is present.
func (o Outcome) Performed() bool { return o.Extraction != nil }

// ExtractorConfig tunes an Extractor.
type ExtractorConfig struct {
	// Timeout bounds the single provider call.
	Timeout time.Duration
	// MinLength is the trimmed description length, in characters, below which
	// no call is made.
	MinLength int
	MaxTokens int
}

// Extractor turns a free-text job description into a schema-validated
// Extraction. It is best effort: Extract never returns an error, every
// failure becomes an Outcome without data.
type Extractor struct {
	provider models.ExtractionProvider
	contract *schema.Contract
	cfg      ExtractorConfig
}

// NewExtractor creates an Extractor. A nil provider yields an Extractor that
// always skips.
func NewExtractor(provider models.ExtractionProvider, contract *schema.Contract, cfg ExtractorConfig) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Extractor{provider: provider, contract: contract, cfg: cfg}
}

// Available reports whether a provider is configured.
func (e *Extractor) Available() bool { return e.provider != nil }

// ProviderName returns the configured provider name, or "none".
func (e *Extractor) ProviderName() string {
	if e.provider == nil {
		return "none"
	}
	return e.provider.Name()
}

// Extract runs one structured-output call for description and validates the result.
func (e *Extractor) Extract(ctx context.Context, description string) (out Outcome) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < e.cfg.MinLength {
		return Outcome{Reason: ReasonShortInput}
	}
	if e.provider == nil {
		return Outcome{Reason: ReasonNoProvider}
	}

	logger := slog.With("provider", e.provider.Name(), "model", e.provider.Model())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in extraction provider", "error", r)
			out = Outcome{Reason: ReasonProviderError}
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	content, err := e.provider.Complete(callCtx, models.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt(truncateString(description, maxInputBytes)),
		Temperature:  0,
		MaxTokens:    e.cfg.MaxTokens,
		SchemaName:   e.contract.Name(),
		Schema:       e.contract.Document(),
	})
	if err != nil {
		reason := ReasonProviderError
		if errors.Is(err, ErrInferenceTimeout) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		logger.Warn("extraction call failed", "reason", reason, "error", err)
		return Outcome{Reason: reason}
	}

	extraction, reason, err := e.decode(content)
	if err != nil {
		logger.Warn("extraction discarded", "reason", reason, "error", err)
		return Outcome{Reason: reason}
	}

	logger.Info("extraction completed", "duration_ms", time.Since(start).Milliseconds())
	return Outcome{Extraction: extraction, Reason: ReasonOK}
}

// decode parses and validates raw model output against the contract.
func (e *Extractor) decode(content string) (*models.Extraction, Reason, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ReasonEmptyResponse, ErrEmptyResponse
	}

	raw, err := parseStructuredJSON(content)
	if err != nil {
		return nil, ReasonInvalidJSON, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ReasonInvalidJSON, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := e.contract.Validate(doc); err != nil {
		return nil, ReasonSchemaViolation, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	var extraction models.Extraction
	if err := json.Unmarshal(raw, &extraction); err != nil {
		return nil, ReasonInvalidJSON, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if extraction.SkillsRequired == nil {
		extraction.SkillsRequired = []string{}
	}
	if extraction.SkillsPreferred == nil {
		extraction.SkillsPreferred = []string{}
	}
	return &extraction, ReasonOK, nil
}
