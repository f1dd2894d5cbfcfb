package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/internal/store"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// MsgMissingCredential is returned when enrichment is required but no
// language model provider is configured.
const MsgMissingCredential = "Cannot proceed without a language model API key"

const defaultWriteTimeout = 10 * time.Second

// Extractor is the enrichment step. It never fails; see ai.Extractor.
type Extractor interface {
	Extract(ctx context.Context, description string) ai.Outcome
	Available() bool
}

// Config tunes a Pipeline.
type Config struct {
	// EnrichmentPolicy is config.PolicyRequired or config.PolicyOptional.
	EnrichmentPolicy     string
	MinDescriptionLength int
	WriteTimeout         time.Duration
	// Now overrides the clock used for defaulting createdAt.
	Now func() time.Time
}

// Result is a successfully persisted submission.
type Result struct {
	Record              *models.JobApplication
	AIAnalysisPerformed bool
	Reason              ai.Reason
}

// Pipeline runs one submission through validation, enrichment and persistence.
// Every call inserts a new row.
type Pipeline struct {
	cfg       Config
	extractor Extractor
	store     store.Store
}

// New creates a Pipeline.
func New(cfg Config, extractor Extractor, s store.Store) *Pipeline {
	if cfg.EnrichmentPolicy == "" {
		cfg.EnrichmentPolicy = config.PolicyRequired
	}
	if cfg.MinDescriptionLength <= 0 {
		cfg.MinDescriptionLength = DefaultMinDescriptionLength
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{cfg: cfg, extractor: extractor, store: s}
}

// Submit validates in, enriches it when possible, and stores one record.
// Failures are returned as *Error.
func (p *Pipeline) Submit(ctx context.Context, in SubmissionInput) (*Result, error) {
	sub, err := Validate(in, p.cfg.Now(), p.cfg.MinDescriptionLength)
	if err != nil {
		return nil, err
	}

	if p.cfg.EnrichmentPolicy == config.PolicyRequired && !p.extractor.Available() {
		return nil, &Error{Kind: KindConfiguration, Stage: StageEnrichment, Msg: MsgMissingCredential}
	}

	outcome := p.extractor.Extract(ctx, sub.Description)
	row := Merge(sub, Normalize(outcome.Extraction))

	writeCtx, cancel := context.WithTimeout(ctx, p.cfg.WriteTimeout)
	defer cancel()

	record, err := p.store.CreateJobApplication(writeCtx, &row)
	if err != nil {
		slog.Error("failed to persist job application", "error", err, "ai_analysis", outcome.Performed())
		return nil, &Error{
			Kind:  KindPersistence,
			Stage: StagePersistence,
			Msg:   "Database error: " + store.Classification(err),
			Err:   err,
		}
	}

	slog.Info("job application saved",
		"id", record.ID,
		"ai_analysis", outcome.Performed(),
		"enrichment", outcome.Reason,
	)
	return &Result{
		Record:              record,
		AIAnalysisPerformed: outcome.Performed(),
		Reason:              outcome.Reason,
	}, nil
}
