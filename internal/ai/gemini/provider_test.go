package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/internal/ai/mock"
	"github.com/kiranshivaraju/jobtrail/internal/schema"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func request() models.CompletionRequest {
	c := schema.MustJobExtraction()
	return models.CompletionRequest{
		SystemPrompt: "extract the job",
		UserPrompt:   "Job description:\n\nGo engineer",
		MaxTokens:    900,
		SchemaName:   c.Name(),
		Schema:       c.Document(),
	}
}

func TestComplete_JSONMode(t *testing.T) {
	fake := &fakeModel{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: mock.ConformingResponse}},
	}}
	p := NewWithModel("gemini-2.5-flash", fake)

	content, err := p.Complete(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, mock.ConformingResponse, content)

	assert.True(t, fake.opts.JSONMode)
	assert.Equal(t, float64(0), fake.opts.Temperature)
	assert.Equal(t, 900, fake.opts.MaxTokens)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, fake.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, fake.messages[1].Role)
	assert.Equal(t, "gemini", p.Name())
	assert.Equal(t, "gemini-2.5-flash", p.Model())
}

func TestComplete_Errors(t *testing.T) {
	p := NewWithModel("m", &fakeModel{err: errors.New("quota exceeded")})
	_, err := p.Complete(context.Background(), request())
	assert.ErrorIs(t, err, ai.ErrProviderUnavailable)

	p = NewWithModel("m", &fakeModel{err: context.DeadlineExceeded})
	_, err = p.Complete(context.Background(), request())
	assert.ErrorIs(t, err, ai.ErrInferenceTimeout)

	p = NewWithModel("m", &fakeModel{resp: &llms.ContentResponse{}})
	_, err = p.Complete(context.Background(), request())
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestSystemInstruction(t *testing.T) {
	got, err := systemInstruction(request())
	require.NoError(t, err)

	assert.Contains(t, got, "extract the job")
	assert.Contains(t, got, "JobExtraction")
	assert.Contains(t, got, `"additionalProperties": false`)
	assert.Contains(t, got, `"jobDesc"`)

	req := request()
	req.Schema = nil
	got, err = systemInstruction(req)
	require.NoError(t, err)
	assert.Equal(t, "extract the job", got)
}
