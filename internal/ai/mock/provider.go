package mock

import (
	"context"
	"sync"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

// ConformingResponse is a model reply that satisfies the job extraction schema.
const ConformingResponse = `{
  "jobTitle": "Senior Backend Engineer",
  "company": "Acme Payments",
  "skillsRequired": ["Go", "PostgreSQL", "Kubernetes"],
  "skillsPreferred": ["gRPC"],
  "experienceRequired": "5+ years",
  "salaryRange": "150k-180k",
  "remote": "hybrid",
  "jobDesc": "Design and operate the payment APIs that move money between merchants and banks."
}`

// MockProvider satisfies models.ExtractionProvider for testing.
type MockProvider struct {
	Name_        string
	Model_       string
	CompleteFunc func(ctx context.Context, req models.CompletionRequest) (string, error)

	mu       sync.Mutex
	requests []models.CompletionRequest
}

func (m *MockProvider) Name() string  { return m.Name_ }
func (m *MockProvider) Model() string { return m.Model_ }

func (m *MockProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []models.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CompletionRequest(nil), m.requests...)
}

// Calls returns how many times Complete was called.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// NewMockProvider returns a MockProvider that answers with ConformingResponse.
func NewMockProvider() *MockProvider {
	return NewStaticProvider(ConformingResponse)
}

// NewStaticProvider returns a MockProvider that always answers with content.
func NewStaticProvider(content string) *MockProvider {
	return &MockProvider{
		Name_:  "mock",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ models.CompletionRequest) (string, error) {
			return content, nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_:  "mock-failing",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ models.CompletionRequest) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_:  "mock-timeout",
		Model_: "mock-v1",
		CompleteFunc: func(ctx context.Context, _ models.CompletionRequest) (string, error) {
			<-ctx.Done()
			return "", ai.ErrInferenceTimeout
		},
	}
}

// NewPanickingProvider returns a MockProvider whose Complete panics.
func NewPanickingProvider() *MockProvider {
	return &MockProvider{
		Name_:  "mock-panic",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ models.CompletionRequest) (string, error) {
			panic("provider exploded")
		},
	}
}

// Compile-time check that MockProvider implements ExtractionProvider.
var _ models.ExtractionProvider = (*MockProvider)(nil)
