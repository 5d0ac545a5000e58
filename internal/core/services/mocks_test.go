package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
)

// mockAnalysisAPI implements driven.AnalysisAPI for testing.
type mockAnalysisAPI struct {
	AnalyzeFunc      func(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	GetAnalysisFunc  func(ctx context.Context, id string) (*domain.AnalysisResult, error)
	ListAnalysesFunc func(ctx context.Context) ([]domain.HistoryEntry, error)
	HealthFunc       func(ctx context.Context) (*domain.ServiceHealth, error)

	mu          sync.Mutex
	analyzeReqs []domain.AnalysisRequest
	requestIDs  []string
	getCalls    int
	listCalls   int
}

var _ driven.AnalysisAPI = (*mockAnalysisAPI)(nil)

func (m *mockAnalysisAPI) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	m.analyzeReqs = append(m.analyzeReqs, req)
	m.requestIDs = append(m.requestIDs, driven.RequestIDFromContext(ctx))
	m.mu.Unlock()
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return &domain.AnalysisResult{AnalysisID: "default"}, nil
}

func (m *mockAnalysisAPI) GetAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.GetAnalysisFunc != nil {
		return m.GetAnalysisFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnalysisAPI) ListAnalyses(ctx context.Context) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListAnalysesFunc != nil {
		return m.ListAnalysesFunc(ctx)
	}
	return nil, nil
}

func (m *mockAnalysisAPI) Health(ctx context.Context) (*domain.ServiceHealth, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.ServiceHealth{Status: "healthy"}, nil
}

func (m *mockAnalysisAPI) analyzeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.analyzeReqs)
}

func (m *mockAnalysisAPI) listCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func validInput() domain.BusinessInput {
	return domain.NewBusinessInput("Wedding Makeover Studio")
}
