package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/core/services"
)

// mockAnalysisService is a mock implementation of driving.AnalysisOrchestrator.
type mockAnalysisService struct {
	result    *domain.AnalysisResult
	err       error
	submitted []domain.BusinessInput
	loaded    []string
}

func (m *mockAnalysisService) Submit(_ context.Context, input domain.BusinessInput) (*domain.AnalysisResult, error) {
	m.submitted = append(m.submitted, input)
	return m.result, m.err
}

func (m *mockAnalysisService) LoadFromHistory(_ context.Context, id string) (*domain.AnalysisResult, error) {
	m.loaded = append(m.loaded, id)
	return m.result, m.err
}

func (m *mockAnalysisService) Status() domain.AnalysisStatus {
	return domain.AnalysisStatus{}
}

func (m *mockAnalysisService) Subscribe() <-chan domain.AnalysisStatus {
	return make(chan domain.AnalysisStatus)
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) Refresh(_ context.Context) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistoryService) Entries() []domain.HistoryEntry {
	return m.entries
}

func (m *mockHistoryService) Get(_ string) (*domain.HistoryEntry, bool) {
	return nil, false
}

func (m *mockHistoryService) Loaded() bool {
	return m.entries != nil
}

func (m *mockHistoryService) LastRefreshed() time.Time {
	return time.Time{}
}

// newForm returns a real form session seeded with the default options.
func newForm() driving.FormSession {
	return services.NewFormSession(domain.DefaultAnalysisOptions())
}

func newTestServer(analysis *mockAnalysisService, history driving.HistoryService) (*Server, error) {
	return NewServer(&Ports{Analysis: analysis, History: history, NewForm: newForm})
}
