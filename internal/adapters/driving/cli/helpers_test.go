package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/core/services"
)

// mockAnalysis implements driving.AnalysisOrchestrator for CLI tests.
type mockAnalysis struct {
	SubmitFunc func(ctx context.Context, input domain.BusinessInput) (*domain.AnalysisResult, error)
	LoadFunc   func(ctx context.Context, id string) (*domain.AnalysisResult, error)

	mu        sync.Mutex
	status    domain.AnalysisStatus
	submitted []domain.BusinessInput
}

func (m *mockAnalysis) Submit(ctx context.Context, input domain.BusinessInput) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	m.submitted = append(m.submitted, input)
	m.mu.Unlock()

	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, input)
	}
	result := &domain.AnalysisResult{AnalysisID: "abc123"}
	m.mu.Lock()
	m.status = domain.AnalysisStatus{
		State:        domain.StateSucceeded,
		Result:       result,
		Origin:       domain.OriginSubmission,
		ShowOutreach: input.Options.GenerateOutreach,
	}
	m.mu.Unlock()
	return result, nil
}

func (m *mockAnalysis) LoadFromHistory(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}
	return &domain.AnalysisResult{AnalysisID: id}, nil
}

func (m *mockAnalysis) Status() domain.AnalysisStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *mockAnalysis) Subscribe() <-chan domain.AnalysisStatus {
	return make(chan domain.AnalysisStatus)
}

func (m *mockAnalysis) Submitted() []domain.BusinessInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitted
}

// mockHistory implements driving.HistoryService for CLI tests.
type mockHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistory) Refresh(_ context.Context) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistory) Entries() []domain.HistoryEntry {
	return m.entries
}

func (m *mockHistory) Get(string) (*domain.HistoryEntry, bool) {
	return nil, false
}

func (m *mockHistory) Loaded() bool {
	return m.entries != nil
}

func (m *mockHistory) LastRefreshed() time.Time {
	return time.Time{}
}

// mockHealth implements driving.HealthService for CLI tests.
type mockHealth struct {
	health *domain.ServiceHealth
	err    error
}

func (m *mockHealth) Check(_ context.Context) (*domain.ServiceHealth, error) {
	return m.health, m.err
}

func newTestForm() driving.FormSession {
	return services.NewFormSession(domain.DefaultAnalysisOptions())
}

// newTestServices returns services backed by mocks and a real form session.
func newTestServices() (*Services, *mockAnalysis, *mockHistory) {
	analysis := &mockAnalysis{}
	history := &mockHistory{}
	return &Services{
		Analysis: analysis,
		History:  history,
		Health:   &mockHealth{health: &domain.ServiceHealth{Status: "healthy"}},
		Form:     newTestForm(),
		NewForm:  newTestForm,
	}, analysis, history
}

// setupTestServices installs s and an in-memory settings store for one test.
func setupTestServices(t *testing.T, s *Services) {
	t.Helper()

	prevStore, prevSettings := configStore, settingsService
	prevSvc, prevFactory := svc, serviceFactory

	store := memory.NewConfigStore()
	configStore = store
	settingsService = services.NewSettingsService(store)
	svc = s
	serviceFactory = nil

	t.Cleanup(func() {
		configStore, settingsService = prevStore, prevSettings
		svc, serviceFactory = prevSvc, prevFactory
		resolved = nil
	})
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps values
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
