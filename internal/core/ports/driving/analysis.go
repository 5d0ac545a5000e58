package driving

import (
	"context"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// AnalysisOrchestrator runs the submission state machine and owns the
// currently displayed result.
type AnalysisOrchestrator interface {
	// Submit validates the input and issues exactly one analysis request.
	// Returns domain.ErrSubmissionInProgress while another submission is in flight,
	// or a *domain.ValidationError without touching the network.
	Submit(ctx context.Context, input domain.BusinessInput) (*domain.AnalysisResult, error)

	// LoadFromHistory fetches a stored result and displays it. The submission
	// state is not changed and history is not refreshed.
	LoadFromHistory(ctx context.Context, analysisID string) (*domain.AnalysisResult, error)

	// Status returns a snapshot of the state machine.
	Status() domain.AnalysisStatus

	// Subscribe returns a channel receiving a snapshot after every change.
	// Slow receivers miss intermediate snapshots, never the channel's latest.
	Subscribe() <-chan domain.AnalysisStatus
}
