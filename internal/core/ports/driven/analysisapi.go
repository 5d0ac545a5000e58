package driven

import (
	"context"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// AnalysisAPI is the remote business-intelligence service.
// Implementations translate HTTP outcomes into domain errors:
//
//   - a missing analysis wraps domain.ErrNotFound (HTTP 404 only)
//   - a rejected request shape wraps domain.ErrSchemaValidation (HTTP 422)
//   - transport failures and other non-2xx responses wrap domain.ErrRequestFailed
type AnalysisAPI interface {
	// Analyze submits one analysis request and waits for its result.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// GetAnalysis fetches a stored analysis by identifier.
	GetAnalysis(ctx context.Context, analysisID string) (*domain.AnalysisResult, error)

	// ListAnalyses returns stored analyses in service order.
	ListAnalyses(ctx context.Context) ([]domain.HistoryEntry, error)

	// Health reports the service's health.
	Health(ctx context.Context) (*domain.ServiceHealth, error)
}
