package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// HistoryService is the cached list of past analyses.
type HistoryService interface {
	// Refresh replaces the cached list with the service's current list.
	// On failure the previous list is kept.
	Refresh(ctx context.Context) ([]domain.HistoryEntry, error)

	// Entries returns the last refreshed list.
	Entries() []domain.HistoryEntry

	// Get looks up an entry in the cache. It never calls the service.
	Get(analysisID string) (*domain.HistoryEntry, bool)

	// Loaded returns true once a refresh has succeeded.
	Loaded() bool

	// LastRefreshed returns when the cache was last replaced.
	LastRefreshed() time.Time
}
