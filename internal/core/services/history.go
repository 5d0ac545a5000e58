package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// Ensure HistoryCache implements the interface.
var _ driving.HistoryService = (*HistoryCache)(nil)

// HistoryCache holds the last list of past analyses fetched from the service.
// The list is replaced wholesale on every successful refresh.
type HistoryCache struct {
	api driven.AnalysisAPI
	now func() time.Time

	mu         sync.RWMutex
	entries    []domain.HistoryEntry
	index      map[string]int
	loaded     bool
	refreshed  time.Time
	generation uint64 // last started refresh
	applied    uint64 // generation of the list currently held
}

// NewHistoryCache creates an empty history cache.
func NewHistoryCache(api driven.AnalysisAPI) *HistoryCache {
	return &HistoryCache{
		api:   api,
		now:   time.Now,
		index: make(map[string]int),
	}
}

// Refresh fetches the service's current list and replaces the cache.
// On failure the previous list is kept and the error is returned.
// When refreshes overlap, a slower older refresh never replaces the list
// stored by a newer one.
func (h *HistoryCache) Refresh(ctx context.Context) ([]domain.HistoryEntry, error) {
	if h.api == nil {
		return h.Entries(), domain.ErrServiceUnavailable
	}

	h.mu.Lock()
	h.generation++
	gen := h.generation
	h.mu.Unlock()

	logger.Debug("History refresh #%d started", gen)

	entries, err := h.api.ListAnalyses(ctx)
	if err != nil {
		logger.Warn("History refresh #%d failed: %v", gen, err)
		return h.Entries(), err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if gen < h.applied {
		logger.Debug("History refresh #%d discarded, #%d already applied", gen, h.applied)
		return copyEntries(h.entries), nil
	}

	h.entries = copyEntries(entries)
	h.index = make(map[string]int, len(h.entries))
	for i, e := range h.entries {
		if _, dup := h.index[e.AnalysisID]; !dup {
			h.index[e.AnalysisID] = i
		}
	}
	h.applied = gen
	h.loaded = true
	h.refreshed = h.now()

	logger.Debug("History refresh #%d applied: %d entries", gen, len(h.entries))
	return copyEntries(h.entries), nil
}

// Entries returns a copy of the cached list in service order.
func (h *HistoryCache) Entries() []domain.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyEntries(h.entries)
}

// Get looks up an entry in the cache without calling the service.
func (h *HistoryCache) Get(analysisID string) (*domain.HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, ok := h.index[analysisID]
	if !ok {
		return nil, false
	}
	entry := h.entries[i]
	entry.Input = entry.Input.Clone()
	return &entry, true
}

// Loaded returns true once a refresh has succeeded.
func (h *HistoryCache) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

// LastRefreshed returns when the list was last replaced.
func (h *HistoryCache) LastRefreshed() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.refreshed
}

func copyEntries(in []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(in))
	for i, e := range in {
		e.Input = e.Input.Clone()
		out[i] = e
	}
	return out
}
