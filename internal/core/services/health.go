package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// HealthService checks the analysis service.
type HealthService struct {
	api driven.AnalysisAPI
}

// NewHealthService creates a new health service.
func NewHealthService(api driven.AnalysisAPI) *HealthService {
	return &HealthService{api: api}
}

// Check queries the service's health endpoint.
func (s *HealthService) Check(ctx context.Context) (*domain.ServiceHealth, error) {
	if s.api == nil {
		return nil, domain.ErrServiceUnavailable
	}

	health, err := s.api.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	logger.Debug("service status %q (database=%t gemini=%t search=%t)",
		health.Status, health.DatabaseConnected, health.GeminiConfigured, health.GoogleSearchConfigured)
	return health, nil
}
