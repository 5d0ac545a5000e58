package driving

import (
	"context"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// HealthService reports whether the analysis service is reachable and configured.
type HealthService interface {
	// Check queries the service's health endpoint.
	Check(ctx context.Context) (*domain.ServiceHealth, error)
}
