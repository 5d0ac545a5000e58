// Command bizlens is a terminal client for the business analysis service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driven/analysisapi"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/bizlens-cli/internal/config"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	dir, err := file.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	cli.SetConfigStore(store)
	cli.SetSettingsService(services.NewSettingsService(store))
	cli.SetServiceFactory(newServices)

	return cli.Execute(ctx)
}

// newServices wires the analysis client and core services from settings.
func newServices(settings *domain.ClientSettings) (*cli.Services, error) {
	client := analysisapi.NewClient(analysisapi.Config{
		BaseURL:   settings.APIURL,
		Timeout:   settings.RequestTimeout,
		RateLimit: settings.RateLimit,
	})

	history := services.NewHistoryCache(client)
	defaults := settings.DefaultOptions

	return &cli.Services{
		Analysis: services.NewAnalysisService(client, history),
		History:  history,
		Health:   services.NewHealthService(client),
		Form:     services.NewFormSession(defaults),
		NewForm: func() driving.FormSession {
			return services.NewFormSession(defaults)
		},
	}, nil
}
