// Package cli provides the cobra command tree for bizlens.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bizlens-cli/internal/config"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationNoServices marks commands that run without the analysis services.
const annotationNoServices = "bizlens/no-services"

var errServicesNotConfigured = errors.New("analysis service not configured")

// Services bundles the driving ports the commands call.
type Services struct {
	Analysis driving.AnalysisOrchestrator
	History  driving.HistoryService
	Health   driving.HealthService
	Form     driving.FormSession

	// NewForm returns a fresh form session. Used where calls may overlap.
	NewForm func() driving.FormSession
}

// ServiceFactory builds the services from resolved settings.
type ServiceFactory func(settings *domain.ClientSettings) (*Services, error)

var (
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
	serviceFactory  ServiceFactory

	// svc is built lazily by setup unless already set.
	svc *Services

	// resolved holds the settings of the current invocation.
	resolved *domain.ClientSettings
)

var (
	verboseFlag   bool
	apiURLFlag    string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "bizlens",
	Short: "Business intelligence analysis from the terminal",
	Long: `bizlens submits businesses to the analysis service and renders the
returned intelligence: business details, LinkedIn presence, tech stack,
website scores, market intelligence and optional outreach copy.

Run without arguments to see the available commands, or start the
interactive interface with 'bizlens tui'.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "analysis service base URL")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log format: console or json")
}

// SetConfigStore sets the store settings are read from.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// SetSettingsService sets the service behind 'bizlens config'.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetServiceFactory sets how services are built once settings are resolved.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetServices injects ready-made services, bypassing the factory.
func SetServices(s *Services) {
	svc = s
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	settings, err := config.Load(configStore, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	resolved = settings
	logger.SetFormat(logger.Format(settings.LogFormat))
	logger.Debug("api url: %s", settings.APIURL)

	if cmd.Annotations[annotationNoServices] != "" || svc != nil || serviceFactory == nil {
		return nil
	}

	built, err := serviceFactory(settings)
	if err != nil {
		return fmt.Errorf("creating services: %w", err)
	}
	svc = built
	return nil
}

// requireServices returns the services or an error when none are configured.
func requireServices() (*Services, error) {
	if svc == nil || svc.Analysis == nil {
		return nil, errServicesNotConfigured
	}
	return svc, nil
}
