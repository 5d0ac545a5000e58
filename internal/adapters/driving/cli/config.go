package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client settings",
	Long: `View and change persisted client settings.

Settings are read from the config file, then overridden by BIZLENS_*
environment variables and command-line flags.

Keys:
  api.url                          analysis service base URL
  api.rate_limit                   requests per second (0 = unlimited)
  api.timeout                      request timeout, e.g. 2m (0 = none)
  analysis.tech_stack_method       both, api or custom
  analysis.website_analysis_method both, google_apis or custom
  analysis.generate_outreach       true or false
  log.format                       console or json`,
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE:        runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Persist a setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE:        runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:         "unset [key]",
	Short:       "Remove a setting, restoring its default",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE:        runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.Path(); path != "" {
		cmd.Printf("File: %s\n", path)
	}
	cmd.Println()

	for _, key := range settingsService.Keys() {
		value := settings.Value(key)
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-33s %s", key, value)
		if resolved != nil {
			if effective := resolved.Value(key); effective != settings.Value(key) {
				cmd.Printf("  (overridden: %s)", effective)
			}
		}
		cmd.Println()
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}
