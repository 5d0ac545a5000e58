package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the analysis service",
	Long:  `Queries the service health endpoint and reports which backends are configured.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Health == nil {
		return errServicesNotConfigured
	}

	health, err := svc.Health.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if resolved != nil {
		cmd.Printf("Service:        %s\n", resolved.APIURL)
	}
	cmd.Printf("Status:         %s\n", health.Status)
	cmd.Printf("Database:       %s\n", yesNo(health.DatabaseConnected))
	cmd.Printf("Gemini:         %s\n", yesNo(health.GeminiConfigured))
	cmd.Printf("Google Search:  %s\n", yesNo(health.GoogleSearchConfigured))
	if !health.Timestamp.IsZero() {
		cmd.Printf("Checked at:     %s\n", health.Timestamp.Format("2006-01-02 15:04:05"))
	}

	if !health.Healthy() {
		return errors.New("service is not healthy")
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
