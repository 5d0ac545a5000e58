package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	Long:  `Fetches the list of stored analyses from the service, newest first as returned.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output the list as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.History == nil {
		return fmt.Errorf("history: %w", errServicesNotConfigured)
	}

	entries, err := s.History.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, entries)
	}
	return outputHistoryTable(cmd, entries)
}

func outputHistoryTable(cmd *cobra.Command, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		cmd.Println("No analyses found.")
		return nil
	}

	cmd.Printf("Analyses (%d):\n", len(entries))
	cmd.Println()
	for i := range entries {
		e := &entries[i]
		cmd.Printf("  %s  %s\n", e.AnalysisID, e.Title())
		if e.Location != "" {
			cmd.Printf("      Location: %s\n", e.Location)
		}
		if !e.CreatedAt.IsZero() {
			cmd.Printf("      Created:  %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
