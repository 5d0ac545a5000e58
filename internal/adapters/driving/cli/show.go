package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [analysis id]",
	Short: "Show a stored analysis",
	Long:  `Fetches a previously stored analysis by id and prints the rendered result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	result, err := s.Analysis.LoadFromHistory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load analysis %s: %w", args[0], err)
	}

	if showJSON {
		return outputJSON(cmd, result)
	}
	return outputResult(cmd, result, s.Analysis.Status())
}
