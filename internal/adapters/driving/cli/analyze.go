package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/render"
)

var analyzeJSON bool

// analyzeFlags maps form fields to the flags that set them.
var analyzeFlags = []struct {
	field domain.Field
	name  string
	usage string
}{
	{domain.FieldBusinessCount, "count", "number of businesses to analyze (1-10)"},
	{domain.FieldBusinessCategory, "category", "business category"},
	{domain.FieldBusinessSubcategory, "subcategory", "business subcategory"},
	{domain.FieldCountry, "country", "country"},
	{domain.FieldState, "state", "state or region"},
	{domain.FieldCity, "city", "city"},
	{domain.FieldArea, "area", "area or neighbourhood"},
	{domain.FieldTechStackMethod, "tech-stack-method", "tech stack detection: both, api or custom"},
	{domain.FieldWebsiteAnalysisMethod, "website-method", "website analysis: both, google_apis or custom"},
	{domain.FieldGenerateOutreach, "outreach", "generate outreach copy (true or false)"},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [business name]",
	Short: "Analyze a business",
	Long: `Submits a business to the analysis service and prints the rendered
result. Analyses can take a minute or more.

Unset options fall back to the configured defaults. Location parts are
joined into a single location string.

Examples:
  bizlens analyze "Wedding Makeover Studio" --city Hyderabad --country India
  bizlens analyze "Acme Bakery" --count 3 --outreach true --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	for _, f := range analyzeFlags {
		analyzeCmd.Flags().String(f.name, "", f.usage)
	}
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Form == nil {
		return fmt.Errorf("form session: %w", errServicesNotConfigured)
	}

	if err := s.Form.Set(domain.FieldBusinessName, args[0]); err != nil {
		return err
	}
	for _, f := range analyzeFlags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := s.Form.Set(f.field, flag.Value.String()); err != nil {
			return fmt.Errorf("--%s: %w", f.name, err)
		}
	}

	input, err := s.Form.Snapshot()
	if err != nil {
		return err
	}

	result, err := s.Analysis.Submit(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return outputJSON(cmd, result)
	}
	return outputResult(cmd, result, s.Analysis.Status())
}

// outputResult prints every visible section of result.
func outputResult(cmd *cobra.Command, result *domain.AnalysisResult, status domain.AnalysisStatus) error {
	units := render.NewRegistry().Render(result, render.ContextFor(status))
	cmd.Println(render.Format(units, render.StylesFor(cmd.OutOrStdout())))
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
