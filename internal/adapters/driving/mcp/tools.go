package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/render"
)

// AnalyzeInput is the input schema for the analyze_business tool.
type AnalyzeInput struct {
	BusinessName          string `json:"business_name" jsonschema:"name of the business to analyze"`
	BusinessCount         int    `json:"business_count,omitempty" jsonschema:"number of matching businesses to analyze, 1 to 10 (default 1)"`
	BusinessCategory      string `json:"business_category,omitempty" jsonschema:"business category, e.g. salon"`
	BusinessSubcategory   string `json:"business_subcategory,omitempty" jsonschema:"business subcategory"`
	Country               string `json:"country,omitempty" jsonschema:"country"`
	State                 string `json:"state,omitempty" jsonschema:"state or region"`
	City                  string `json:"city,omitempty" jsonschema:"city"`
	Area                  string `json:"area,omitempty" jsonschema:"area or neighbourhood"`
	TechStackMethod       string `json:"tech_stack_method,omitempty" jsonschema:"tech stack detection: both, api or custom"`
	WebsiteAnalysisMethod string `json:"website_analysis_method,omitempty" jsonschema:"website analysis: both, google_apis or custom"`
	GenerateOutreach      *bool  `json:"generate_outreach,omitempty" jsonschema:"whether to generate outreach copy"`
}

// GetAnalysisInput is the input schema for the get_analysis tool.
type GetAnalysisInput struct {
	AnalysisID string `json:"analysis_id" jsonschema:"id of a stored analysis"`
}

// ListAnalysesInput is the input schema for the list_analyses tool.
type ListAnalysesInput struct{}

// AnalysisOutput is the output schema for tools returning a single analysis.
type AnalysisOutput struct {
	AnalysisID   string `json:"analysis_id"`
	BusinessName string `json:"business_name,omitempty"`
	Report       string `json:"report"`
}

// ListAnalysesOutput is the output schema for the list_analyses tool.
type ListAnalysesOutput struct {
	Analyses []AnalysisSummary `json:"analyses"`
	Count    int               `json:"count"`
}

// AnalysisSummary describes one stored analysis.
type AnalysisSummary struct {
	AnalysisID   string `json:"analysis_id"`
	BusinessName string `json:"business_name"`
	Location     string `json:"location,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type fieldValue struct {
	field domain.Field
	value string
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_business",
		Description: "Run a business intelligence analysis. This can take a minute or more.",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_analysis",
		Description: "Fetch a stored analysis by id",
	}, s.handleGetAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_analyses",
		Description: "List stored analyses",
	}, s.handleListAnalyses)
}

// handleAnalyze handles the analyze_business tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	form := s.ports.NewForm()

	values := []fieldValue{
		{domain.FieldBusinessName, input.BusinessName},
		{domain.FieldBusinessCategory, input.BusinessCategory},
		{domain.FieldBusinessSubcategory, input.BusinessSubcategory},
		{domain.FieldCountry, input.Country},
		{domain.FieldState, input.State},
		{domain.FieldCity, input.City},
		{domain.FieldArea, input.Area},
		{domain.FieldTechStackMethod, input.TechStackMethod},
		{domain.FieldWebsiteAnalysisMethod, input.WebsiteAnalysisMethod},
	}
	if input.BusinessCount != 0 {
		values = append(values, fieldValue{domain.FieldBusinessCount, strconv.Itoa(input.BusinessCount)})
	}
	if input.GenerateOutreach != nil {
		values = append(values, fieldValue{domain.FieldGenerateOutreach, strconv.FormatBool(*input.GenerateOutreach)})
	}

	for _, v := range values {
		if v.value == "" && v.field != domain.FieldBusinessName {
			continue
		}
		if err := form.Set(v.field, v.value); err != nil {
			return nil, AnalysisOutput{}, err
		}
	}

	businessInput, err := form.Snapshot()
	if err != nil {
		return nil, AnalysisOutput{}, err
	}

	result, err := s.ports.Analysis.Submit(ctx, businessInput)
	if err != nil {
		return nil, AnalysisOutput{}, fmt.Errorf("analysis failed: %w", err)
	}

	out := analysisOutput(result, businessInput.Options.GenerateOutreach)
	if out.BusinessName == "" {
		out.BusinessName = businessInput.BusinessName
	}
	return nil, out, nil
}

// handleGetAnalysis handles the get_analysis tool invocation.
func (s *Server) handleGetAnalysis(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAnalysisInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	result, err := s.ports.Analysis.LoadFromHistory(ctx, input.AnalysisID)
	if err != nil {
		return nil, AnalysisOutput{}, fmt.Errorf("loading analysis %s: %w", input.AnalysisID, err)
	}
	return nil, analysisOutput(result, result.OutreachRequested()), nil
}

// handleListAnalyses handles the list_analyses tool invocation.
func (s *Server) handleListAnalyses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListAnalysesInput,
) (*mcp.CallToolResult, ListAnalysesOutput, error) {
	entries, err := s.listEntries(ctx)
	if err != nil {
		return nil, ListAnalysesOutput{}, err
	}
	return nil, ListAnalysesOutput{Analyses: summaries(entries), Count: len(entries)}, nil
}

// listEntries refreshes the history cache. Without a history port the list is empty.
func (s *Server) listEntries(ctx context.Context) ([]domain.HistoryEntry, error) {
	if s.ports.History == nil {
		return nil, nil
	}
	entries, err := s.ports.History.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return entries, nil
}

func summaries(entries []domain.HistoryEntry) []AnalysisSummary {
	out := make([]AnalysisSummary, len(entries))
	for i := range entries {
		out[i] = AnalysisSummary{
			AnalysisID:   entries[i].AnalysisID,
			BusinessName: entries[i].Title(),
			Location:     entries[i].Location,
		}
		if !entries[i].CreatedAt.IsZero() {
			out[i].CreatedAt = entries[i].CreatedAt.Format(time.RFC3339)
		}
	}
	return out
}

// analysisOutput renders result as plain text.
func analysisOutput(result *domain.AnalysisResult, outreach bool) AnalysisOutput {
	units := render.NewRegistry().Render(result, render.Context{GenerateOutreach: outreach})
	out := AnalysisOutput{
		AnalysisID: result.AnalysisID,
		Report:     render.Format(units, render.PlainStyles()),
	}
	if bi := result.BusinessInfo; bi != nil && bi.ProcessedData != nil {
		out.BusinessName = bi.ProcessedData.BusinessName
	}
	return out
}
