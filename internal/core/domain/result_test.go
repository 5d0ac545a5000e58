package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisResult_OutreachRequested(t *testing.T) {
	tests := []struct {
		name     string
		result   *AnalysisResult
		expected bool
	}{
		{name: "nil result", result: nil, expected: false},
		{name: "no echo", result: &AnalysisResult{}, expected: false},
		{
			name:     "options echo wins",
			result:   &AnalysisResult{Options: &AnalysisOptions{GenerateOutreach: true}, Input: &BusinessInput{}},
			expected: true,
		},
		{
			name:     "options echo false",
			result:   &AnalysisResult{Options: &AnalysisOptions{GenerateOutreach: false}},
			expected: false,
		},
		{
			name: "falls back to input echo",
			result: &AnalysisResult{Input: &BusinessInput{
				Options: AnalysisOptions{GenerateOutreach: true},
			}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.OutreachRequested())
		})
	}
}

func TestOutreachSection_HasMessage(t *testing.T) {
	var nilSection *OutreachSection
	assert.False(t, nilSection.HasMessage())
	assert.False(t, (&OutreachSection{Note: "not requested"}).HasMessage())
	assert.True(t, (&OutreachSection{SubjectLine: "Hello"}).HasMessage())
	assert.True(t, (&OutreachSection{BodyParagraphs: []string{"p"}}).HasMessage())
}

func TestInvestmentLevel_IsValid(t *testing.T) {
	assert.True(t, InvestmentLow.IsValid())
	assert.True(t, InvestmentMedium.IsValid())
	assert.True(t, InvestmentHigh.IsValid())
	assert.False(t, InvestmentLevel("MEDIUM").IsValid())
	assert.False(t, InvestmentLevel("").IsValid())
}

func TestHistoryEntry_Title(t *testing.T) {
	named := HistoryEntry{AnalysisID: "abc123", Input: BusinessInput{BusinessName: "Acme"}}
	unnamed := HistoryEntry{AnalysisID: "abc123"}

	assert.Equal(t, "Acme", named.Title())
	assert.Equal(t, "abc123", unnamed.Title())
}

func TestServiceHealth_Healthy(t *testing.T) {
	assert.True(t, ServiceHealth{Status: "healthy"}.Healthy())
	assert.False(t, ServiceHealth{Status: "degraded"}.Healthy())
	assert.False(t, ServiceHealth{}.Healthy())
}

func TestAnalysisState_Terminal(t *testing.T) {
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateSubmitting.Terminal())
	assert.True(t, StateSucceeded.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.Equal(t, "submitting", StateSubmitting.String())
}
