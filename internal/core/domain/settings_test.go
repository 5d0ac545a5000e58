package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClientSettings_Valid(t *testing.T) {
	s := DefaultClientSettings()

	assert.NoError(t, s.Validate())
	assert.Equal(t, DefaultAPIURL, s.APIURL)
	assert.Equal(t, LogFormatConsole, s.LogFormat)
	assert.Equal(t, DefaultAnalysisOptions(), s.DefaultOptions)
}

func TestClientSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientSettings)
	}{
		{"empty url", func(s *ClientSettings) { s.APIURL = "" }},
		{"negative rate", func(s *ClientSettings) { s.RateLimit = -1 }},
		{"negative timeout", func(s *ClientSettings) { s.RequestTimeout = -time.Second }},
		{"bad tech method", func(s *ClientSettings) { s.DefaultOptions.TechStackMethod = "x" }},
		{"bad website method", func(s *ClientSettings) { s.DefaultOptions.WebsiteAnalysisMethod = "x" }},
		{"bad log format", func(s *ClientSettings) { s.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultClientSettings()
			tt.mutate(&s)
			err := s.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestLogFormat_IsValid(t *testing.T) {
	assert.True(t, LogFormatConsole.IsValid())
	assert.True(t, LogFormatJSON.IsValid())
	assert.False(t, LogFormat("").IsValid())
}

func TestAnalysisResult_OutreachRequested_Settings(t *testing.T) {
	var nilResult *AnalysisResult
	assert.False(t, nilResult.OutreachRequested())

	assert.False(t, (&AnalysisResult{}).OutreachRequested())

	opts := DefaultAnalysisOptions()
	opts.GenerateOutreach = true
	assert.True(t, (&AnalysisResult{Options: &opts}).OutreachRequested())

	in := NewBusinessInput("Acme")
	in.Options.GenerateOutreach = true
	assert.True(t, (&AnalysisResult{Input: &in}).OutreachRequested())
}

func TestOutreachSection_HasMessage_Settings(t *testing.T) {
	var nilSection *OutreachSection
	assert.False(t, nilSection.HasMessage())
	assert.False(t, (&OutreachSection{Note: "Outreach generation was not requested"}).HasMessage())
	assert.True(t, (&OutreachSection{SubjectLine: "Hi"}).HasMessage())
}

func TestHistoryEntry_Title_Settings(t *testing.T) {
	assert.Equal(t, "Acme", HistoryEntry{AnalysisID: "a1", Input: NewBusinessInput("Acme")}.Title())
	assert.Equal(t, "a1", HistoryEntry{AnalysisID: "a1"}.Title())
}

func TestAnalysisState_Terminal_Settings(t *testing.T) {
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateSubmitting.Terminal())
	assert.True(t, StateSucceeded.Terminal())
	assert.True(t, StateFailed.Terminal())
}

func TestInvestmentLevel_IsValid_Settings(t *testing.T) {
	assert.True(t, InvestmentLow.IsValid())
	assert.True(t, InvestmentMedium.IsValid())
	assert.True(t, InvestmentHigh.IsValid())
	assert.False(t, InvestmentLevel("extreme").IsValid())
}

func TestServiceHealth_Healthy_Settings(t *testing.T) {
	assert.True(t, ServiceHealth{Status: "healthy"}.Healthy())
	assert.False(t, ServiceHealth{Status: "degraded"}.Healthy())
}

func TestSettingKeys_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range SettingKeys() {
		assert.False(t, seen[k], k)
		seen[k] = true
	}
	assert.Len(t, seen, 7)
}

func TestClientSettings_Value(t *testing.T) {
	s := DefaultClientSettings()
	s.RateLimit = 2.5
	s.RequestTimeout = 90 * time.Second

	assert.Equal(t, DefaultAPIURL, s.Value(SettingAPIURL))
	assert.Equal(t, "2.5", s.Value(SettingRateLimit))
	assert.Equal(t, "1m30s", s.Value(SettingTimeout))
	assert.Equal(t, "both", s.Value(SettingTechStackMethod))
	assert.Equal(t, "both", s.Value(SettingWebsiteAnalysisMethod))
	assert.Equal(t, "false", s.Value(SettingGenerateOutreach))
	assert.Equal(t, "console", s.Value(SettingLogFormat))
	assert.Equal(t, "", s.Value("nope"))

	for _, key := range SettingKeys() {
		assert.NotEmpty(t, s.Value(key), key)
	}
}
