package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultAPIURL is used when no service URL is configured.
const DefaultAPIURL = "http://localhost:8001"

// LogFormat selects the log output encoding.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// ClientSettings configures the client.
type ClientSettings struct {
	// APIURL is the analysis service base URL.
	APIURL string

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64

	// RequestTimeout bounds each request. Zero means no timeout.
	RequestTimeout time.Duration

	// DefaultOptions seed new form sessions.
	DefaultOptions AnalysisOptions

	// LogFormat selects console or JSON logs.
	LogFormat LogFormat
}

// DefaultClientSettings returns the built-in settings.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		APIURL:         DefaultAPIURL,
		RateLimit:      0,
		RequestTimeout: 0,
		DefaultOptions: DefaultAnalysisOptions(),
		LogFormat:      LogFormatConsole,
	}
}

// Validate checks that the settings are usable.
func (s ClientSettings) Validate() error {
	if s.APIURL == "" {
		return fmt.Errorf("%w: api url is required", ErrInvalidInput)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if !s.DefaultOptions.TechStackMethod.IsValid() {
		return fmt.Errorf("%w: unknown tech stack method %q", ErrInvalidInput, s.DefaultOptions.TechStackMethod)
	}
	if !s.DefaultOptions.WebsiteAnalysisMethod.IsValid() {
		return fmt.Errorf("%w: unknown website analysis method %q", ErrInvalidInput, s.DefaultOptions.WebsiteAnalysisMethod)
	}
	if !s.LogFormat.IsValid() {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidInput, s.LogFormat)
	}
	return nil
}

// Setting keys as stored in the config file (dot notation).
const (
	SettingAPIURL                = "api.url"
	SettingRateLimit             = "api.rate_limit"
	SettingTimeout               = "api.timeout"
	SettingTechStackMethod       = "analysis.tech_stack_method"
	SettingWebsiteAnalysisMethod = "analysis.website_analysis_method"
	SettingGenerateOutreach      = "analysis.generate_outreach"
	SettingLogFormat             = "log.format"
)

// SettingKeys returns every supported setting key in display order.
func SettingKeys() []string {
	return []string{
		SettingAPIURL,
		SettingRateLimit,
		SettingTimeout,
		SettingTechStackMethod,
		SettingWebsiteAnalysisMethod,
		SettingGenerateOutreach,
		SettingLogFormat,
	}
}

// Value returns the display value of a setting key, or "" for unknown keys.
func (s ClientSettings) Value(key string) string {
	switch key {
	case SettingAPIURL:
		return s.APIURL
	case SettingRateLimit:
		return strconv.FormatFloat(s.RateLimit, 'f', -1, 64)
	case SettingTimeout:
		return s.RequestTimeout.String()
	case SettingTechStackMethod:
		return s.DefaultOptions.TechStackMethod.String()
	case SettingWebsiteAnalysisMethod:
		return s.DefaultOptions.WebsiteAnalysisMethod.String()
	case SettingGenerateOutreach:
		return strconv.FormatBool(s.DefaultOptions.GenerateOutreach)
	case SettingLogFormat:
		return string(s.LogFormat)
	default:
		return ""
	}
}
