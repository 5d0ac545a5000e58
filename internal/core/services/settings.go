package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages persisted client settings.
// Only the config store is consulted; environment and flag overrides are
// applied by the config package at startup.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the persisted settings merged over the defaults.
func (s *SettingsService) Get() (*domain.ClientSettings, error) {
	settings := domain.DefaultClientSettings()

	if v := s.configStore.GetString(domain.SettingAPIURL); v != "" {
		settings.APIURL = v
	}
	if v, ok := s.configStore.Get(domain.SettingRateLimit); ok {
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", domain.SettingRateLimit, err)
		}
		settings.RateLimit = f
	}
	if v := s.configStore.GetString(domain.SettingTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, domain.SettingTimeout, err)
		}
		settings.RequestTimeout = d
	}
	if v := s.configStore.GetString(domain.SettingTechStackMethod); v != "" {
		settings.DefaultOptions.TechStackMethod = domain.TechStackMethod(v)
	}
	if v := s.configStore.GetString(domain.SettingWebsiteAnalysisMethod); v != "" {
		settings.DefaultOptions.WebsiteAnalysisMethod = domain.WebsiteAnalysisMethod(v)
	}
	if _, ok := s.configStore.Get(domain.SettingGenerateOutreach); ok {
		settings.DefaultOptions.GenerateOutreach = s.configStore.GetBool(domain.SettingGenerateOutreach)
	}
	if v := s.configStore.GetString(domain.SettingLogFormat); v != "" {
		settings.LogFormat = domain.LogFormat(v)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Set validates value for key and persists it in its native type.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := ParseSetting(key, value)
	if err != nil {
		return err
	}
	return s.configStore.Set(key, parsed)
}

// Unset removes a persisted setting so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys returns every supported setting key.
func (s *SettingsService) Keys() []string {
	return domain.SettingKeys()
}

// Path returns the config store location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// ParseSetting converts a raw value to the type stored for key.
// Errors wrap domain.ErrInvalidInput.
func ParseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)

	switch key {
	case domain.SettingAPIURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: %s must be an absolute URL", domain.ErrInvalidInput, key)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("%w: %s must use http or https", domain.ErrInvalidInput, key)
		}
		return strings.TrimRight(value, "/"), nil

	case domain.SettingRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return f, nil

	case domain.SettingTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: %s must be a duration such as 30s or 2m", domain.ErrInvalidInput, key)
		}
		return d.String(), nil

	case domain.SettingTechStackMethod:
		if m := domain.TechStackMethod(value); !m.IsValid() {
			return nil, fmt.Errorf("%w: %s must be one of both, api, custom", domain.ErrInvalidInput, key)
		}
		return value, nil

	case domain.SettingWebsiteAnalysisMethod:
		if m := domain.WebsiteAnalysisMethod(value); !m.IsValid() {
			return nil, fmt.Errorf("%w: %s must be one of both, google_apis, custom", domain.ErrInvalidInput, key)
		}
		return value, nil

	case domain.SettingGenerateOutreach:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil

	case domain.SettingLogFormat:
		if f := domain.LogFormat(value); !f.IsValid() {
			return nil, fmt.Errorf("%w: %s must be console or json", domain.ErrInvalidInput, key)
		}
		return value, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func isSettingKey(key string) bool {
	for _, k := range domain.SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: not a number", domain.ErrInvalidInput)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: not a number", domain.ErrInvalidInput)
	}
}
