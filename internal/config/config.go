// Package config resolves the effective client settings.
//
// Layers, lowest to highest precedence:
//
//  1. built-in defaults
//  2. the config store (~/.bizlens/config.toml)
//  3. environment variables (BIZLENS_API_URL, BIZLENS_LOG_FORMAT, ...),
//     with REACT_APP_BACKEND_URL accepted as a fallback for the service URL
//  4. command-line flags that were explicitly set
//
// A .env file in the working directory is loaded before the environment is
// read; it never overrides variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BIZLENS"

// LegacyAPIURLEnv is the web frontend's variable for the service URL.
const LegacyAPIURLEnv = "REACT_APP_BACKEND_URL"

// FlagBindings maps setting keys to the command-line flags that override them.
var FlagBindings = map[string]string{
	domain.SettingAPIURL:    "api-url",
	domain.SettingLogFormat: "log-format",
}

type settingsFile struct {
	API struct {
		URL       string        `mapstructure:"url"`
		RateLimit float64       `mapstructure:"rate_limit"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	Analysis struct {
		TechStackMethod       string `mapstructure:"tech_stack_method"`
		WebsiteAnalysisMethod string `mapstructure:"website_analysis_method"`
		GenerateOutreach      bool   `mapstructure:"generate_outreach"`
	} `mapstructure:"analysis"`
	Log struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// LoadDotEnv loads environment variables from the given files (default
// ".env"). Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves the effective settings. store and flags may be nil.
func Load(store driven.ConfigStore, flags *pflag.FlagSet) (*domain.ClientSettings, error) {
	v := viper.New()

	defaults := domain.DefaultClientSettings()
	v.SetDefault(domain.SettingAPIURL, defaults.APIURL)
	v.SetDefault(domain.SettingRateLimit, defaults.RateLimit)
	v.SetDefault(domain.SettingTimeout, defaults.RequestTimeout)
	v.SetDefault(domain.SettingTechStackMethod, string(defaults.DefaultOptions.TechStackMethod))
	v.SetDefault(domain.SettingWebsiteAnalysisMethod, string(defaults.DefaultOptions.WebsiteAnalysisMethod))
	v.SetDefault(domain.SettingGenerateOutreach, defaults.DefaultOptions.GenerateOutreach)
	v.SetDefault(domain.SettingLogFormat, string(defaults.LogFormat))

	if store != nil {
		if err := v.MergeConfigMap(nest(store.All())); err != nil {
			return nil, fmt.Errorf("merge config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(domain.SettingAPIURL, EnvPrefix+"_API_URL", LegacyAPIURLEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		for key, name := range FlagBindings {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var raw settingsFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("parse settings: %w: %w", domain.ErrInvalidInput, err)
	}

	settings := &domain.ClientSettings{
		APIURL:         strings.TrimRight(strings.TrimSpace(raw.API.URL), "/"),
		RateLimit:      raw.API.RateLimit,
		RequestTimeout: raw.API.Timeout,
		DefaultOptions: domain.AnalysisOptions{
			TechStackMethod:       domain.TechStackMethod(raw.Analysis.TechStackMethod),
			WebsiteAnalysisMethod: domain.WebsiteAnalysisMethod(raw.Analysis.WebsiteAnalysisMethod),
			GenerateOutreach:      raw.Analysis.GenerateOutreach,
		},
		LogFormat: domain.LogFormat(raw.Log.Format),
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// nest turns dot-notation keys into nested maps for viper.
func nest(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, val := range flat {
		parts := strings.Split(key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		if _, isTable := node[parts[len(parts)-1]].(map[string]any); !isTable {
			node[parts[len(parts)-1]] = val
		}
	}
	return root
}
