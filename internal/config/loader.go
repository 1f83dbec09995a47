// Package config provides configuration loading, defaults, and validation
// for ipscore.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "IPSCORE"

// newViper builds a pre-configured Viper instance with the tool's standard
// settings: YAML file type, IPSCORE_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like
// "data.export_dir" resolve to "IPSCORE_DATA_EXPORT_DIR".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Viper only merges environment variables into Unmarshal for keys it
	// already knows, so every settable key is bound explicitly.
	for _, key := range settingKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// settingKeys lists every configuration key, for environment binding.
var settingKeys = []string{
	"log.level",
	"log.format",
	"log.output_paths",
	"data.export_dir",
	"data.additive_export",
	"data.multiplicative_export",
	"data.full_export",
	"data.output_dir",
	"data.cache_dir",
	"data.config_dir",
	"compare.tolerance",
	"compare.min_years_remaining",
	"compare.rank_cutoffs",
	"compare.stability_cutoffs",
	"compare.default_citation_cap",
	"compare.top_sample",
}

// Load reads the YAML file at configPath, merges any IPSCORE_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from IPSCORE_* environment variables
// and defaults, with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
