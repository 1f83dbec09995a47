package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
log:
  level: debug
  format: json
data:
  export_dir: /data/exports
  additive_export: TOPRATED-V2.csv
  multiplicative_export: TOPRATED.csv
  full_export: all-patents-scored-v3.csv
  output_dir: /data/output
  cache_dir: /data/cache
compare:
  tolerance: 0.25
  min_years_remaining: 5
  rank_cutoffs: [10, 20]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/data/exports", cfg.Data.ExportDir)
	assert.Equal(t, 0.25, cfg.Compare.Tolerance)
	assert.Equal(t, 5.0, cfg.Compare.MinYearsRemaining)
	assert.Equal(t, []int{10, 20}, cfg.Compare.RankCutoffs)

	// Unset fields fall back to defaults.
	assert.Equal(t, "config", cfg.Data.ConfigDir)
	assert.Equal(t, []int{100, 250, 500, 1000}, cfg.Compare.StabilityCutoffs)
	assert.Equal(t, 100.0, cfg.Compare.DefaultCitationCap)
	assert.Equal(t, 25, cfg.Compare.TopSample)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	bad := validConfigYAML + "\n"
	bad += "  top_sample: -1\n"
	_, err := Load(writeConfig(t, bad))
	assert.Error(t, err)
}

func TestLoadFromEnvUsesDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "exports", cfg.Data.ExportDir)
	assert.Equal(t, "TOPRATED-V2.csv", cfg.Data.AdditiveExport)
	assert.Equal(t, 0.5, cfg.Compare.Tolerance)
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("IPSCORE_DATA_EXPORT_DIR", "/tmp/exports")
	t.Setenv("IPSCORE_COMPARE_TOLERANCE", "1.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exports", cfg.Data.ExportDir)
	assert.Equal(t, 1.5, cfg.Compare.Tolerance)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty export dir", func(c *Config) { c.Data.ExportDir = "" }, true},
		{"missing export name", func(c *Config) { c.Data.FullExport = "" }, true},
		{"zero tolerance", func(c *Config) { c.Compare.Tolerance = -1 }, true},
		{"negative years filter", func(c *Config) { c.Compare.MinYearsRemaining = -2 }, true},
		{"no cutoffs", func(c *Config) { c.Compare.RankCutoffs = nil }, true},
		{"non-positive cutoff", func(c *Config) { c.Compare.RankCutoffs = []int{25, 0} }, true},
		{"bad stability cutoff", func(c *Config) { c.Compare.StabilityCutoffs = []int{-5} }, true},
		{"bad default cap", func(c *Config) { c.Compare.DefaultCitationCap = -1 }, true},
		{"bad top sample", func(c *Config) { c.Compare.TopSample = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
