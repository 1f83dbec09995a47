// Package config defines all configuration structures for ipscore.  No I/O
// or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"

	"github.com/grasslabel/ipscore/internal/infrastructure/monitoring/logging"
)

// DataConfig locates every input the comparison run consumes.  The export
// files are required; everything under OutputDir and CacheDir is optional
// and degrades to an empty dataset when absent.
type DataConfig struct {
	// ExportDir holds the historical export CSVs.
	ExportDir string `mapstructure:"export_dir"`

	// AdditiveExport is the top-500 export of the additive (V2) scoring
	// generation, relative to ExportDir.
	AdditiveExport string `mapstructure:"additive_export"`

	// MultiplicativeExport is the top-500 export of the multiplicative (V3)
	// stakeholder generation, relative to ExportDir.
	MultiplicativeExport string `mapstructure:"multiplicative_export"`

	// FullExport is the full scored population (~17k patents) from the V3
	// generation, relative to ExportDir.
	FullExport string `mapstructure:"full_export"`

	// OutputDir holds the current raw metric sources: the newest
	// streaming-candidates-*.json, citation-classification-*.json, batch
	// risk and prosecution files, combined analysis files, and sector
	// assignments.
	OutputDir string `mapstructure:"output_dir"`

	// CacheDir holds per-patent score caches (llm-scores, ipr-scores,
	// prosecution-scores subdirectories).  Per-patent entries override the
	// batch files under OutputDir.
	CacheDir string `mapstructure:"cache_dir"`

	// ConfigDir holds read-only reference data such as sector-damages.json.
	ConfigDir string `mapstructure:"config_dir"`
}

// CompareConfig carries the tunables of the comparison run itself.
type CompareConfig struct {
	// Tolerance is the absolute score tolerance used when verifying a
	// reproduced formula against a persisted export.
	Tolerance float64 `mapstructure:"tolerance"`

	// MinYearsRemaining filters the current population before re-ranking,
	// matching the filter the historical exports were produced with.
	MinYearsRemaining float64 `mapstructure:"min_years_remaining"`

	// RankCutoffs are the top-k cutoffs used for ranking overlap tables.
	RankCutoffs []int `mapstructure:"rank_cutoffs"`

	// StabilityCutoffs are the cutoffs used for full-population batch
	// stability tables.
	StabilityCutoffs []int `mapstructure:"stability_cutoffs"`

	// DefaultCitationCap is the competitor-citation cap applied when the
	// --cap-citations flag is given without a value.
	DefaultCitationCap float64 `mapstructure:"default_citation_cap"`

	// TopSample is the number of rows in the side-by-side ranking listing.
	TopSample int `mapstructure:"top_sample"`
}

// Config is the root configuration object.
type Config struct {
	Log     logging.LogConfig `mapstructure:"log"`
	Data    DataConfig        `mapstructure:"data"`
	Compare CompareConfig     `mapstructure:"compare"`
}

// Validate checks the configuration for values that would make a run
// meaningless.  It returns the first problem found.
func (c *Config) Validate() error {
	if c.Data.ExportDir == "" {
		return fmt.Errorf("data.export_dir must not be empty")
	}
	if c.Data.AdditiveExport == "" || c.Data.MultiplicativeExport == "" || c.Data.FullExport == "" {
		return fmt.Errorf("all three export file names must be set")
	}
	if c.Compare.Tolerance <= 0 {
		return fmt.Errorf("compare.tolerance must be positive, got %g", c.Compare.Tolerance)
	}
	if c.Compare.MinYearsRemaining < 0 {
		return fmt.Errorf("compare.min_years_remaining must not be negative, got %g", c.Compare.MinYearsRemaining)
	}
	if len(c.Compare.RankCutoffs) == 0 {
		return fmt.Errorf("compare.rank_cutoffs must not be empty")
	}
	for _, k := range c.Compare.RankCutoffs {
		if k <= 0 {
			return fmt.Errorf("compare.rank_cutoffs entries must be positive, got %d", k)
		}
	}
	for _, k := range c.Compare.StabilityCutoffs {
		if k <= 0 {
			return fmt.Errorf("compare.stability_cutoffs entries must be positive, got %d", k)
		}
	}
	if c.Compare.DefaultCitationCap <= 0 {
		return fmt.Errorf("compare.default_citation_cap must be positive, got %g", c.Compare.DefaultCitationCap)
	}
	if c.Compare.TopSample <= 0 {
		return fmt.Errorf("compare.top_sample must be positive, got %d", c.Compare.TopSample)
	}
	return nil
}
