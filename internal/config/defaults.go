package config

// ApplyDefaults fills every unset field of cfg with its platform default.
// Explicitly configured values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}

	if cfg.Data.ExportDir == "" {
		cfg.Data.ExportDir = "exports"
	}
	if cfg.Data.AdditiveExport == "" {
		cfg.Data.AdditiveExport = "TOPRATED-V2.csv"
	}
	if cfg.Data.MultiplicativeExport == "" {
		cfg.Data.MultiplicativeExport = "TOPRATED.csv"
	}
	if cfg.Data.FullExport == "" {
		cfg.Data.FullExport = "all-patents-scored-v3.csv"
	}
	if cfg.Data.OutputDir == "" {
		cfg.Data.OutputDir = "output"
	}
	if cfg.Data.CacheDir == "" {
		cfg.Data.CacheDir = "cache"
	}
	if cfg.Data.ConfigDir == "" {
		cfg.Data.ConfigDir = "config"
	}

	if cfg.Compare.Tolerance == 0 {
		cfg.Compare.Tolerance = 0.5
	}
	if cfg.Compare.MinYearsRemaining == 0 {
		cfg.Compare.MinYearsRemaining = 3
	}
	if len(cfg.Compare.RankCutoffs) == 0 {
		cfg.Compare.RankCutoffs = []int{25, 50, 100, 250, 500}
	}
	if len(cfg.Compare.StabilityCutoffs) == 0 {
		cfg.Compare.StabilityCutoffs = []int{100, 250, 500, 1000}
	}
	if cfg.Compare.DefaultCitationCap == 0 {
		cfg.Compare.DefaultCitationCap = 100
	}
	if cfg.Compare.TopSample == 0 {
		cfg.Compare.TopSample = 25
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
