package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grasslabel/ipscore/internal/config"
	"github.com/grasslabel/ipscore/internal/domain/scoring"
	"github.com/grasslabel/ipscore/internal/infrastructure/monitoring/logging"
	"github.com/grasslabel/ipscore/pkg/errors"
)

// Candidate is one entry of the current candidate population.
type Candidate struct {
	ForwardCitations float64 `json:"forward_citations"`
	RemainingYears   float64 `json:"remaining_years"`
}

// Classification carries the competitor-citation analysis for one patent.
type Classification struct {
	CompetitorCitations float64 `json:"competitor_citations"`
	CompetitorCount     float64 `json:"competitor_count"`
}

// CurrentData aggregates every current-population source.  The candidate
// file is mandatory; every other source is optional and independently
// refreshed, so any of the maps may be empty.
type CurrentData struct {
	Candidates      map[string]Candidate
	Classifications map[string]Classification

	// Ratings holds the core rated metrics delivered per patent by the
	// primary ratings cache.
	Ratings map[string]map[scoring.Field]float64

	// MarketRelevance, RiskScores and ProsecutionScores come from
	// independently refreshed sources; per-patent cache entries override
	// batch files.
	MarketRelevance   map[string]float64
	RiskScores        map[string]float64
	ProsecutionScores map[string]float64

	// SectorRatings maps sector name to its damages rating scale; read-only
	// reference data.
	SectorRatings map[string]float64

	// SectorAssignments maps patent id to sector name.
	SectorAssignments map[string]string
}

// MetricSet assembles the scoring view of one patent from the loaded
// sources.  Core ratings participate only when inside the 1..5 scale;
// side-source scores participate whenever present (the scoring models apply
// their own range handling).
func (d *CurrentData) MetricSet(id string) scoring.MetricSet {
	cand := d.Candidates[id]
	cls := d.Classifications[id]

	m := scoring.MetricSet{
		CompetitorCitations: cls.CompetitorCitations,
		ForwardCitations:    cand.ForwardCitations,
		YearsRemaining:      cand.RemainingYears,
		CompetitorCount:     cls.CompetitorCount,
	}

	for f, v := range d.Ratings[id] {
		if v >= 1 && v <= 5 {
			m.SetRating(f, v)
		}
	}
	if v, ok := d.MarketRelevance[id]; ok {
		m.SetRating(scoring.FieldMarketRelevance, v)
	}
	if v, ok := d.RiskScores[id]; ok {
		m.SetRating(scoring.FieldIPRRisk, v)
	}
	if v, ok := d.ProsecutionScores[id]; ok {
		m.SetRating(scoring.FieldProsecutionQual, v)
	}
	return m
}

// Loader reads the current-population sources described by a DataConfig.
type Loader struct {
	cfg config.DataConfig
	log logging.Logger
}

// NewLoader constructs a Loader.
func NewLoader(cfg config.DataConfig, log logging.Logger) *Loader {
	return &Loader{cfg: cfg, log: log.Named("dataset")}
}

// LoadCurrent loads every current-population source.  A missing candidates
// file is fatal; every other absent source degrades to an empty dataset
// with a warning.
func (l *Loader) LoadCurrent() (*CurrentData, error) {
	d := &CurrentData{
		Candidates:        make(map[string]Candidate),
		Classifications:   make(map[string]Classification),
		Ratings:           make(map[string]map[scoring.Field]float64),
		MarketRelevance:   make(map[string]float64),
		RiskScores:        make(map[string]float64),
		ProsecutionScores: make(map[string]float64),
		SectorRatings:     make(map[string]float64),
		SectorAssignments: make(map[string]string),
	}

	if err := l.loadCandidates(d); err != nil {
		return nil, err
	}
	l.loadClassifications(d)
	l.loadRatings(d)
	l.loadSideScores(d, "ipr", "ipr-risk-check-", "ipr-scores", "ipr_risk_score", d.RiskScores)
	l.loadSideScores(d, "prosecution", "prosecution-history-", "prosecution-scores", "prosecution_quality_score", d.ProsecutionScores)
	l.loadMarketRelevance(d)
	l.loadSectorRatings(d)
	l.loadSectorAssignments(d)

	return d, nil
}

// newestMatch returns the lexically newest file in dir matching
// prefix*suffix.  File names embed their export date, so lexical order is
// chronological.
func newestMatch(dir, prefix, suffix string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), true
}

// allMatches returns every file in dir matching prefix*suffix, newest
// first.
func allMatches(dir, prefix, suffix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths
}

// decodeJSONFile decodes path into v, reporting but tolerating nothing: the
// caller decides whether failure is fatal.
func decodeJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (l *Loader) loadCandidates(d *CurrentData) error {
	path, ok := newestMatch(l.cfg.OutputDir, "streaming-candidates-", ".json")
	if !ok {
		return errors.MissingRequiredSource("no streaming-candidates file").
			WithDetail(l.cfg.OutputDir)
	}

	var payload struct {
		Candidates []struct {
			PatentID string `json:"patent_id"`
			Candidate
		} `json:"candidates"`
	}
	if err := decodeJSONFile(path, &payload); err != nil {
		return errors.Wrap(err, errors.ErrCodeMalformedValue, "failed to decode candidates file").
			WithDetail(path)
	}
	for _, c := range payload.Candidates {
		if c.PatentID != "" {
			d.Candidates[c.PatentID] = c.Candidate
		}
	}
	l.log.Debug("loaded candidates", logging.String("file", path), logging.Int("count", len(d.Candidates)))
	return nil
}

func (l *Loader) loadClassifications(d *CurrentData) {
	path, ok := newestMatch(l.cfg.OutputDir, "citation-classification-", ".json")
	if !ok {
		l.log.Warn("no citation-classification file, competitor metrics default to zero",
			logging.String("dir", l.cfg.OutputDir))
		return
	}

	var payload struct {
		Results []struct {
			PatentID string `json:"patent_id"`
			Classification
		} `json:"results"`
	}
	if err := decodeJSONFile(path, &payload); err != nil {
		l.log.Warn("classification file unreadable, degrading to empty",
			logging.String("file", path), logging.Err(err))
		return
	}
	for _, r := range payload.Results {
		if r.PatentID != "" {
			d.Classifications[r.PatentID] = r.Classification
		}
	}
}

// loadRatings loads the per-patent core rating cache.
func (l *Loader) loadRatings(d *CurrentData) {
	dir := filepath.Join(l.cfg.CacheDir, "llm-scores")
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.log.Warn("ratings cache absent, rated metrics unavailable", logging.String("dir", dir))
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())

		var payload map[string]interface{}
		if err := decodeJSONFile(path, &payload); err != nil {
			continue
		}

		pid, _ := payload["patent_id"].(string)
		if pid == "" {
			pid = strings.TrimSuffix(e.Name(), ".json")
		}

		ratings := make(map[scoring.Field]float64)
		for _, f := range scoring.CoreRatingFields() {
			if v, ok := payload[string(f)].(float64); ok {
				ratings[f] = v
			}
		}
		if len(ratings) > 0 {
			d.Ratings[pid] = ratings
		}
	}
}

// loadSideScores loads one independently refreshed single-value score
// source: batch files under OutputDir/<batchDir> (newest batch wins per
// patent), then per-patent cache entries under CacheDir/<cacheDir>, which
// override the batches.
func (l *Loader) loadSideScores(d *CurrentData, batchDir, batchPrefix, cacheDir, key string, dest map[string]float64) {
	bdir := filepath.Join(l.cfg.OutputDir, batchDir)
	for _, path := range allMatches(bdir, batchPrefix, ".json") {
		var payload struct {
			Results []map[string]interface{} `json:"results"`
		}
		if err := decodeJSONFile(path, &payload); err != nil {
			continue
		}
		for _, r := range payload.Results {
			pid, _ := r["patent_id"].(string)
			if pid == "" {
				continue
			}
			if _, seen := dest[pid]; seen {
				continue
			}
			if v, ok := r[key].(float64); ok {
				dest[pid] = v
			}
		}
	}

	cdir := filepath.Join(l.cfg.CacheDir, cacheDir)
	entries, err := os.ReadDir(cdir)
	if err != nil {
		if len(dest) == 0 {
			l.log.Warn("side-score source absent", logging.String("key", key))
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		var payload map[string]interface{}
		if err := decodeJSONFile(filepath.Join(cdir, e.Name()), &payload); err != nil {
			continue
		}
		pid, _ := payload["patent_id"].(string)
		if pid == "" {
			pid = strings.TrimSuffix(e.Name(), ".json")
		}
		if v, ok := payload[key].(float64); ok {
			dest[pid] = v
		}
	}
}

func (l *Loader) loadMarketRelevance(d *CurrentData) {
	dir := filepath.Join(l.cfg.OutputDir, "llm-analysis-v3")
	paths := allMatches(dir, "combined-v3-", ".json")
	if len(paths) == 0 {
		l.log.Warn("no combined analysis files, market relevance unavailable", logging.String("dir", dir))
		return
	}

	for _, path := range paths {
		var payload struct {
			Analyses []struct {
				PatentID        string   `json:"patent_id"`
				MarketRelevance *float64 `json:"market_relevance_score"`
			} `json:"analyses"`
		}
		if err := decodeJSONFile(path, &payload); err != nil {
			continue
		}
		for _, a := range payload.Analyses {
			if a.PatentID == "" || a.MarketRelevance == nil {
				continue
			}
			if _, seen := d.MarketRelevance[a.PatentID]; !seen {
				d.MarketRelevance[a.PatentID] = *a.MarketRelevance
			}
		}
	}
}

func (l *Loader) loadSectorRatings(d *CurrentData) {
	path := filepath.Join(l.cfg.ConfigDir, "sector-damages.json")

	var payload struct {
		Sectors map[string]struct {
			DamagesRating float64 `json:"damages_rating"`
		} `json:"sectors"`
	}
	if err := decodeJSONFile(path, &payload); err != nil {
		l.log.Warn("sector damages config absent", logging.String("file", path))
		return
	}
	for name, s := range payload.Sectors {
		d.SectorRatings[name] = s.DamagesRating
	}
}

func (l *Loader) loadSectorAssignments(d *CurrentData) {
	path := filepath.Join(l.cfg.OutputDir, "patent-sector-assignments.json")

	assignments := make(map[string]string)
	if err := decodeJSONFile(path, &assignments); err != nil {
		return
	}
	d.SectorAssignments = assignments
}
