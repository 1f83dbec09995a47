// Package verification implements the comparison run: it reproduces both
// historical scoring generations, verifies them against their persisted
// exports, re-scores the current population with every model, and reports
// ranking agreement, score distributions and data coverage.
package verification

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/grasslabel/ipscore/internal/config"
	"github.com/grasslabel/ipscore/internal/domain/ranking"
	"github.com/grasslabel/ipscore/internal/domain/scoring"
	"github.com/grasslabel/ipscore/internal/infrastructure/dataset"
	"github.com/grasslabel/ipscore/internal/infrastructure/monitoring/logging"
)

// reportWidth is the width of the section rules in the text report.
const reportWidth = 72

// Options carries the per-run tunables of a comparison.
type Options struct {
	// CitationCap caps competitor citations before normalization in every
	// model.  scoring.UncappedCitations disables the cap.
	CitationCap float64
}

// Harness orchestrates a full comparison run and writes the text report.
type Harness struct {
	cfg *config.Config
	reg *scoring.Registry
	log logging.Logger
	out io.Writer
}

// New constructs a Harness writing its report to out.
func New(cfg *config.Config, log logging.Logger, out io.Writer) *Harness {
	return &Harness{
		cfg: cfg,
		reg: scoring.NewRegistry(),
		log: log.Named("verification"),
		out: out,
	}
}

// runData holds everything a run computes once and the report parts share.
type runData struct {
	additiveExport *dataset.Export
	multExport     *dataset.Export
	fullExport     *dataset.Export
	current        *dataset.CurrentData

	// Export rankings: additive by unified, the other two by consensus.
	oldAdditiveIDs []string
	oldMultIDs     []string
	fullIDs        []string

	// filtered is the current population passing the years filter the
	// historical exports were produced with.
	filtered map[string]scoring.MetricSet

	// Re-ranked current population under each model.  additiveCurrent and
	// multCurrent cover the filtered pool; currentEngine covers every
	// candidate, matching the engine's own behavior.
	additiveCurrent []ranking.Entry
	multCurrent     []ranking.Entry
	currentEngine   []ranking.Entry
}

// Run executes the comparison and writes the report.  It returns an error
// only when a required source cannot be loaded; everything after loading is
// pure computation.
func (h *Harness) Run(opts Options) error {
	runID := uuid.NewString()
	start := time.Now()
	h.log.Info("comparison run starting",
		logging.String("run_id", runID),
		logging.Float64("citation_cap", opts.CitationCap))

	h.rule('=')
	h.printf("SCORING COMPARISON: Reproduce Historical Formulas & Verify Rankings\n")
	h.rule('=')
	h.printf("Run %s at %s\n", runID, start.Format(time.RFC3339))
	if opts.CitationCap > 0 {
		h.printf("  Competitor citation cap: %g\n", opts.CitationCap)
	}

	d, err := h.load()
	if err != nil {
		h.log.Error("loading failed", logging.Err(err))
		return err
	}
	h.score(d, opts.CitationCap)

	h.partMetricVerification(d)
	h.partAdditiveReproduction(d, opts.CitationCap)
	h.partMultiplicativeReproduction(d, opts.CitationCap)
	h.partRankingComparison(d, opts.CitationCap)
	h.partBatchStability(d)
	h.partDistributions(d)
	h.partCoverage(d)

	h.log.Info("comparison run finished",
		logging.String("run_id", runID),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

// load reads the three exports and the current population, and prints the
// load summary.
func (h *Harness) load() (*runData, error) {
	dc := h.cfg.Data
	h.printf("\nLoading data...\n")

	additive, err := dataset.LoadExport(filepath.Join(dc.ExportDir, dc.AdditiveExport))
	if err != nil {
		return nil, err
	}
	mult, err := dataset.LoadExport(filepath.Join(dc.ExportDir, dc.MultiplicativeExport))
	if err != nil {
		return nil, err
	}
	full, err := dataset.LoadExport(filepath.Join(dc.ExportDir, dc.FullExport))
	if err != nil {
		return nil, err
	}
	current, err := dataset.NewLoader(dc, h.log).LoadCurrent()
	if err != nil {
		return nil, err
	}

	d := &runData{
		additiveExport: additive,
		multExport:     mult,
		fullExport:     full,
		current:        current,
		oldAdditiveIDs: exportRankedIDs(additive, scoring.UnifiedProfile),
		oldMultIDs:     exportRankedIDs(mult, scoring.ConsensusProfile),
		fullIDs:        exportRankedIDs(full, scoring.ConsensusProfile),
	}

	h.printf("  Multiplicative export: %5d patents (stakeholder top list)\n", mult.Len())
	h.printf("  Additive export:       %5d patents (top list)\n", additive.Len())
	h.printf("  Full scored export:    %5d patents (full ranking)\n", full.Len())
	h.printf("  Current candidates:    %5d patents\n", len(current.Candidates))
	h.printf("  Classifications:       %5d patents\n", len(current.Classifications))
	h.printf("  Core ratings:          %5d patents\n", len(current.Ratings))
	h.printf("  Risk scores:           %5d patents\n", len(current.RiskScores))
	h.printf("  Prosecution scores:    %5d patents\n", len(current.ProsecutionScores))
	h.printf("  Market relevance:      %5d patents\n", len(current.MarketRelevance))
	return d, nil
}

// score builds every current-population ranking once.
func (h *Harness) score(d *runData, cap float64) {
	minYears := h.cfg.Compare.MinYearsRemaining

	d.filtered = make(map[string]scoring.MetricSet, len(d.current.Candidates))
	for id := range d.current.Candidates {
		m := d.current.MetricSet(id)
		if m.YearsRemaining >= minYears {
			d.filtered[id] = m
		}
	}

	var additive, mult []ranking.Entry
	for _, id := range sortedKeys(d.filtered) {
		m := d.filtered[id]
		a := scoring.EvaluateAdditiveFamily(m, h.reg, cap)
		v := scoring.EvaluateMultiplicativeFamily(m, h.reg, cap)
		additive = append(additive, ranking.Entry{ID: id, Score: a[scoring.UnifiedProfile]})
		mult = append(mult, ranking.Entry{ID: id, Score: v[scoring.ConsensusProfile]})
	}
	d.additiveCurrent = ranking.Rank(additive)
	d.multCurrent = ranking.Rank(mult)

	// The current engine scores the entire candidate pool; its own export
	// path applies no years filter.
	var engine []ranking.Entry
	for _, id := range sortedKeys(d.current.Candidates) {
		m := d.current.MetricSet(id)
		engine = append(engine, ranking.Entry{ID: id, Score: scoring.EvaluateCurrentExecutive(m, cap)})
	}
	d.currentEngine = ranking.Rank(engine)

	h.log.Debug("current population scored",
		logging.Int("filtered", len(d.filtered)),
		logging.Int("total", len(d.current.Candidates)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared helpers
// ─────────────────────────────────────────────────────────────────────────────

func (h *Harness) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format, args...)
}

// rule prints a full-width line of c.
func (h *Harness) rule(c byte) {
	buf := make([]byte, reportWidth+1)
	for i := 0; i < reportWidth; i++ {
		buf[i] = c
	}
	buf[reportWidth] = '\n'
	h.out.Write(buf)
}

// section prints a part header.
func (h *Harness) section(title string) {
	h.printf("\n")
	h.rule('=')
	h.printf("%s\n", title)
	h.rule('=')
}

// exportRankedIDs ranks an export's records by the named persisted score,
// ties broken by id for determinism.
func exportRankedIDs(e *dataset.Export, scoreKey string) []string {
	entries := make([]ranking.Entry, 0, len(e.Records))
	for _, id := range sortedExportIDs(e) {
		entries = append(entries, ranking.Entry{ID: id, Score: e.Records[id].Scores[scoreKey]})
	}
	return ranking.IDs(ranking.Rank(entries))
}

func sortedExportIDs(e *dataset.Export) []string {
	ids := make([]string, 0, len(e.Records))
	for id := range e.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// keepInPool filters a ranked id list down to ids present in pool,
// preserving order.
func keepInPool(ids []string, pool map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if pool[id] {
			out = append(out, id)
		}
	}
	return out
}
