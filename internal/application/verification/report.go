package verification

import (
	"sort"

	"github.com/grasslabel/ipscore/internal/domain/ranking"
	"github.com/grasslabel/ipscore/internal/infrastructure/dataset"
)

// overlapTable prints overlap counts between two ranked id lists at each
// configured cutoff.  The effective cutoff shrinks to the shorter list.
func (h *Harness) overlapTable(a, b []string, cutoffs []int, verb string) {
	for _, k := range cutoffs {
		overlap, actual := ranking.OverlapAtCutoff(a, b, k)
		pct := 0.0
		if actual > 0 {
			pct = float64(overlap) / float64(actual) * 100
		}
		h.printf("    Top %4d: %4d / %d %s (%.0f%%)\n", actual, overlap, actual, verb, pct)
	}
}

// partRankingComparison applies both historical formulas to the current
// population and compares the resulting rankings against the exports and
// against the current engine.
func (h *Harness) partRankingComparison(d *runData, cap float64) {
	h.section("PART 4: RANKING COMPARISON (historical formulas on CURRENT data)")
	h.printf("Applying both historical formulas to the current candidate population\n")
	h.printf("Then comparing rankings to the exports and the current engine\n")

	h.printf("\n  Current patents (%g+ years): %d / %d\n",
		h.cfg.Compare.MinYearsRemaining, len(d.filtered), len(d.current.Candidates))

	cutoffs := h.cfg.Compare.RankCutoffs
	additiveIDs := ranking.IDs(d.additiveCurrent)
	multIDs := ranking.IDs(d.multCurrent)
	engineIDs := ranking.IDs(d.currentEngine)

	h.printf("\n  --- Additive Export vs Additive Formula on Current Data ---\n")
	h.printf("  (How much do rankings change under current data with the same formula?)\n")
	pool := commonPool(d.additiveExport.Records, d.filtered)
	oldInPool := keepInPool(d.oldAdditiveIDs, pool)
	newInPool := keepInPool(additiveIDs, pool)
	h.overlapTable(oldInPool, newInPool, cutoffs, "overlap")

	h.printf("\n  --- Stakeholder Export vs Stakeholder Formula on Current Data ---\n")
	pool = commonPool(d.multExport.Records, d.filtered)
	oldInPool = keepInPool(d.oldMultIDs, pool)
	newInPool = keepInPool(multIDs, pool)
	h.overlapTable(oldInPool, newInPool, cutoffs, "overlap")
	h.printf("    Rank correlation (Spearman): %.3f\n", poolSpearman(oldInPool, newInPool))

	h.printf("\n  --- Additive Formula (current data) vs Current Engine ---\n")
	h.overlapTable(additiveIDs, engineIDs, cutoffs, "overlap")

	h.printf("\n  --- Stakeholder Formula (current data) vs Current Engine ---\n")
	h.overlapTable(multIDs, engineIDs, cutoffs, "overlap")

	h.sideBySide(d, additiveIDs, multIDs, engineIDs)
}

// sideBySide prints the top rows of all five rankings next to each other.
func (h *Harness) sideBySide(d *runData, additiveIDs, multIDs, engineIDs []string) {
	n := h.cfg.Compare.TopSample
	h.printf("\n  --- TOP %d Side-by-Side ---\n", n)
	h.printf("  %4s  %14s %14s %14s %14s %14s\n",
		"Rank", "Add(export)", "Add(current)", "Stake(export)", "Stake(current)", "Engine")
	h.printf("  %4s  %14s %14s %14s %14s %14s\n",
		"----", "------", "------", "------", "------", "------")
	for i := 0; i < n; i++ {
		h.printf("  %4d  %14s %14s %14s %14s %14s\n", i+1,
			idAt(d.oldAdditiveIDs, i), idAt(additiveIDs, i),
			idAt(d.oldMultIDs, i), idAt(multIDs, i), idAt(engineIDs, i))
	}
}

// partBatchStability measures how much of the full-population export's top
// bands survives under the re-scored rankings.
func (h *Harness) partBatchStability(d *runData) {
	h.section("PART 5: BATCH STABILITY (full scored export vs current methods)")

	cutoffs := h.cfg.Compare.StabilityCutoffs

	h.printf("\n  Full Export (consensus) vs Stakeholder Formula on Current Data:\n")
	h.overlapTable(d.fullIDs, ranking.IDs(d.multCurrent), cutoffs, "retained")

	h.printf("\n  Full Export (consensus) vs Current Engine:\n")
	h.overlapTable(d.fullIDs, ranking.IDs(d.currentEngine), cutoffs, "retained")
}

// partDistributions prints the top-band score distribution of every
// ranking, plus source coverage inside the engine's top band.
func (h *Harness) partDistributions(d *runData) {
	h.section("PART 6: SCORE DISTRIBUTIONS")

	h.printDistribution("Current Engine (executive, 12 metrics)", ranking.Scores(d.currentEngine))

	top := ranking.IDs(d.currentEngine)
	if len(top) > 500 {
		top = top[:500]
	}
	core, risk, pros, mr := d.coverageCounts(top)
	h.printf("    Core: %d/%d  Risk: %d/%d  Prosecution: %d/%d  MarketRel: %d/%d\n",
		core, len(top), risk, len(top), pros, len(top), mr, len(top))

	h.printDistribution("Additive Formula (current data, unified)", ranking.Scores(d.additiveCurrent))
	h.printDistribution("Stakeholder Formula (current data, consensus)", ranking.Scores(d.multCurrent))
	h.printDistribution("Stakeholder Export (consensus)", exportScores(d.multExport.Records, "consensus"))
	h.printDistribution("Additive Export (unified)", exportScores(d.additiveExport.Records, "unified"))
}

func (h *Harness) printDistribution(label string, sortedScores []float64) {
	s := ranking.DistributionSummary(sortedScores, 500)
	if s.N == 0 {
		return
	}
	h.printf("\n  %s (top %d):\n", label, s.N)
	h.printf("    Max:  %.2f\n", s.Max)
	if s.HasP10 {
		h.printf("    P10:  %.2f\n", s.P10)
	}
	if s.HasP50 {
		h.printf("    P50:  %.2f\n", s.P50)
	}
	h.printf("    Min:  %.2f\n", s.Min)
	h.printf("    Avg:  %.2f\n", s.Mean)
}

// partCoverage reports which patents each sparse source covers, sliced by
// the historical top bands and the engine's own top bands.
func (h *Harness) partCoverage(d *runData) {
	h.section("PART 7: DATA COVERAGE ANALYSIS")

	top100 := d.oldMultIDs
	if len(top100) > 100 {
		top100 = top100[:100]
	}
	top250 := d.oldMultIDs
	if len(top250) > 250 {
		top250 = top250[:250]
	}

	h.printf("\n  Score coverage of stakeholder-export top patents:\n")
	h.printf("    %-30s %10s %10s\n", "", "Top 100", "Top 250")
	c100, r100, p100, m100 := d.coverageCounts(top100)
	c250, r250, p250, m250 := d.coverageCounts(top250)
	h.printf("    %-30s %6d/%-4d %6d/%d\n", "core ratings (5 metrics)", c100, len(top100), c250, len(top250))
	h.printf("    %-30s %6d/%-4d %6d/%d\n", "market_relevance_score", m100, len(top100), m250, len(top250))
	h.printf("    %-30s %6d/%-4d %6d/%d\n", "ipr_risk_score", r100, len(top100), r250, len(top250))
	h.printf("    %-30s %6d/%-4d %6d/%d\n", "prosecution_quality_score", p100, len(top100), p250, len(top250))

	filteredIDs := sortedKeys(d.filtered)
	core, risk, pros, mr := d.coverageCounts(filteredIDs)
	n := len(filteredIDs)
	h.printf("\n  Current data metric availability (of %d patents with %g+ years):\n",
		n, h.cfg.Compare.MinYearsRemaining)
	h.printf("    Core ratings:               %5d (%.1f%%)\n", core, pct(core, n))
	h.printf("    market_relevance_score:     %5d (%.1f%%)\n", mr, pct(mr, n))
	h.printf("    ipr_risk_score:             %5d (%.1f%%)\n", risk, pct(risk, n))
	h.printf("    prosecution_quality_score:  %5d (%.1f%%)\n", pros, pct(pros, n))

	h.printf("\n  Current engine top-N metric coverage:\n")
	engineIDs := ranking.IDs(d.currentEngine)
	for _, cutoff := range []int{50, 100, 250, 500} {
		band := engineIDs
		if len(band) > cutoff {
			band = band[:cutoff]
		}
		c, r, p, m := d.coverageCounts(band)
		h.printf("    Top %4d: Core=%d/%d Risk=%d/%d Prosecution=%d/%d MarketRel=%d/%d\n",
			cutoff, c, cutoff, r, cutoff, p, cutoff, m, cutoff)
	}

	if len(d.current.SectorRatings) > 0 {
		band := engineIDs
		if len(band) > 500 {
			band = band[:500]
		}
		assigned := 0
		for _, id := range band {
			if _, ok := d.current.SectorAssignments[id]; ok {
				assigned++
			}
		}
		h.printf("\n  Sector assignments: %d/%d in engine top %d (%d sectors configured)\n",
			assigned, len(band), len(band), len(d.current.SectorRatings))
	}

	h.printf("\n")
	h.printf("  NOTE: The stakeholder (multiplicative) model substitutes defaults for missing\n")
	h.printf("  rated metrics; the additive model and the current engine redistribute weight\n")
	h.printf("  over available metrics instead.\n")
	h.printf("  The current engine scores 12 metrics: 4 quantitative + 6 rated + 2 derived.\n")
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// coverageCounts counts how many of ids each sparse source covers.
func (d *runData) coverageCounts(ids []string) (core, risk, pros, mr int) {
	for _, id := range ids {
		if len(d.current.Ratings[id]) > 0 {
			core++
		}
		if _, ok := d.current.RiskScores[id]; ok {
			risk++
		}
		if _, ok := d.current.ProsecutionScores[id]; ok {
			pros++
		}
		if _, ok := d.current.MarketRelevance[id]; ok {
			mr++
		}
	}
	return core, risk, pros, mr
}

// commonPool intersects an export's ids with the filtered population.
func commonPool[A any, B any](export map[string]A, filtered map[string]B) map[string]bool {
	pool := make(map[string]bool)
	for id := range export {
		if _, ok := filtered[id]; ok {
			pool[id] = true
		}
	}
	return pool
}

// poolSpearman computes the Spearman rank correlation between two orderings
// of the same pool.  Ids missing from either list are skipped.
func poolSpearman(a, b []string) float64 {
	posB := make(map[string]int, len(b))
	for i, id := range b {
		posB[id] = i
	}
	var ranksA, ranksB []float64
	for i, id := range a {
		j, ok := posB[id]
		if !ok {
			continue
		}
		ranksA = append(ranksA, float64(i+1))
		ranksB = append(ranksB, float64(j+1))
	}
	return ranking.Spearman(ranksA, ranksB)
}

// exportScores collects one persisted score column, sorted descending.
func exportScores(records map[string]*dataset.ExportRecord, key string) []float64 {
	scores := make([]float64, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Scores[key]; ok {
			scores = append(scores, v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores
}

// idAt returns ids[i] or a placeholder past the end.
func idAt(ids []string, i int) string {
	if i < len(ids) {
		return ids[i]
	}
	return "N/A"
}

// pct guards the zero denominator.
func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
