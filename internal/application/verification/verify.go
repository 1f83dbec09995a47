package verification

import (
	"math"
	"sort"

	"github.com/grasslabel/ipscore/internal/domain/scoring"
)

// ratingTolerance is the absolute tolerance for rated-metric agreement in
// the metric verification.  Ratings are persisted with two decimals, so
// anything below a hundredth is noise.
const ratingTolerance = 0.01

// metricDiff is one disagreeing metric value between an export row and the
// current data.
type metricDiff struct {
	id       string
	old, new float64
}

// partMetricVerification compares the raw metric values of the
// multiplicative export against the current population on the common pool.
// Citations must agree exactly; years remaining within the configured
// tolerance; rated metrics within a hundredth.
func (h *Harness) partMetricVerification(d *runData) {
	h.section("PART 1: COMPONENT METRIC VERIFICATION")
	h.printf("Comparing raw metric values between the stakeholder export and current data\n")

	tol := h.cfg.Compare.Tolerance

	var common []string
	for _, id := range sortedExportIDs(d.multExport) {
		if _, ok := d.current.Candidates[id]; ok {
			common = append(common, id)
		}
	}
	h.printf("\nCommon patents (export vs current): %d / %d\n", len(common), d.multExport.Len())

	var ccMatch, fcMatch, yrMatch int
	var ccDiffs, fcDiffs, yrDiffs []metricDiff
	ratingMatch, ratingDiffer, ratingMissing := 0, 0, 0

	for _, id := range common {
		old := d.multExport.Records[id].Metrics
		cur := d.current.MetricSet(id)

		if old.CompetitorCitations == cur.CompetitorCitations {
			ccMatch++
		} else {
			ccDiffs = append(ccDiffs, metricDiff{id, old.CompetitorCitations, cur.CompetitorCitations})
		}
		if old.ForwardCitations == cur.ForwardCitations {
			fcMatch++
		} else {
			fcDiffs = append(fcDiffs, metricDiff{id, old.ForwardCitations, cur.ForwardCitations})
		}
		if math.Abs(old.YearsRemaining-cur.YearsRemaining) < tol {
			yrMatch++
		} else {
			yrDiffs = append(yrDiffs, metricDiff{id, old.YearsRemaining, cur.YearsRemaining})
		}

		curRatings, hasCur := d.current.Ratings[id]
		if !old.HasRating(scoring.FieldEligibility) || !hasCur {
			ratingMissing++
			continue
		}
		agree := true
		for _, f := range scoring.CoreRatingFields() {
			ov, ok := old.Ratings[f]
			if !ok {
				continue
			}
			if math.Abs(ov-curRatings[f]) >= ratingTolerance {
				agree = false
				break
			}
		}
		if agree {
			ratingMatch++
		} else {
			ratingDiffer++
		}
	}

	h.printf("\n  Competitor Citations: %d match, %d differ\n", ccMatch, len(ccDiffs))
	if len(ccDiffs) > 0 {
		h.printf("    Sample diffs (largest): ")
		for _, diff := range largestDiffs(ccDiffs, 3) {
			h.printf("%s: old=%g new=%g; ", diff.id, diff.old, diff.new)
		}
		h.printf("\n")
	}
	h.printf("  Forward Citations:   %d match, %d differ\n", fcMatch, len(fcDiffs))
	h.printf("  Years Remaining:     %d match (+-%g), %d differ\n", yrMatch, tol, len(yrDiffs))
	h.printf("  Core Ratings:        %d match, %d differ, %d missing in one/both\n",
		ratingMatch, ratingDiffer, ratingMissing)
}

// largestDiffs returns the n diffs with the largest absolute deviation.
func largestDiffs(diffs []metricDiff, n int) []metricDiff {
	sorted := make([]metricDiff, len(diffs))
	copy(sorted, diffs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].old-sorted[i].new) > math.Abs(sorted[j].old-sorted[j].new)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// reproError is one row whose recomputed score disagrees with the persisted
// one beyond tolerance.
type reproError struct {
	id                 string
	exported, computed float64
	diff               float64
	ymComputed, ymExported float64
}

// partAdditiveReproduction recomputes the additive generation's scores from
// each export row's own metrics and verifies them against the persisted
// columns.  Agreement here proves the reimplementation matches the formula
// that produced the export.
func (h *Harness) partAdditiveReproduction(d *runData, cap float64) {
	h.section("PART 2: ADDITIVE FORMULA VERIFICATION")
	h.printf("Applying the additive formula to EXPORT data, comparing to exported scores\n")
	h.printf("This verifies the reimplementation matches the generation that produced it\n")

	tol := h.cfg.Compare.Tolerance
	ids := sortedExportIDs(d.additiveExport)

	matchCount := 0
	var mismatches []reproError
	for _, id := range ids {
		rec := d.additiveExport.Records[id]
		scores := scoring.EvaluateAdditiveFamily(rec.Metrics, h.reg, cap)
		computed := scores[scoring.UnifiedProfile]
		exported := rec.Scores[scoring.UnifiedProfile]
		diff := math.Abs(computed - exported)
		if diff < tol {
			matchCount++
		} else {
			mismatches = append(mismatches, reproError{
				id:         id,
				exported:   exported,
				computed:   computed,
				diff:       diff,
				ymComputed: scoring.YearMultiplier(rec.Metrics.YearsRemaining),
				ymExported: rec.YearMultiplier,
			})
		}
	}

	h.printf("\n  Verified: %d/%d unified scores match within %g\n", matchCount, len(ids), tol)
	if len(mismatches) > 0 {
		sort.SliceStable(mismatches, func(i, j int) bool { return mismatches[i].diff > mismatches[j].diff })
		h.printf("  Mismatches: %d (showing top 5)\n", len(mismatches))
		for i, e := range mismatches {
			if i >= 5 {
				break
			}
			h.printf("    %s: exported=%.2f computed=%.2f diff=%.2f ym_comp=%.3f ym_exp=%.3f\n",
				e.id, e.exported, e.computed, e.diff, e.ymComputed, e.ymExported)
		}
	}

	for _, pid := range h.reg.IDs(scoring.FamilyAdditive) {
		matches := 0
		for _, id := range ids {
			rec := d.additiveExport.Records[id]
			scores := scoring.EvaluateAdditiveFamily(rec.Metrics, h.reg, cap)
			if math.Abs(scores[pid]-rec.Scores[pid]) < tol {
				matches++
			}
		}
		h.printf("  Profile %-14s: %d/%d match within %g\n", pid, matches, len(ids), tol)
	}
}

// partMultiplicativeReproduction does the same for the stakeholder
// generation: executive and consensus first, then every profile.
func (h *Harness) partMultiplicativeReproduction(d *runData, cap float64) {
	h.section("PART 3: STAKEHOLDER FORMULA VERIFICATION")
	h.printf("Applying the stakeholder formula to EXPORT data, comparing to exported scores\n")

	tol := h.cfg.Compare.Tolerance
	ids := sortedExportIDs(d.multExport)

	matchCount := 0
	var mismatches []reproError
	for _, id := range ids {
		rec := d.multExport.Records[id]
		scores := scoring.EvaluateMultiplicativeFamily(rec.Metrics, h.reg, cap)
		computed := scores["executive"]
		exported := rec.Scores["executive"]
		diff := math.Abs(computed - exported)
		if diff < tol {
			matchCount++
		} else {
			mismatches = append(mismatches, reproError{id: id, exported: exported, computed: computed, diff: diff})
		}
	}

	h.printf("\n  Executive score: %d/%d match within %g\n", matchCount, len(ids), tol)
	if len(mismatches) > 0 {
		sort.SliceStable(mismatches, func(i, j int) bool { return mismatches[i].diff > mismatches[j].diff })
		h.printf("  Mismatches: %d (showing top 5)\n", len(mismatches))
		for i, e := range mismatches {
			if i >= 5 {
				break
			}
			h.printf("    %s: exported=%.2f computed=%.2f diff=%.2f\n", e.id, e.exported, e.computed, e.diff)
		}
	}

	consensusMatch := 0
	for _, id := range ids {
		rec := d.multExport.Records[id]
		scores := scoring.EvaluateMultiplicativeFamily(rec.Metrics, h.reg, cap)
		if math.Abs(scores[scoring.ConsensusProfile]-rec.Scores[scoring.ConsensusProfile]) < tol {
			consensusMatch++
		}
	}
	h.printf("  Consensus score: %d/%d match within %g\n", consensusMatch, len(ids), tol)

	for _, pid := range h.reg.IDs(scoring.FamilyMultiplicative) {
		matches := 0
		for _, id := range ids {
			rec := d.multExport.Records[id]
			scores := scoring.EvaluateMultiplicativeFamily(rec.Metrics, h.reg, cap)
			if math.Abs(scores[pid]-rec.Scores[pid]) < tol {
				matches++
			}
		}
		h.printf("  Profile %-25s: %d/%d match within %g\n", pid, matches, len(ids), tol)
	}
}
