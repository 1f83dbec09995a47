package scoring

import "math"

// The engine evaluates profiles against metric sets.  It is pure: no I/O,
// no catalog knowledge, no mutation of its inputs, so it can be tested
// against synthetic profiles independent of the registry content.

// UncappedCitations disables the competitor-citation cap.
const UncappedCitations = 0

// capCitations applies the optional competitor-citation cap.  A cap of
// UncappedCitations (or any non-positive value) leaves v unchanged.
func capCitations(v, cap float64) float64 {
	if cap > 0 && v > cap {
		return cap
	}
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Additive model
// ─────────────────────────────────────────────────────────────────────────────

// AdditiveBase computes the additive weighted-sum score in [0,100] before
// the year multiplier.  Always-present metrics contribute unconditionally;
// optional rated metrics contribute only when present, and the denominator
// sums only contributed weight (weight redistribution).  Returns exactly 0
// when no weight was contributed.
func AdditiveBase(m MetricSet, p AdditiveProfile, citationCap float64) float64 {
	score := 0.0
	weightSum := 0.0

	for _, f := range AlwaysPresentFields() {
		w, ok := p.Weights[f]
		if !ok || w == 0 {
			continue
		}
		v, _ := m.Value(f)
		if f == FieldCompetitorCitations {
			v = capCitations(v, citationCap)
		}
		norm, ok := AdditiveNorm(f)
		if !ok {
			continue
		}
		score += w * Normalize(v, norm)
		weightSum += w
	}

	for _, f := range RatingFields() {
		w, ok := p.Weights[f]
		if !ok || w == 0 {
			continue
		}
		v, present := m.Ratings[f]
		if !present {
			continue
		}
		norm, ok := AdditiveNorm(f)
		if !ok {
			continue
		}
		score += w * Normalize(v, norm)
		weightSum += w
	}

	if weightSum <= 0 {
		return 0
	}
	return score / weightSum * 100
}

// EvaluateAdditive computes the final additive score: the base score scaled
// by the year multiplier.  A patent with no remaining life scores 0
// regardless of its other metrics.
func EvaluateAdditive(m MetricSet, p AdditiveProfile, citationCap float64) float64 {
	return AdditiveBase(m, p, citationCap) * YearMultiplier(m.YearsRemaining)
}

// UnifiedProfile is the aggregate id of the additive family.
const UnifiedProfile = "unified"

// EvaluateAdditiveFamily scores every additive profile in the registry and
// adds the "unified" aggregate: the arithmetic mean of the profile scores.
func EvaluateAdditiveFamily(m MetricSet, reg *Registry, citationCap float64) map[string]float64 {
	profiles := reg.AdditiveProfiles()
	out := make(map[string]float64, len(profiles)+1)
	sum := 0.0
	for _, p := range profiles {
		s := EvaluateAdditive(m, p, citationCap)
		out[p.ID] = s
		sum += s
	}
	if len(profiles) > 0 {
		out[UnifiedProfile] = sum / float64(len(profiles))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Multiplicative model
// ─────────────────────────────────────────────────────────────────────────────

// FactorScore is one Factor's computed score within a profile evaluation.
type FactorScore struct {
	Name  string
	Score float64
}

// EvaluateMultiplicative computes the multiplicative floored-factor score in
// [0,100].  Each Factor's score is the weighted average of its metrics'
// normalized values, substituting the metric's configured default when the
// raw value is absent, then floored at the Factor's minimum.  The final
// score is the product of all Factor scores times 100, so a single weak
// dimension dominates.
func EvaluateMultiplicative(m MetricSet, p MultiplicativeProfile, citationCap float64) (float64, []FactorScore) {
	factorScores := make([]FactorScore, 0, len(p.Factors))

	final := 1.0
	for _, factor := range p.Factors {
		weightedSum := 0.0
		totalWeight := 0.0

		for _, mw := range factor.Metrics {
			raw, present := m.Value(mw.Field)
			if !present {
				raw = mw.Default
			} else if mw.Field == FieldCompetitorCitations {
				raw = capCitations(raw, citationCap)
			}
			weightedSum += mw.Weight * Normalize(raw, mw.Norm)
			totalWeight += mw.Weight
		}

		score := 0.0
		if totalWeight > 0 {
			score = weightedSum / totalWeight
		}
		if score < factor.Floor {
			score = factor.Floor
		}

		factorScores = append(factorScores, FactorScore{Name: factor.Name, Score: score})
		final *= score
	}

	return final * 100, factorScores
}

// ConsensusProfile is the aggregate id of the multiplicative family.
const ConsensusProfile = "consensus"

// EvaluateMultiplicativeFamily scores every stakeholder profile in the
// registry and adds the "consensus" aggregate: the arithmetic mean of the
// profile scores, representing a cross-stakeholder view.
func EvaluateMultiplicativeFamily(m MetricSet, reg *Registry, citationCap float64) map[string]float64 {
	profiles := reg.MultiplicativeProfiles()
	out := make(map[string]float64, len(profiles)+1)
	sum := 0.0
	for _, p := range profiles {
		s, _ := EvaluateMultiplicative(m, p, citationCap)
		out[p.ID] = s
		sum += s
	}
	if len(profiles) > 0 {
		out[ConsensusProfile] = sum / float64(len(profiles))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Current engine (executive profile)
// ─────────────────────────────────────────────────────────────────────────────

// currentExecutiveWeights are the fixed weights of the current engine's
// twelve-metric executive profile.
var currentExecutiveWeights = map[Field]float64{
	FieldCompetitorCitations: 0.25,
	FieldForwardCitations:    0.13,
	FieldYearsRemaining:      0.17,
	FieldCompetitorCount:     0.08,
	FieldEligibility:         0.05,
	FieldValidity:            0.05,
	FieldClaimBreadth:        0.04,
	FieldEnforcement:         0.04,
	FieldDesignAround:        0.04,
	FieldMarketRelevance:     0.05,
	FieldIPRRisk:             0.05,
	FieldProsecutionQual:     0.05,
}

// EvaluateCurrentExecutive reproduces the current engine's executive score:
// an additive twelve-metric profile with fixed normalization denominators,
// weight redistribution over available metrics, and a softened year
// multiplier that bottoms out at 0.3 instead of zeroing expired assets.
// The result is rounded to two decimals, matching the engine's export
// precision.
func EvaluateCurrentExecutive(m MetricSet, citationCap float64) float64 {
	cc := capCitations(m.CompetitorCitations, citationCap)

	normalized := map[Field]float64{
		FieldCompetitorCitations: clamp01(cc / 20.0),
		FieldForwardCitations:    clamp01(math.Sqrt(math.Max(0, m.ForwardCitations)) / 30.0),
		FieldYearsRemaining:      clamp01(m.YearsRemaining / 15.0),
		FieldCompetitorCount:     clamp01(m.CompetitorCount / 5.0),
	}

	availableWeight := 0.0
	for _, f := range AlwaysPresentFields() {
		availableWeight += currentExecutiveWeights[f]
	}

	// Rated metrics participate only when present and in the 1..5 range.
	for _, f := range RatingFields() {
		v, ok := m.Ratings[f]
		if !ok || v < 1 || v > 5 {
			continue
		}
		normalized[f] = clamp01((v - 1) / 4.0)
		availableWeight += currentExecutiveWeights[f]
	}

	renorm := 1.0
	if availableWeight > 0 {
		renorm = 1.0 / availableWeight
	}

	base := 0.0
	for _, f := range AlwaysPresentFields() {
		base += normalized[f] * currentExecutiveWeights[f]
	}
	for _, f := range RatingFields() {
		if n, ok := normalized[f]; ok {
			base += n * currentExecutiveWeights[f]
		}
	}
	base *= renorm

	yearsFactor := clamp01(math.Max(0, m.YearsRemaining) / 15.0)
	yearMult := 0.3 + 0.7*math.Pow(yearsFactor, 0.8)

	return math.Round(base*yearMult*100*100) / 100
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

// FamilyMean returns the arithmetic mean of byProfile over the named family.
// Profiles missing from byProfile contribute 0, keeping the denominator
// equal to the family size.
func FamilyMean(byProfile map[string]float64, family []string) float64 {
	if len(family) == 0 {
		return 0
	}
	sum := 0.0
	for _, id := range family {
		sum += byProfile[id]
	}
	return sum / float64(len(family))
}
