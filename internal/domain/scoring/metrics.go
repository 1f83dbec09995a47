// Package scoring implements the patent value scoring engine: metric
// normalization, the declarative profile catalog for both formula
// generations, and the additive and multiplicative evaluation models.
package scoring

// Field names a raw metric.  The names match the column/key names used by
// the historical exports and the current data sources.
type Field string

// Quantitative metrics, present for every patent.
const (
	FieldCompetitorCitations Field = "competitor_citations"
	FieldForwardCitations    Field = "forward_citations"
	FieldYearsRemaining      Field = "years_remaining"
	FieldCompetitorCount     Field = "competitor_count"
)

// Sparse 1–5 rated qualitative metrics.  Any of these may be absent for a
// given patent.
const (
	FieldEligibility       Field = "eligibility_score"
	FieldValidity          Field = "validity_score"
	FieldClaimBreadth      Field = "claim_breadth"
	FieldEnforcement       Field = "enforcement_clarity"
	FieldDesignAround      Field = "design_around_difficulty"
	FieldMarketRelevance   Field = "market_relevance_score"
	FieldIPRRisk           Field = "ipr_risk_score"
	FieldProsecutionQual   Field = "prosecution_quality_score"
)

// AlwaysPresentFields is the canonical ordered list of quantitative metrics.
func AlwaysPresentFields() []Field {
	return []Field{
		FieldCompetitorCitations,
		FieldCompetitorCount,
		FieldForwardCitations,
		FieldYearsRemaining,
	}
}

// RatingFields is the canonical ordered list of sparse rated metrics.
func RatingFields() []Field {
	return []Field{
		FieldEligibility,
		FieldValidity,
		FieldClaimBreadth,
		FieldEnforcement,
		FieldDesignAround,
		FieldMarketRelevance,
		FieldIPRRisk,
		FieldProsecutionQual,
	}
}

// CoreRatingFields is the subset of rating fields delivered together by the
// primary ratings cache (one file per patent).  The remaining rating fields
// arrive from independently refreshed sources.
func CoreRatingFields() []Field {
	return []Field{
		FieldEligibility,
		FieldValidity,
		FieldClaimBreadth,
		FieldEnforcement,
		FieldDesignAround,
	}
}

// MetricSet holds one patent's raw metric values.  The four quantitative
// metrics are always present (a patent with no known citations simply has
// zero); the rated metrics live in Ratings and are present only when a
// source supplied them.
type MetricSet struct {
	CompetitorCitations float64
	ForwardCitations    float64
	YearsRemaining      float64
	CompetitorCount     float64

	Ratings map[Field]float64
}

// Value returns the raw value for f and whether it is present.  Quantitative
// fields always report present; rating fields report presence from the
// Ratings map.
func (m MetricSet) Value(f Field) (float64, bool) {
	switch f {
	case FieldCompetitorCitations:
		return m.CompetitorCitations, true
	case FieldForwardCitations:
		return m.ForwardCitations, true
	case FieldYearsRemaining:
		return m.YearsRemaining, true
	case FieldCompetitorCount:
		return m.CompetitorCount, true
	}
	v, ok := m.Ratings[f]
	return v, ok
}

// HasRating reports whether the rated metric f is present.
func (m MetricSet) HasRating(f Field) bool {
	_, ok := m.Ratings[f]
	return ok
}

// SetRating records a rated metric value, allocating the map on first use.
func (m *MetricSet) SetRating(f Field, v float64) {
	if m.Ratings == nil {
		m.Ratings = make(map[Field]float64, 8)
	}
	m.Ratings[f] = v
}
