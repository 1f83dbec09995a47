package scoring

import (
	"github.com/grasslabel/ipscore/pkg/errors"
)

// This file is the profile catalog: the verbatim weight maps, tier tables,
// step curves, floors, and defaults of both historical scoring generations.
// Configuration is data, not behavior — the engine is testable against
// synthetic profiles and never depends on this catalog's content.
//
// The constants must not be "fixed" or tidied: they are regression targets
// that must reproduce the historical exports bit-for-bit within tolerance.

// ─────────────────────────────────────────────────────────────────────────────
// Shared normalization specs
// ─────────────────────────────────────────────────────────────────────────────

// score5 is the multiplicative generation's rating rescale: (v−1)/4.
var score5 = Spec{Kind: SpecScore5}

// citationsAggressive is the steep competitor-citation tier table used by
// litigation-leaning profiles.
var citationsAggressive = Spec{Kind: SpecTiered, Tiers: []Tier{
	{Min: 0, Max: 1, BaseValue: 0.005, Slope: 0.145},
	{Min: 1, Max: 3, BaseValue: 0.15, Slope: 0.35},
	{Min: 3, Max: 8, BaseValue: 0.50, Slope: 0.25},
	{Min: 8, Max: 20, BaseValue: 0.75, Slope: 0.18},
	{Min: 20, Max: 100, BaseValue: 0.93, Slope: 0.07},
}}

// citationsStandard is the moderate competitor-citation tier table.
var citationsStandard = Spec{Kind: SpecTiered, Tiers: []Tier{
	{Min: 0, Max: 1, BaseValue: 0.01, Slope: 0.14},
	{Min: 1, Max: 3, BaseValue: 0.15, Slope: 0.30},
	{Min: 3, Max: 8, BaseValue: 0.45, Slope: 0.25},
	{Min: 8, Max: 20, BaseValue: 0.70, Slope: 0.20},
	{Min: 20, Max: 100, BaseValue: 0.90, Slope: 0.10},
}}

// yearsLitigation is the stepped remaining-years curve shared by the two
// ip-lit profiles.
var yearsLitigation = Spec{Kind: SpecStepped, Steps: []Step{
	{Threshold: 10, Value: 1.00},
	{Threshold: 7, Value: 0.85},
	{Threshold: 5, Value: 0.60},
	{Threshold: 4, Value: 0.40},
	{Threshold: 3, Value: 0.25},
	{Threshold: 0, Value: 0.10},
}}

// additiveNorms maps each field to the additive generation's per-field
// normalization.  Normalization is per field, not per profile, in that
// generation.
var additiveNorms = map[Field]Spec{
	FieldCompetitorCitations: {Kind: SpecSqrt, Max: 50},
	FieldCompetitorCount:     {Kind: SpecLinear, Max: 10},
	FieldForwardCitations:    {Kind: SpecSqrt, Max: 500},
	FieldYearsRemaining:      {Kind: SpecYearsCurve},

	FieldEligibility:     {Kind: SpecRatingOverFive},
	FieldValidity:        {Kind: SpecRatingOverFive},
	FieldClaimBreadth:    {Kind: SpecRatingOverFive},
	FieldEnforcement:     {Kind: SpecRatingOverFive},
	FieldDesignAround:    {Kind: SpecRatingOverFive},
	FieldMarketRelevance: {Kind: SpecRatingOverFive},
	FieldIPRRisk:         {Kind: SpecRatingOverFive},
	FieldProsecutionQual: {Kind: SpecRatingOverFive},
}

// AdditiveNorm returns the additive generation's normalization for f.
func AdditiveNorm(f Field) (Spec, bool) {
	s, ok := additiveNorms[f]
	return s, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Additive generation profiles
// ─────────────────────────────────────────────────────────────────────────────

var additiveProfiles = []AdditiveProfile{
	{
		ID: "aggressive",
		Weights: map[Field]float64{
			FieldCompetitorCitations: 0.25,
			FieldCompetitorCount:     0.10,
			FieldForwardCitations:    0.05,
			FieldYearsRemaining:      0.05,
			FieldEligibility:         0.15,
			FieldValidity:            0.10,
			FieldClaimBreadth:        0.05,
			FieldEnforcement:         0.10,
			FieldMarketRelevance:     0.10,
			FieldIPRRisk:             0.025,
			FieldProsecutionQual:     0.025,
		},
	},
	{
		ID: "moderate",
		Weights: map[Field]float64{
			FieldCompetitorCitations: 0.15,
			FieldCompetitorCount:     0.05,
			FieldForwardCitations:    0.10,
			FieldYearsRemaining:      0.05,
			FieldEligibility:         0.15,
			FieldValidity:            0.15,
			FieldClaimBreadth:        0.10,
			FieldEnforcement:         0.10,
			FieldMarketRelevance:     0.10,
			FieldIPRRisk:             0.025,
			FieldProsecutionQual:     0.025,
		},
	},
	{
		ID: "conservative",
		Weights: map[Field]float64{
			FieldCompetitorCitations: 0.10,
			FieldCompetitorCount:     0.05,
			FieldForwardCitations:    0.05,
			FieldYearsRemaining:      0.05,
			FieldEligibility:         0.20,
			FieldValidity:            0.20,
			FieldClaimBreadth:        0.10,
			FieldEnforcement:         0.10,
			FieldMarketRelevance:     0.05,
			FieldIPRRisk:             0.05,
			FieldProsecutionQual:     0.05,
		},
	},
}

// ─────────────────────────────────────────────────────────────────────────────
// Multiplicative generation profiles
// ─────────────────────────────────────────────────────────────────────────────

var multiplicativeProfiles = []MultiplicativeProfile{
	{
		ID: "ip-lit-aggressive",
		Factors: []Factor{
			{Name: "MarketOpportunity", Floor: 0.02, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.60, Norm: citationsAggressive},
				{Field: FieldCompetitorCount, Weight: 0.20, Norm: Spec{Kind: SpecSqrt, Max: 10}},
				{Field: FieldForwardCitations, Weight: 0.08, Norm: Spec{Kind: SpecSqrt, Max: 400}},
				{Field: FieldMarketRelevance, Weight: 0.12, Norm: score5, Default: 3.2},
			}},
			{Name: "LegalMerit", Floor: 0.15, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldValidity, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldClaimBreadth, Weight: 0.15, Norm: score5, Default: 3.0},
				{Field: FieldProsecutionQual, Weight: 0.15, Norm: score5, Default: 3.0},
			}},
			{Name: "CollectionYield", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldEnforcement, Weight: 0.40, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldIPRRisk, Weight: 0.25, Norm: score5, Default: 4.0},
			}},
			{Name: "Timeline", Floor: 0.12, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: yearsLitigation},
			}},
		},
	},
	{
		ID: "ip-lit-balanced",
		Factors: []Factor{
			{Name: "MarketEvidence", Floor: 0.012, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.75, Norm: citationsAggressive},
				{Field: FieldCompetitorCount, Weight: 0.15, Norm: Spec{Kind: SpecLinear, Max: 8}},
				{Field: FieldMarketRelevance, Weight: 0.10, Norm: score5, Default: 3.0},
			}},
			{Name: "LegalStrength", Floor: 0.17, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldValidity, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldClaimBreadth, Weight: 0.20, Norm: score5, Default: 3.0},
				{Field: FieldProsecutionQual, Weight: 0.20, Norm: score5, Default: 3.0},
			}},
			{Name: "EnforcementViability", Floor: 0.25, Metrics: []MetricWeight{
				{Field: FieldEnforcement, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldIPRRisk, Weight: 0.35, Norm: score5, Default: 4.0},
			}},
			{Name: "TimelineValue", Floor: 0.15, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: yearsLitigation},
			}},
		},
	},
	{
		ID: "ip-lit-conservative",
		Factors: []Factor{
			{Name: "LegalFoundation", Floor: 0.30, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.30, Norm: score5, Default: 2.8},
				{Field: FieldValidity, Weight: 0.30, Norm: score5, Default: 2.8},
				{Field: FieldProsecutionQual, Weight: 0.25, Norm: score5, Default: 2.8},
				{Field: FieldClaimBreadth, Weight: 0.15, Norm: score5, Default: 3.0},
			}},
			{Name: "MarketValidation", Floor: 0.05, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.65, Norm: citationsStandard},
				{Field: FieldCompetitorCount, Weight: 0.20, Norm: Spec{Kind: SpecLinear, Max: 8}},
				{Field: FieldForwardCitations, Weight: 0.15, Norm: Spec{Kind: SpecSqrt, Max: 300}},
			}},
			{Name: "RiskMitigation", Floor: 0.35, Metrics: []MetricWeight{
				{Field: FieldIPRRisk, Weight: 0.40, Norm: score5, Default: 3.5},
				{Field: FieldEnforcement, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.25, Norm: score5, Default: 3.0},
			}},
			{Name: "TimelineMargin", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: Spec{Kind: SpecStepped, Steps: []Step{
					{Threshold: 12, Value: 1.00},
					{Threshold: 9, Value: 0.85},
					{Threshold: 7, Value: 0.65},
					{Threshold: 5, Value: 0.40},
					{Threshold: 3, Value: 0.20},
					{Threshold: 0, Value: 0.10},
				}}},
			}},
		},
	},
	{
		ID: "licensing",
		Factors: []Factor{
			{Name: "LicenseePool", Floor: 0.05, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.45, Norm: citationsStandard},
				{Field: FieldCompetitorCount, Weight: 0.30, Norm: Spec{Kind: SpecSqrt, Max: 10}},
				{Field: FieldForwardCitations, Weight: 0.25, Norm: Spec{Kind: SpecSqrt, Max: 400}},
			}},
			{Name: "NegotiationLeverage", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldClaimBreadth, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldEnforcement, Weight: 0.25, Norm: score5, Default: 3.0},
				{Field: FieldIPRRisk, Weight: 0.15, Norm: score5, Default: 4.0},
			}},
			{Name: "Credibility", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.40, Norm: score5, Default: 3.0},
				{Field: FieldValidity, Weight: 0.40, Norm: score5, Default: 3.0},
				{Field: FieldProsecutionQual, Weight: 0.20, Norm: score5, Default: 3.0},
			}},
			{Name: "TermValue", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: Spec{Kind: SpecStepped, Steps: []Step{
					{Threshold: 8, Value: 1.00},
					{Threshold: 5, Value: 0.80},
					{Threshold: 3, Value: 0.55},
					{Threshold: 0, Value: 0.25},
				}}},
			}},
		},
	},
	{
		ID: "corporate-ma",
		Factors: []Factor{
			{Name: "StrategicValue", Floor: 0.03, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.55, Norm: citationsAggressive},
				{Field: FieldForwardCitations, Weight: 0.25, Norm: Spec{Kind: SpecSqrt, Max: 500}},
				{Field: FieldCompetitorCount, Weight: 0.20, Norm: Spec{Kind: SpecLinear, Max: 10}},
			}},
			{Name: "DefensiveStrength", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldClaimBreadth, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldMarketRelevance, Weight: 0.30, Norm: score5, Default: 3.0},
			}},
			{Name: "AssetQuality", Floor: 0.25, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldValidity, Weight: 0.30, Norm: score5, Default: 3.0},
				{Field: FieldProsecutionQual, Weight: 0.20, Norm: score5, Default: 3.0},
				{Field: FieldIPRRisk, Weight: 0.20, Norm: score5, Default: 4.0},
			}},
			{Name: "LifecycleValue", Floor: 0.15, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: Spec{Kind: SpecStepped, Steps: []Step{
					{Threshold: 10, Value: 1.00},
					{Threshold: 7, Value: 0.80},
					{Threshold: 5, Value: 0.60},
					{Threshold: 3, Value: 0.35},
					{Threshold: 0, Value: 0.15},
				}}},
			}},
		},
	},
	{
		ID: "executive",
		Factors: []Factor{
			{Name: "MarketPosition", Floor: 0.02, Metrics: []MetricWeight{
				{Field: FieldCompetitorCitations, Weight: 0.65, Norm: citationsAggressive},
				{Field: FieldForwardCitations, Weight: 0.20, Norm: Spec{Kind: SpecSqrt, Max: 500}},
				{Field: FieldMarketRelevance, Weight: 0.15, Norm: score5, Default: 3.0},
			}},
			{Name: "PortfolioQuality", Floor: 0.22, Metrics: []MetricWeight{
				{Field: FieldEligibility, Weight: 0.25, Norm: score5, Default: 3.0},
				{Field: FieldValidity, Weight: 0.25, Norm: score5, Default: 3.0},
				{Field: FieldClaimBreadth, Weight: 0.25, Norm: score5, Default: 3.0},
				{Field: FieldProsecutionQual, Weight: 0.25, Norm: score5, Default: 3.0},
			}},
			{Name: "MonetizationPotential", Floor: 0.20, Metrics: []MetricWeight{
				{Field: FieldCompetitorCount, Weight: 0.35, Norm: Spec{Kind: SpecSqrt, Max: 10}},
				{Field: FieldEnforcement, Weight: 0.35, Norm: score5, Default: 3.0},
				{Field: FieldDesignAround, Weight: 0.30, Norm: score5, Default: 3.0},
			}},
			{Name: "AssetLongevity", Floor: 0.18, Metrics: []MetricWeight{
				{Field: FieldYearsRemaining, Weight: 1.0, Norm: Spec{Kind: SpecStepped, Steps: []Step{
					{Threshold: 10, Value: 1.00},
					{Threshold: 7, Value: 0.80},
					{Threshold: 5, Value: 0.55},
					{Threshold: 3, Value: 0.30},
					{Threshold: 0, Value: 0.12},
				}}},
			}},
		},
	},
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// Registry exposes the static profile catalog.  It is loaded once at process
// start and never mutated; callers must treat returned profiles as
// read-only.
type Registry struct {
	additive       []AdditiveProfile
	multiplicative []MultiplicativeProfile
}

// NewRegistry returns the catalog of both scoring generations.
func NewRegistry() *Registry {
	return &Registry{
		additive:       additiveProfiles,
		multiplicative: multiplicativeProfiles,
	}
}

// AdditiveProfiles returns the additive generation's profiles in catalog
// order.
func (r *Registry) AdditiveProfiles() []AdditiveProfile {
	return r.additive
}

// MultiplicativeProfiles returns the multiplicative generation's stakeholder
// profiles in catalog order.
func (r *Registry) MultiplicativeProfiles() []MultiplicativeProfile {
	return r.multiplicative
}

// Additive looks up an additive profile by id.
func (r *Registry) Additive(id string) (AdditiveProfile, error) {
	for _, p := range r.additive {
		if p.ID == id {
			return p, nil
		}
	}
	return AdditiveProfile{}, errors.New(errors.ErrCodeProfileNotFound, "unknown additive profile").WithDetail(id)
}

// Multiplicative looks up a multiplicative profile by id.
func (r *Registry) Multiplicative(id string) (MultiplicativeProfile, error) {
	for _, p := range r.multiplicative {
		if p.ID == id {
			return p, nil
		}
	}
	return MultiplicativeProfile{}, errors.New(errors.ErrCodeProfileNotFound, "unknown multiplicative profile").WithDetail(id)
}

// IDs returns the profile ids of the given family in catalog order.
func (r *Registry) IDs(family ModelFamily) []string {
	var out []string
	switch family {
	case FamilyAdditive:
		for _, p := range r.additive {
			out = append(out, p.ID)
		}
	case FamilyMultiplicative:
		for _, p := range r.multiplicative {
			out = append(out, p.ID)
		}
	}
	return out
}
