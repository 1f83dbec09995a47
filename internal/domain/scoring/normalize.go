package scoring

import (
	"fmt"
	"math"

	"github.com/grasslabel/ipscore/pkg/errors"
)

// SpecKind tags a normalization strategy.
type SpecKind string

const (
	// SpecLinear maps value/max, clamped to [0,1].
	SpecLinear SpecKind = "linear"

	// SpecSqrt maps sqrt(value)/sqrt(max), clamped to [0,1].  Compresses
	// large counts and amplifies small ones.
	SpecSqrt SpecKind = "sqrt"

	// SpecLog maps ln(value+1)/ln(max+1), clamped to [0,1].
	SpecLog SpecKind = "log"

	// SpecStepped returns the value of the first step whose threshold is at
	// or below the input.  Steps are authored in descending threshold order.
	SpecStepped SpecKind = "stepped"

	// SpecTiered interpolates within contiguous [min,max) tiers, each with a
	// base value and slope.  Values at or past the last tier saturate.
	SpecTiered SpecKind = "tiered_continuous"

	// SpecScore5 rescales a 1..5 rating as (v-1)/4.  Used by the
	// multiplicative generation.
	SpecScore5 SpecKind = "score5"

	// SpecRatingOverFive rescales a 1..5 rating as v/5.  Used by the
	// additive generation.  Deliberately distinct from SpecScore5: the two
	// generations normalized ratings differently and both must reproduce
	// their own exports.
	SpecRatingOverFive SpecKind = "rating_over_five"

	// SpecYearsCurve maps remaining years as (y/15)^1.5, saturating at 15.
	// Used by the additive generation for the years_remaining metric.
	SpecYearsCurve SpecKind = "years_curve"
)

// Step is one entry of a stepped normalization: inputs at or above Threshold
// map to Value (unless a higher step claimed them first).
type Step struct {
	Threshold float64
	Value     float64
}

// Tier is one segment of a tiered-continuous normalization covering the
// half-open range [Min,Max).  Inside the tier the result is
// BaseValue + Slope·(v−Min)/(Max−Min).
type Tier struct {
	Min       float64
	Max       float64
	BaseValue float64
	Slope     float64
}

// Spec is a declarative normalization rule.  Max applies to linear, sqrt and
// log; Steps to stepped; Tiers to tiered_continuous.
type Spec struct {
	Kind  SpecKind
	Max   float64
	Steps []Step
	Tiers []Tier
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize maps a raw metric value to a comparable score in [0,1] under the
// given spec.  Non-positive input to sqrt and log yields 0, never an error.
// A value outside every stepped/tiered range yields 0.
func Normalize(v float64, spec Spec) float64 {
	switch spec.Kind {
	case SpecLinear:
		if spec.Max <= 0 {
			return 0
		}
		return clamp01(v / spec.Max)

	case SpecSqrt:
		if spec.Max <= 0 || v <= 0 {
			return 0
		}
		return clamp01(math.Sqrt(v) / math.Sqrt(spec.Max))

	case SpecLog:
		if v <= 0 || spec.Max <= 0 {
			return 0
		}
		return clamp01(math.Log(v+1) / math.Log(spec.Max+1))

	case SpecStepped:
		for _, s := range spec.Steps {
			if v >= s.Threshold {
				return clamp01(s.Value)
			}
		}
		return 0

	case SpecTiered:
		for _, t := range spec.Tiers {
			if v >= t.Min && v < t.Max {
				progress := (v - t.Min) / (t.Max - t.Min)
				return clamp01(t.BaseValue + progress*t.Slope)
			}
		}
		if n := len(spec.Tiers); n > 0 && v >= spec.Tiers[n-1].Max {
			last := spec.Tiers[n-1]
			return clamp01(last.BaseValue + last.Slope)
		}
		return 0

	case SpecScore5:
		return clamp01((v - 1) / 4.0)

	case SpecRatingOverFive:
		return clamp01(v / 5.0)

	case SpecYearsCurve:
		if v <= 0 {
			return 0
		}
		if v >= 15 {
			return 1
		}
		return math.Pow(v/15.0, 1.5)
	}
	return 0
}

// YearMultiplier scales an additive-family score by remaining asset life:
// 0 when years ≤ 0, 1.0 at 15 years or more, otherwise
// 0.3 + 0.7·(years/15)^0.8.  Monotone non-decreasing in years.
func YearMultiplier(years float64) float64 {
	if years <= 0 {
		return 0
	}
	if years >= 15 {
		return 1.0
	}
	return 0.3 + 0.7*math.Pow(years/15.0, 0.8)
}

// tierEps is the tolerance used when checking boundary continuity of
// authored tiers.
const tierEps = 1e-9

// ValidateTiers verifies that tiers are authored ascending, contiguous, and
// continuous at boundaries (each tier's baseValue+slope equals the next
// tier's baseValue).  Misauthored tiers are a catalog defect and must be
// flagged, not silently tolerated.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return errors.New(errors.ErrCodeInvalidTiers, "tier list must not be empty")
	}
	for i, t := range tiers {
		if t.Max <= t.Min {
			return errors.New(errors.ErrCodeInvalidTiers, "tier range is empty or inverted").
				WithDetail(tierDetail(i, t))
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if t.Min != prev.Max {
			return errors.New(errors.ErrCodeInvalidTiers, "tiers are not contiguous").
				WithDetail(tierDetail(i, t))
		}
		if math.Abs(prev.BaseValue+prev.Slope-t.BaseValue) > tierEps {
			return errors.New(errors.ErrCodeInvalidTiers, "tier boundary is discontinuous").
				WithDetail(tierDetail(i, t))
		}
	}
	return nil
}

// ValidateSteps verifies that steps are authored in strictly descending
// threshold order with values in [0,1], so the resulting staircase is
// non-decreasing in its input.
func ValidateSteps(steps []Step) error {
	if len(steps) == 0 {
		return errors.New(errors.ErrCodeInvalidTiers, "step list must not be empty")
	}
	for i, s := range steps {
		if s.Value < 0 || s.Value > 1 {
			return errors.New(errors.ErrCodeInvalidTiers, "step value outside [0,1]")
		}
		if i > 0 {
			if s.Threshold >= steps[i-1].Threshold {
				return errors.New(errors.ErrCodeInvalidTiers, "step thresholds must be strictly descending")
			}
			if s.Value > steps[i-1].Value {
				return errors.New(errors.ErrCodeInvalidTiers, "step values must not increase as thresholds fall")
			}
		}
	}
	return nil
}

func tierDetail(i int, t Tier) string {
	return fmt.Sprintf("tier %d [%g,%g)", i, t.Min, t.Max)
}
