package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLinear(t *testing.T) {
	spec := Spec{Kind: SpecLinear, Max: 10}

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"zero", 0, 0},
		{"half", 5, 0.5},
		{"at max", 10, 1},
		{"above max clamps", 25, 1},
		{"negative clamps", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.v, spec), 1e-12)
		})
	}
}

func TestNormalizeSqrt(t *testing.T) {
	spec := Spec{Kind: SpecSqrt, Max: 500}

	assert.InDelta(t, math.Sqrt(100)/math.Sqrt(500), Normalize(100, spec), 1e-12)
	assert.Equal(t, 1.0, Normalize(500, spec))
	assert.Equal(t, 1.0, Normalize(9999, spec))
	assert.Equal(t, 0.0, Normalize(0, spec))
	assert.Equal(t, 0.0, Normalize(-1, spec))
}

func TestNormalizeLog(t *testing.T) {
	spec := Spec{Kind: SpecLog, Max: 100}

	assert.Equal(t, 0.0, Normalize(0, spec))
	assert.Equal(t, 0.0, Normalize(-5, spec))
	assert.InDelta(t, math.Log1p(10)/math.Log1p(100), Normalize(10, spec), 1e-12)
	assert.Equal(t, 1.0, Normalize(100, spec))
	assert.Equal(t, 1.0, Normalize(1e6, spec))
}

func TestNormalizeStepped(t *testing.T) {
	spec := Spec{Kind: SpecStepped, Steps: []Step{
		{Threshold: 12, Value: 1.00},
		{Threshold: 9, Value: 0.85},
		{Threshold: 7, Value: 0.65},
		{Threshold: 0, Value: 0.10},
	}}

	tests := []struct {
		v    float64
		want float64
	}{
		{15, 1.00},
		{12, 1.00},
		{11.9, 0.85},
		{9, 0.85},
		{7, 0.65},
		{3, 0.10},
		{0, 0.10},
		{-2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.v, spec), "v=%g", tt.v)
	}
}

func TestNormalizeTiered(t *testing.T) {
	spec := Spec{Kind: SpecTiered, Tiers: []Tier{
		{Min: 0, Max: 5, BaseValue: 0.0, Slope: 0.2},
		{Min: 5, Max: 15, BaseValue: 0.2, Slope: 0.3},
		{Min: 15, Max: 40, BaseValue: 0.5, Slope: 0.3},
	}}
	require.NoError(t, ValidateTiers(spec.Tiers))

	// Start of the first tier is the base value.
	assert.InDelta(t, 0.0, Normalize(0, spec), 1e-12)
	// Progress through a tier scales the tier's slope.
	assert.InDelta(t, 0.2+(2.0/10.0)*0.3, Normalize(7, spec), 1e-12)
	// Continuity at tier boundaries.
	assert.InDelta(t, Normalize(5-1e-10, spec), Normalize(5, spec), 1e-6)
	assert.InDelta(t, Normalize(15-1e-10, spec), Normalize(15, spec), 1e-6)
	// Saturation past the last tier.
	assert.InDelta(t, 0.8, Normalize(40, spec), 1e-12)
	assert.InDelta(t, 0.8, Normalize(1000, spec), 1e-12)
	// Below the first tier.
	assert.Equal(t, 0.0, Normalize(-1, spec))
}

func TestNormalizeScore5(t *testing.T) {
	spec := Spec{Kind: SpecScore5}

	assert.Equal(t, 0.0, Normalize(1, spec))
	assert.InDelta(t, 0.45, Normalize(2.8, spec), 1e-12)
	assert.Equal(t, 1.0, Normalize(5, spec))
	assert.Equal(t, 0.0, Normalize(0.5, spec))
	assert.Equal(t, 1.0, Normalize(7, spec))
}

func TestNormalizeRatingOverFive(t *testing.T) {
	spec := Spec{Kind: SpecRatingOverFive}

	assert.InDelta(t, 0.2, Normalize(1, spec), 1e-12)
	assert.InDelta(t, 0.7, Normalize(3.5, spec), 1e-12)
	assert.Equal(t, 1.0, Normalize(5, spec))
	assert.Equal(t, 1.0, Normalize(8, spec))
}

func TestNormalizeYearsCurve(t *testing.T) {
	spec := Spec{Kind: SpecYearsCurve}

	assert.Equal(t, 0.0, Normalize(0, spec))
	assert.InDelta(t, math.Pow(7.5/15.0, 1.5), Normalize(7.5, spec), 1e-12)
	assert.Equal(t, 1.0, Normalize(15, spec))
	assert.Equal(t, 1.0, Normalize(20, spec))
}

func TestNormalizeBounded(t *testing.T) {
	// Every kind stays inside [0, 1] over a wide input sweep.
	specs := []Spec{
		{Kind: SpecLinear, Max: 8},
		{Kind: SpecSqrt, Max: 300},
		{Kind: SpecLog, Max: 50},
		{Kind: SpecScore5},
		{Kind: SpecRatingOverFive},
		{Kind: SpecYearsCurve},
		{Kind: SpecStepped, Steps: []Step{{Threshold: 10, Value: 1}, {Threshold: 0, Value: 0.1}}},
		{Kind: SpecTiered, Tiers: []Tier{{Min: 0, Max: 10, BaseValue: 0.1, Slope: 0.05}}},
	}
	for _, spec := range specs {
		for v := -10.0; v <= 1000; v += 7.3 {
			n := Normalize(v, spec)
			require.GreaterOrEqual(t, n, 0.0, "kind=%s v=%g", spec.Kind, v)
			require.LessOrEqual(t, n, 1.0, "kind=%s v=%g", spec.Kind, v)
		}
	}
}

func TestYearMultiplier(t *testing.T) {
	assert.Equal(t, 0.0, YearMultiplier(0))
	assert.Equal(t, 0.0, YearMultiplier(-4))
	assert.Equal(t, 1.0, YearMultiplier(15))
	assert.Equal(t, 1.0, YearMultiplier(22))

	// Mid-range follows the softened curve.
	want := 0.3 + 0.7*math.Pow(7.5/15.0, 0.8)
	assert.InDelta(t, want, YearMultiplier(7.5), 1e-12)

	// Monotonic over the active range.
	prev := YearMultiplier(0.1)
	for y := 0.2; y < 15; y += 0.1 {
		cur := YearMultiplier(y)
		require.GreaterOrEqual(t, cur, prev, "y=%g", y)
		prev = cur
	}
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []Tier
		wantErr bool
	}{
		{
			name: "valid contiguous",
			tiers: []Tier{
				{Min: 0, Max: 5, BaseValue: 0, Slope: 0.2},
				{Min: 5, Max: 15, BaseValue: 0.2, Slope: 0.3},
			},
		},
		{
			name: "gap between tiers",
			tiers: []Tier{
				{Min: 0, Max: 5, BaseValue: 0, Slope: 0.2},
				{Min: 6, Max: 15, BaseValue: 0.2, Slope: 0.3},
			},
			wantErr: true,
		},
		{
			name: "discontinuous value at boundary",
			tiers: []Tier{
				{Min: 0, Max: 5, BaseValue: 0, Slope: 0.04},
				{Min: 5, Max: 15, BaseValue: 0.5, Slope: 0.03},
			},
			wantErr: true,
		},
		{
			name:    "inverted tier",
			tiers:   []Tier{{Min: 10, Max: 5, BaseValue: 0, Slope: 0.1}},
			wantErr: true,
		},
		{name: "empty", tiers: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSteps(t *testing.T) {
	assert.NoError(t, ValidateSteps([]Step{
		{Threshold: 12, Value: 1},
		{Threshold: 9, Value: 0.85},
		{Threshold: 0, Value: 0.1},
	}))
	assert.Error(t, ValidateSteps(nil))
	assert.Error(t, ValidateSteps([]Step{
		{Threshold: 9, Value: 0.85},
		{Threshold: 12, Value: 1},
	}))
	assert.Error(t, ValidateSteps([]Step{
		{Threshold: 12, Value: 0.5},
		{Threshold: 9, Value: 0.85},
	}))
}
