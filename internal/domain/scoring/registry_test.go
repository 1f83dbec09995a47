package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grasslabel/ipscore/pkg/errors"
)

func TestRegistryCatalogIsWellFormed(t *testing.T) {
	reg := NewRegistry()

	// Every stepped and tiered spec in the catalog must validate.
	for _, p := range reg.MultiplicativeProfiles() {
		for _, f := range p.Factors {
			require.NotEmpty(t, f.Metrics, "profile %s factor %s has no metrics", p.ID, f.Name)
			assert.GreaterOrEqual(t, f.Floor, 0.0, "profile %s factor %s", p.ID, f.Name)
			assert.Less(t, f.Floor, 1.0, "profile %s factor %s", p.ID, f.Name)

			for _, mw := range f.Metrics {
				switch mw.Norm.Kind {
				case SpecStepped:
					assert.NoError(t, ValidateSteps(mw.Norm.Steps),
						"profile %s factor %s metric %s", p.ID, f.Name, mw.Field)
				case SpecTiered:
					assert.NoError(t, ValidateTiers(mw.Norm.Tiers),
						"profile %s factor %s metric %s", p.ID, f.Name, mw.Field)
				}
				assert.Greater(t, mw.Weight, 0.0,
					"profile %s factor %s metric %s", p.ID, f.Name, mw.Field)
			}
		}
	}
}

func TestRegistryAdditiveWeightsSumToOne(t *testing.T) {
	reg := NewRegistry()

	profiles := reg.AdditiveProfiles()
	require.Len(t, profiles, 3)
	for _, p := range profiles {
		sum := 0.0
		for _, w := range p.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "profile %s", p.ID)
	}
}

func TestRegistryFactorWeightsSumToOne(t *testing.T) {
	reg := NewRegistry()

	for _, p := range reg.MultiplicativeProfiles() {
		for _, f := range p.Factors {
			sum := 0.0
			for _, mw := range f.Metrics {
				sum += mw.Weight
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "profile %s factor %s", p.ID, f.Name)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	p, err := reg.Additive("moderate")
	require.NoError(t, err)
	assert.Equal(t, "moderate", p.ID)

	mp, err := reg.Multiplicative("executive")
	require.NoError(t, err)
	assert.Equal(t, "executive", mp.ID)
	assert.Len(t, mp.Factors, 4)

	_, err = reg.Additive("no-such-profile")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileNotFound))

	_, err = reg.Multiplicative("moderate")
	assert.Error(t, err)
}

func TestRegistryIDs(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, []string{"aggressive", "moderate", "conservative"}, reg.IDs(FamilyAdditive))
	assert.Equal(t, []string{
		"ip-lit-aggressive", "ip-lit-balanced", "ip-lit-conservative",
		"licensing", "corporate-ma", "executive",
	}, reg.IDs(FamilyMultiplicative))
}

func TestAdditiveNorm(t *testing.T) {
	spec, ok := AdditiveNorm(FieldCompetitorCitations)
	require.True(t, ok)
	assert.Equal(t, SpecSqrt, spec.Kind)
	assert.Equal(t, 50.0, spec.Max)

	spec, ok = AdditiveNorm(FieldYearsRemaining)
	require.True(t, ok)
	assert.Equal(t, SpecYearsCurve, spec.Kind)

	for _, f := range RatingFields() {
		spec, ok = AdditiveNorm(f)
		require.True(t, ok, "field %s", f)
		assert.Equal(t, SpecRatingOverFive, spec.Kind, "field %s", f)
	}

	_, ok = AdditiveNorm(Field("bogus"))
	assert.False(t, ok)
}
