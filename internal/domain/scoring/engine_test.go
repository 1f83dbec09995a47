package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullMetrics returns a MetricSet with every rated metric present.
func fullMetrics() MetricSet {
	m := MetricSet{
		CompetitorCitations: 12,
		ForwardCitations:    80,
		YearsRemaining:      10,
		CompetitorCount:     4,
		Ratings:             map[Field]float64{},
	}
	for _, f := range RatingFields() {
		m.SetRating(f, 4)
	}
	return m
}

func TestAdditiveBaseRedistributesMissingWeight(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Additive("moderate")
	require.NoError(t, err)

	full := fullMetrics()
	fullScore := AdditiveBase(full, p, UncappedCitations)

	// Drop every rated metric: only the quantitative metrics remain, and
	// their weight is renormalized, so the score stays on the 0..100 scale.
	sparse := full
	sparse.Ratings = map[Field]float64{}
	sparseScore := AdditiveBase(sparse, p, UncappedCitations)

	assert.Greater(t, fullScore, 0.0)
	assert.Greater(t, sparseScore, 0.0)
	assert.LessOrEqual(t, fullScore, 100.0)
	assert.LessOrEqual(t, sparseScore, 100.0)

	// With redistribution the sparse score equals the weighted mean of the
	// quantitative normalizations alone.
	wantSum, wantWeight := 0.0, 0.0
	for _, f := range AlwaysPresentFields() {
		spec, ok := AdditiveNorm(f)
		require.True(t, ok)
		v, _ := sparse.Value(f)
		wantSum += p.Weights[f] * Normalize(v, spec)
		wantWeight += p.Weights[f]
	}
	assert.InDelta(t, 100*wantSum/wantWeight, sparseScore, 1e-9)
}

func TestEvaluateAdditiveAppliesYearMultiplier(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Additive("aggressive")
	require.NoError(t, err)

	m := fullMetrics()

	m.YearsRemaining = 15
	assert.InDelta(t, AdditiveBase(m, p, UncappedCitations), EvaluateAdditive(m, p, UncappedCitations), 1e-9)

	m.YearsRemaining = 0
	assert.Equal(t, 0.0, EvaluateAdditive(m, p, UncappedCitations))

	m.YearsRemaining = 6
	want := AdditiveBase(m, p, UncappedCitations) * YearMultiplier(6)
	assert.InDelta(t, want, EvaluateAdditive(m, p, UncappedCitations), 1e-9)
}

func TestEvaluateAdditiveFamilyUnifiedIsMean(t *testing.T) {
	reg := NewRegistry()
	m := fullMetrics()

	scores := EvaluateAdditiveFamily(m, reg, UncappedCitations)
	require.Contains(t, scores, UnifiedProfile)

	sum := 0.0
	for _, id := range reg.IDs(FamilyAdditive) {
		require.Contains(t, scores, id)
		sum += scores[id]
	}
	assert.InDelta(t, sum/3, scores[UnifiedProfile], 1e-9)
}

func TestEvaluateMultiplicativeUsesDefaultsWhenAbsent(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Multiplicative("executive")
	require.NoError(t, err)

	m := fullMetrics()
	m.Ratings = map[Field]float64{} // all rated metrics absent

	score, factors := EvaluateMultiplicative(m, p, UncappedCitations)
	require.Len(t, factors, 4)

	// Default substitution keeps every factor above its floor, so the
	// product stays positive even with no rated metrics at all.
	assert.Greater(t, score, 0.0)
	for _, fs := range factors {
		assert.Greater(t, fs.Score, 0.0, "factor %s", fs.Name)
	}

	// PortfolioQuality is pure score5 metrics with default 3.0 each:
	// normalized 0.5, above the 0.22 floor.
	var pq float64
	for _, fs := range factors {
		if fs.Name == "PortfolioQuality" {
			pq = fs.Score
		}
	}
	assert.InDelta(t, 0.5, pq, 1e-9)
}

func TestEvaluateMultiplicativeFloorsFactors(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Multiplicative("executive")
	require.NoError(t, err)

	// Zero everything: every factor falls to its floor, except those whose
	// defaults already exceed it.
	m := MetricSet{Ratings: map[Field]float64{}}
	for _, f := range RatingFields() {
		m.SetRating(f, 1) // normalizes to 0 under score5
	}

	_, factors := EvaluateMultiplicative(m, p, UncappedCitations)
	floors := map[string]float64{}
	for _, f := range p.Factors {
		floors[f.Name] = f.Floor
	}
	for _, fs := range factors {
		assert.GreaterOrEqual(t, fs.Score, floors[fs.Name], "factor %s", fs.Name)
	}

	// AssetLongevity with 0 years hits the lowest step (0.12), still below
	// no floor (0.18 applies).
	for _, fs := range factors {
		if fs.Name == "AssetLongevity" {
			assert.InDelta(t, 0.18, fs.Score, 1e-9)
		}
	}
}

func TestEvaluateMultiplicativeIsProductTimesHundred(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Multiplicative("licensing")
	require.NoError(t, err)

	m := fullMetrics()
	score, factors := EvaluateMultiplicative(m, p, UncappedCitations)

	product := 1.0
	for _, fs := range factors {
		product *= fs.Score
	}
	assert.InDelta(t, product*100, score, 1e-9)
}

func TestEvaluateMultiplicativeFamilyConsensusIsMean(t *testing.T) {
	reg := NewRegistry()
	m := fullMetrics()

	scores := EvaluateMultiplicativeFamily(m, reg, UncappedCitations)
	require.Contains(t, scores, ConsensusProfile)

	family := reg.IDs(FamilyMultiplicative)
	require.Len(t, family, 6)
	sum := 0.0
	for _, id := range family {
		sum += scores[id]
	}
	assert.InDelta(t, sum/6, scores[ConsensusProfile], 1e-9)
}

func TestCitationCap(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.Additive("aggressive")
	require.NoError(t, err)

	m := fullMetrics()
	m.CompetitorCitations = 400

	// The additive citation normalization saturates at 50, so the cap only
	// bites below that.
	capped := EvaluateAdditive(m, p, 25)
	uncapped := EvaluateAdditive(m, p, UncappedCitations)
	assert.Less(t, capped, uncapped)

	// Cap above the raw value changes nothing.
	assert.Equal(t, uncapped, EvaluateAdditive(m, p, 1000))
}

func TestEvaluateCurrentExecutive(t *testing.T) {
	m := MetricSet{
		CompetitorCitations: 10,
		ForwardCitations:    900,
		YearsRemaining:      15,
		CompetitorCount:     5,
		Ratings:             map[Field]float64{},
	}

	// Quantitative metrics only: base is the renormalized weighted mean of
	// the four fixed-denominator normalizations.
	ccNorm := 10.0 / 20.0
	fcNorm := math.Sqrt(900) / 30.0
	yrNorm := 1.0
	cntNorm := 1.0
	base := (0.25*ccNorm + 0.13*fcNorm + 0.17*yrNorm + 0.08*cntNorm) / (0.25 + 0.13 + 0.17 + 0.08)
	want := math.Round(base*1.0*100*100) / 100
	assert.Equal(t, want, EvaluateCurrentExecutive(m, UncappedCitations))
}

func TestEvaluateCurrentExecutiveSoftenedYearMultiplier(t *testing.T) {
	m := MetricSet{
		CompetitorCitations: 10,
		ForwardCitations:    100,
		YearsRemaining:      0,
		CompetitorCount:     3,
		Ratings:             map[Field]float64{},
	}

	// Expired assets keep 30% of their base score instead of zeroing.
	score := EvaluateCurrentExecutive(m, UncappedCitations)
	assert.Greater(t, score, 0.0)

	m.YearsRemaining = 15
	fullLife := EvaluateCurrentExecutive(m, UncappedCitations)
	assert.Greater(t, fullLife, score)
}

func TestEvaluateCurrentExecutiveIgnoresOutOfRangeRatings(t *testing.T) {
	m := MetricSet{
		CompetitorCitations: 8,
		ForwardCitations:    50,
		YearsRemaining:      10,
		CompetitorCount:     2,
		Ratings:             map[Field]float64{},
	}
	without := EvaluateCurrentExecutive(m, UncappedCitations)

	// A rating outside 1..5 is treated as absent.
	m.SetRating(FieldEligibility, 0)
	assert.Equal(t, without, EvaluateCurrentExecutive(m, UncappedCitations))
	m.SetRating(FieldEligibility, 6)
	assert.Equal(t, without, EvaluateCurrentExecutive(m, UncappedCitations))

	// An in-range rating changes the score.
	m.SetRating(FieldEligibility, 5)
	assert.NotEqual(t, without, EvaluateCurrentExecutive(m, UncappedCitations))
}

func TestFamilyMean(t *testing.T) {
	scores := map[string]float64{"a": 10, "b": 20, "c": 30}
	assert.InDelta(t, 20, FamilyMean(scores, []string{"a", "b", "c"}), 1e-12)
	// Missing profiles count as zero but keep the denominator.
	assert.InDelta(t, 10, FamilyMean(scores, []string{"a", "b", "missing"}), 1e-12)
	assert.Equal(t, 0.0, FamilyMean(scores, nil))
}
