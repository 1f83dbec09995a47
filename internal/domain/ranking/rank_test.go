package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSortsDescendingStably(t *testing.T) {
	entries := []Entry{
		{ID: "a", Score: 10},
		{ID: "b", Score: 30},
		{ID: "c", Score: 20},
		{ID: "d", Score: 20},
	}
	ranked := Rank(entries)

	assert.Equal(t, []string{"b", "c", "d", "a"}, IDs(ranked))
	// Ties keep input order.
	assert.Equal(t, "c", ranked[1].ID)
	// Input untouched.
	assert.Equal(t, "a", entries[0].ID)
}

func TestScores(t *testing.T) {
	ranked := Rank([]Entry{{ID: "x", Score: 5}, {ID: "y", Score: 9}})
	assert.Equal(t, []float64{9, 5}, Scores(ranked))
}

func TestOverlapAtCutoff(t *testing.T) {
	a := []string{"p1", "p2", "p3", "p4", "p5"}
	b := []string{"p3", "p1", "p9", "p8", "p2"}

	overlap, cutoff := OverlapAtCutoff(a, b, 3)
	assert.Equal(t, 3, cutoff)
	assert.Equal(t, 2, overlap) // {p1, p3}

	// Identical lists overlap fully.
	overlap, cutoff = OverlapAtCutoff(a, a, 5)
	assert.Equal(t, 5, cutoff)
	assert.Equal(t, 5, overlap)

	// Cutoff shrinks to the shorter list.
	overlap, cutoff = OverlapAtCutoff(a, []string{"p5"}, 100)
	assert.Equal(t, 1, cutoff)
	assert.Equal(t, 1, overlap)

	// Overlap never exceeds the cutoff.
	overlap, cutoff = OverlapAtCutoff(a, b, 5)
	assert.LessOrEqual(t, overlap, cutoff)
}

func TestSpearman(t *testing.T) {
	// Perfect agreement.
	ranks := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, Spearman(ranks, ranks), 1e-12)

	// Perfect reversal.
	reversed := []float64{5, 4, 3, 2, 1}
	assert.InDelta(t, -1.0, Spearman(ranks, reversed), 1e-12)

	// Degenerate inputs.
	assert.Equal(t, 0.0, Spearman(nil, nil))
	assert.Equal(t, 0.0, Spearman([]float64{1}, []float64{1}))
	assert.Equal(t, 0.0, Spearman([]float64{1, 2}, []float64{1}))
}

func TestDistributionSummary(t *testing.T) {
	scores := make([]float64, 400)
	for i := range scores {
		scores[i] = float64(400 - i) // 400 down to 1
	}

	s := DistributionSummary(scores, 500)
	require.Equal(t, 400, s.N)
	assert.Equal(t, 400.0, s.Max)
	assert.Equal(t, 1.0, s.Min)
	assert.True(t, s.HasP10)
	assert.Equal(t, 351.0, s.P10) // index 49
	assert.True(t, s.HasP50)
	assert.Equal(t, 151.0, s.P50) // index 249
	assert.InDelta(t, 200.5, s.Mean, 1e-9)
}

func TestDistributionSummaryShortLists(t *testing.T) {
	s := DistributionSummary([]float64{9, 7, 3}, 500)
	require.Equal(t, 3, s.N)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 3.0, s.Min)
	assert.False(t, s.HasP10)
	assert.False(t, s.HasP50)

	s = DistributionSummary(nil, 500)
	assert.Equal(t, 0, s.N)
}

func TestDistributionSummaryTruncatesToN(t *testing.T) {
	scores := make([]float64, 800)
	for i := range scores {
		scores[i] = float64(800 - i)
	}
	s := DistributionSummary(scores, 500)
	require.Equal(t, 500, s.N)
	assert.Equal(t, 800.0, s.Max)
	assert.Equal(t, 301.0, s.Min) // scores[499]
}

func TestPercentileAtIndex(t *testing.T) {
	scores := []float64{50, 40, 30, 20, 10}

	v, ok := PercentileAtIndex(scores, 2)
	require.True(t, ok)
	assert.Equal(t, 30.0, v)

	_, ok = PercentileAtIndex(scores, 10)
	assert.False(t, ok)
	_, ok = PercentileAtIndex(nil, 0)
	assert.False(t, ok)
}
