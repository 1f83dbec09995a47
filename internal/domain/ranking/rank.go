// Package ranking provides stable score-ordered ranking of patent
// populations and the statistics used to compare two rankings: top-k
// overlap, Spearman rank correlation, and score distribution summaries.
package ranking

import "sort"

// Entry pairs an item id with the score used for ordering.
type Entry struct {
	ID    string
	Score float64
}

// Rank returns a copy of entries sorted by descending score.  The sort is
// stable: entries with equal scores preserve their relative input order.
func Rank(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// IDs projects a ranked entry slice to its id list.
func IDs(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// Scores projects a ranked entry slice to its score list.
func Scores(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

// OverlapAtCutoff returns the size of the intersection of the top-k id sets
// of the two rankings, together with the cutoff actually used
// (min of k and both list lengths).  The overlap can never exceed the
// returned cutoff.
func OverlapAtCutoff(a, b []string, k int) (overlap, cutoff int) {
	cutoff = k
	if len(a) < cutoff {
		cutoff = len(a)
	}
	if len(b) < cutoff {
		cutoff = len(b)
	}
	if cutoff <= 0 {
		return 0, 0
	}

	topA := make(map[string]struct{}, cutoff)
	for _, id := range a[:cutoff] {
		topA[id] = struct{}{}
	}
	for _, id := range b[:cutoff] {
		if _, ok := topA[id]; ok {
			overlap++
		}
	}
	return overlap, cutoff
}

// Spearman computes the Spearman rank correlation coefficient
// 1 − 6·Σd²/(n·(n²−1)) over two equal-length rank-position vectors.
// Returns 0 when the vectors are shorter than two elements or of unequal
// length.
func Spearman(ranksA, ranksB []float64) float64 {
	n := len(ranksA)
	if n < 2 || n != len(ranksB) {
		return 0
	}
	dSq := 0.0
	for i := range ranksA {
		d := ranksA[i] - ranksB[i]
		dSq += d * d
	}
	fn := float64(n)
	return 1 - (6*dSq)/(fn*(fn*fn-1))
}

// Summary describes the score distribution of a top-n slice.
//
// P10 and P50 are fixed positional offsets (index 49 and index 249) tuned to
// the historical 500-item export slices, not true quantiles of
// arbitrary-length input.  They are kept positional for regression parity
// with the historical reports; HasP10/HasP50 report whether the slice was
// long enough to carry them.
type Summary struct {
	N    int
	Max  float64
	P10  float64
	P50  float64
	Min  float64
	Mean float64

	HasP10 bool
	HasP50 bool
}

// p10Index and p50Index are the fixed positions reported as "P10" and "P50"
// in a 500-item slice.
const (
	p10Index = 49
	p50Index = 249
)

// DistributionSummary summarizes the top-n slice of an already
// descending-sorted score list.  When fewer than n scores exist the whole
// list is used.
func DistributionSummary(sortedScores []float64, n int) Summary {
	top := sortedScores
	if len(top) > n {
		top = top[:n]
	}
	if len(top) == 0 {
		return Summary{}
	}

	s := Summary{
		N:   len(top),
		Max: top[0],
		Min: top[len(top)-1],
	}
	if v, ok := PercentileAtIndex(top, p10Index); ok {
		s.P10, s.HasP10 = v, true
	}
	if v, ok := PercentileAtIndex(top, p50Index); ok {
		s.P50, s.HasP50 = v, true
	}

	sum := 0.0
	for _, v := range top {
		sum += v
	}
	s.Mean = sum / float64(len(top))
	return s
}

// PercentileAtIndex returns the score at the given position of a sorted
// slice and whether the slice is long enough to carry it.
func PercentileAtIndex(sortedScores []float64, targetIndex int) (float64, bool) {
	if targetIndex < 0 || targetIndex >= len(sortedScores) {
		return 0, false
	}
	return sortedScores[targetIndex], true
}
