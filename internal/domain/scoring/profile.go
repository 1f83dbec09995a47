package scoring

// ModelFamily distinguishes the two structurally different score-combination
// models.  The additive family handles missing optional data by weight
// redistribution; the multiplicative family by default substitution with
// floored factors.  The two philosophies are deliberately kept separate so
// each generation stays reproducible against its own exports.
type ModelFamily string

const (
	FamilyAdditive       ModelFamily = "additive"
	FamilyMultiplicative ModelFamily = "multiplicative"
)

// AdditiveProfile is a flat field→weight map evaluated as a weighted sum.
// Always-present metrics contribute unconditionally; optional metrics
// contribute only when their raw value is present, and the weight
// denominator sums only contributed weights.
type AdditiveProfile struct {
	ID      string
	Weights map[Field]float64
}

// MetricWeight binds one metric into a Factor: its weight, its
// normalization rule, and the default raw value substituted when the metric
// is absent (multiplicative model only; the zero value means "substitute 0").
type MetricWeight struct {
	Field   Field
	Weight  float64
	Norm    Spec
	Default float64
}

// Factor is a named, weighted sub-group of metrics within a multiplicative
// profile.  Its computed score is floored at Floor before multiplication so
// one weak dimension cannot zero the whole score.
type Factor struct {
	Name    string
	Floor   float64
	Metrics []MetricWeight
}

// MultiplicativeProfile is an ordered list of Factors combined by product.
// The final score collapses toward the weakest dimension, in deliberate
// contrast to the additive model where weak dimensions are diluted by
// averaging.
type MultiplicativeProfile struct {
	ID      string
	Factors []Factor
}
