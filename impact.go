package signalscan

// ImpactLevel buckets the composite impact score.
type ImpactLevel string

const (
	ImpactHighRisk        ImpactLevel = "High Risk"
	ImpactRisk            ImpactLevel = "Risk"
	ImpactNeutral         ImpactLevel = "Neutral"
	ImpactOpportunity     ImpactLevel = "Opportunity"
	ImpactHighOpportunity ImpactLevel = "High Opportunity"
)

// ClassifyImpact combines the general sentiment and domain lexicon scores
// into a composite impact score clamped to [-10, 10] and its bucket.
// Bucket bounds are left-exclusive, right-inclusive:
// (-12,-2] (-2,-0.3] (-0.3,0.5] (0.5,2] (2,12].
func ClassifyImpact(sentiment, lexicon float64) (float64, ImpactLevel) {
	score := clamp(sentiment+lexicon, -10, 10)

	var level ImpactLevel
	switch {
	case score <= -2:
		level = ImpactHighRisk
	case score <= -0.3:
		level = ImpactRisk
	case score <= 0.5:
		level = ImpactNeutral
	case score <= 2:
		level = ImpactOpportunity
	default:
		level = ImpactHighOpportunity
	}
	return score, level
}
