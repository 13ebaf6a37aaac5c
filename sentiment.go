package signalscan

import "github.com/jonreiter/govader"

// SentimentScorer returns a general-purpose compound polarity score in
// [-1, 1] for cleaned text, independent of the domain lexicon.
type SentimentScorer interface {
	Compound(text string) float64
}

// VaderScorer scores text with the VADER sentiment model.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds the default sentiment scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound score, 0.0 for unscorable input.
func (v *VaderScorer) Compound(text string) float64 {
	if text == "" {
		return 0.0
	}
	return v.analyzer.PolarityScores(text).Compound
}
