package signalscan

import "strings"

// Lexicon scores cleaned text against the domain phrase/word weight table.
type Lexicon struct {
	weights map[string]int
}

// NewLexicon wraps a normalized (space-joined keys) weight table.
func NewLexicon(weights map[string]int) *Lexicon {
	return &Lexicon{weights: weights}
}

// Score computes the weighted lexicon score for cleaned text, clamped to
// [-10, 10]. Multi-word phrases found as substrings count double; single
// tokens count 1.5x when the weight is negative, 1x otherwise. A token that
// also ends a matched phrase contributes to both sums; the overlap is part
// of the scoring contract, not an accident to fix.
func (l *Lexicon) Score(text string) float64 {
	text = strings.ToLower(text)

	score := 0.0
	for phrase, weight := range l.weights {
		if strings.Contains(phrase, " ") && strings.Contains(text, phrase) {
			score += float64(weight) * 2
		}
	}

	for _, w := range strings.Fields(text) {
		weight, ok := l.weights[w]
		if !ok {
			continue
		}
		if weight < 0 {
			score += float64(weight) * 1.5
		} else {
			score += float64(weight)
		}
	}

	return clamp(score, -10, 10)
}

// clamp restricts v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
