package signalscan

import (
	"math"
	"testing"
)

func TestLexiconScoreNegativeWords(t *testing.T) {
	lex := NewLexicon(map[string]int{
		"flood":   -3,
		"warning": -1,
	})

	// Two negative single tokens, each weighted 1.5x.
	got := lex.Score("flood warning issued")
	if got != -6.0 {
		t.Fatalf("Score = %v, want -6.0", got)
	}
}

func TestLexiconScorePositiveWordsNotBoosted(t *testing.T) {
	lex := NewLexicon(map[string]int{"growth": 2})
	if got := lex.Score("economic growth"); got != 2.0 {
		t.Fatalf("Score = %v, want 2.0", got)
	}
}

func TestLexiconScorePhraseAndWordOverlap(t *testing.T) {
	lex := NewLexicon(map[string]int{
		"flood warning": -2,
		"flood":         -3,
		"warning":       -1,
	})

	// The phrase counts double and its component words still count on
	// their own: (-2*2) + (-3*1.5) + (-1*1.5) = -10.
	if got := lex.Score("flood warning issued"); got != -10.0 {
		t.Fatalf("Score = %v, want -10.0", got)
	}
}

func TestLexiconScorePhraseSubstringMatch(t *testing.T) {
	lex := NewLexicon(map[string]int{"power cut": -2})
	if got := lex.Score("island wide power cuts reported"); got != -4.0 {
		t.Fatalf("Score = %v, want -4.0 (phrase matches inside a longer token run)", got)
	}
}

func TestLexiconScoreClamped(t *testing.T) {
	lex := NewLexicon(map[string]int{"disaster": -8})
	got := lex.Score("disaster disaster disaster")
	if got != -10.0 {
		t.Fatalf("Score = %v, want clamp at -10.0", got)
	}

	lex = NewLexicon(map[string]int{"boom": 8})
	if got := lex.Score("boom boom boom"); got != 10.0 {
		t.Fatalf("Score = %v, want clamp at 10.0", got)
	}
}

func TestLexiconScoreUnknownText(t *testing.T) {
	lex := NewLexicon(map[string]int{"flood": -3})
	if got := lex.Score("sunny day at the beach"); got != 0.0 {
		t.Fatalf("Score = %v, want 0.0", got)
	}
	if got := lex.Score(""); got != 0.0 {
		t.Fatalf("Score of empty = %v, want 0.0", got)
	}
}

func TestLexiconScoreEmbeddedDefaults(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	lex := NewLexicon(tables.Lexicon)

	if got := lex.Score("flood warning issued"); !(got < 0) {
		t.Fatalf("expected a negative score from the default lexicon, got %v", got)
	}
	if got := lex.Score("tourism growth expected"); !(got > 0) {
		t.Fatalf("expected a positive score from the default lexicon, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp(-15, -10, 10) != -10 || clamp(15, -10, 10) != 10 {
		t.Fatal("clamp bounds wrong")
	}
	if v := clamp(3.5, -10, 10); math.Abs(v-3.5) > 1e-12 {
		t.Fatalf("clamp changed in-range value: %v", v)
	}
}
