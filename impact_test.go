package signalscan

import "testing"

func TestClassifyImpactBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  ImpactLevel
	}{
		{-10, ImpactHighRisk},
		{-2.01, ImpactHighRisk},
		{-2, ImpactHighRisk},
		{-1.99, ImpactRisk},
		{-0.3, ImpactRisk},
		{-0.29, ImpactNeutral},
		{0, ImpactNeutral},
		{0.5, ImpactNeutral},
		{0.51, ImpactOpportunity},
		{2, ImpactOpportunity},
		{2.01, ImpactHighOpportunity},
		{10, ImpactHighOpportunity},
	}

	for _, tc := range cases {
		got, level := ClassifyImpact(tc.score, 0)
		if got != tc.score {
			t.Fatalf("impact score for %v = %v", tc.score, got)
		}
		if level != tc.want {
			t.Fatalf("ClassifyImpact(%v) level = %q, want %q", tc.score, level, tc.want)
		}
	}
}

func TestClassifyImpactSumsAndClamps(t *testing.T) {
	score, level := ClassifyImpact(-0.8, -9.5)
	if score != -10 {
		t.Fatalf("score = %v, want clamp at -10", score)
	}
	if level != ImpactHighRisk {
		t.Fatalf("level = %q", level)
	}

	score, level = ClassifyImpact(0.9, 9.8)
	if score != 10 {
		t.Fatalf("score = %v, want clamp at 10", score)
	}
	if level != ImpactHighOpportunity {
		t.Fatalf("level = %q", level)
	}
}

func TestClassifyImpactEveryScoreHasBucket(t *testing.T) {
	// Walk the full range in small steps; every value lands in exactly one
	// bucket because the bounds partition [-10, 10].
	for s := -10.0; s <= 10.0; s += 0.1 {
		_, level := ClassifyImpact(s, 0)
		if level == "" {
			t.Fatalf("no bucket for %v", s)
		}
	}
}
