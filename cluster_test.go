package signalscan

import "testing"

func TestAssignClustersSmallInputs(t *testing.T) {
	if got := AssignClusters(nil); len(got) != 0 {
		t.Fatalf("empty input: %v", got)
	}
	got := AssignClusters([][]float64{{0.1, 0.9}})
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("single vector: %v, want [0]", got)
	}
}

func TestAssignClustersBounds(t *testing.T) {
	vectors := [][]float64{
		{1, 0}, {0.9, 0.1}, {0, 1}, {0.1, 0.9}, {0.5, 0.5},
		{0.7, 0.3}, {0.3, 0.7}, {0.95, 0.05},
	}
	got := AssignClusters(vectors)
	if len(got) != len(vectors) {
		t.Fatalf("got %d assignments for %d vectors", len(got), len(vectors))
	}
	for i, c := range got {
		if c < 0 || c >= maxClusters {
			t.Fatalf("assignment %d out of range: %d", i, c)
		}
	}
}

func TestAssignClustersFewerVectorsThanMax(t *testing.T) {
	// k is capped at n, so three vectors use at most three clusters.
	vectors := [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}}
	got := AssignClusters(vectors)
	for i, c := range got {
		if c < 0 || c >= len(vectors) {
			t.Fatalf("assignment %d out of range: %d", i, c)
		}
	}
}

func TestKmeansSeparatesDirections(t *testing.T) {
	// Two tight angular groups; cosine distance should keep each together.
	vectors := [][]float64{
		{1, 0.01}, {1, 0.02}, {0.99, 0.01},
		{0.01, 1}, {0.02, 1}, {0.01, 0.99},
	}
	got := kmeans(vectors, 2, clusterSeed)

	if got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("first group split: %v", got)
	}
	if got[3] != got[4] || got[4] != got[5] {
		t.Fatalf("second group split: %v", got)
	}
	if got[0] == got[3] {
		t.Fatalf("groups merged: %v", got)
	}
}

func TestAssignClustersDeterministic(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0}, {0.9, 0.1, 0}, {0, 1, 0}, {0, 0.9, 0.1},
		{0, 0, 1}, {0.1, 0, 0.9}, {0.5, 0.5, 0}, {0, 0.5, 0.5},
	}
	first := AssignClusters(vectors)
	second := AssignClusters(vectors)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("assignment %d differs between runs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float64{1, 0}, []float64{1, 0}); got < 0.999 {
		t.Fatalf("identical vectors: %v", got)
	}
	if got := cosineSimilarity([]float64{1, 0}, []float64{0, 1}); got > 0.001 {
		t.Fatalf("orthogonal vectors: %v", got)
	}
	if got := cosineSimilarity([]float64{0, 0}, []float64{1, 0}); got != 0 {
		t.Fatalf("zero vector: %v", got)
	}
}
