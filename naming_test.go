package signalscan

import (
	"strings"
	"testing"
)

func TestNameClustersTopTerms(t *testing.T) {
	corpus := map[int]string{
		0: "flood flood flood rain rain warning",
	}
	got := NameClusters(corpus, testStopwords())

	name := got[0]
	parts := strings.Split(name, ", ")
	if len(parts) != 3 {
		t.Fatalf("name = %q, want three terms", name)
	}
	if parts[0] != "Flood" {
		t.Fatalf("dominant term = %q, want %q", parts[0], "Flood")
	}
	if parts[1] != "Rain" || parts[2] != "Warning" {
		t.Fatalf("name = %q", name)
	}
}

func TestNameClustersTitleCased(t *testing.T) {
	got := NameClusters(map[int]string{0: "cyclone"}, testStopwords())
	if got[0] != "Cyclone" {
		t.Fatalf("name = %q, want %q", got[0], "Cyclone")
	}
}

func TestNameClustersFewerThanThreeTerms(t *testing.T) {
	got := NameClusters(map[int]string{0: "flood rain"}, testStopwords())
	if got[0] != "Flood, Rain" && got[0] != "Rain, Flood" {
		t.Fatalf("name = %q", got[0])
	}
}

func TestNameClustersDistinctiveTermsWinTies(t *testing.T) {
	// "shared" appears in both documents so its idf is lower; each
	// cluster's unique term outranks it at equal term frequency.
	corpus := map[int]string{
		0: "shared flood",
		1: "shared cricket",
	}
	got := NameClusters(corpus, testStopwords())

	if !strings.HasPrefix(got[0], "Flood") {
		t.Fatalf("cluster 0 name = %q, want Flood first", got[0])
	}
	if !strings.HasPrefix(got[1], "Cricket") {
		t.Fatalf("cluster 1 name = %q, want Cricket first", got[1])
	}
}

func TestNameClustersStopwordsExcluded(t *testing.T) {
	got := NameClusters(map[int]string{0: "the the the flood"}, testStopwords("the"))
	if got[0] != "Flood" {
		t.Fatalf("name = %q, want %q", got[0], "Flood")
	}
}

func TestNameClustersEmptyTextFallback(t *testing.T) {
	got := NameClusters(map[int]string{2: ""}, testStopwords())
	if got[2] != "Cluster 2" {
		t.Fatalf("name = %q, want %q", got[2], "Cluster 2")
	}
}

func TestNameClustersEmptyCorpus(t *testing.T) {
	if got := NameClusters(nil, testStopwords()); len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}
