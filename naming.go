package signalscan

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	// maxVocabulary caps the tf-idf feature count across the per-cluster corpus.
	maxVocabulary = 100
	// nameTerms is how many top-weighted terms form a cluster name.
	nameTerms = 3
)

// NameClusters derives a short human-readable label for each cluster from
// tf-idf weights over the per-cluster concatenated texts. The top terms are
// title-cased and joined with ", ". A cluster whose text yields no scored
// terms falls back to "Cluster <id>".
func NameClusters(corpus map[int]string, stopwords map[string]struct{}) map[int]string {
	names := make(map[int]string, len(corpus))
	if len(corpus) == 0 {
		return names
	}

	// Per-document term counts, stopwords excluded.
	docTerms := make(map[int]map[string]int, len(corpus))
	totals := make(map[string]int)
	for cid, text := range corpus {
		counts := make(map[string]int)
		for _, w := range strings.Fields(text) {
			if _, stop := stopwords[w]; stop {
				continue
			}
			counts[w]++
			totals[w]++
		}
		docTerms[cid] = counts
	}

	vocab := topVocabulary(totals, maxVocabulary)

	// Document frequency over the bounded vocabulary.
	df := make(map[string]int, len(vocab))
	for _, counts := range docTerms {
		for term := range vocab {
			if counts[term] > 0 {
				df[term]++
			}
		}
	}

	n := float64(len(corpus))
	for cid, counts := range docTerms {
		type weighted struct {
			term   string
			weight float64
		}
		var scored []weighted
		for term := range vocab {
			tf := counts[term]
			if tf == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			scored = append(scored, weighted{term: term, weight: float64(tf) * idf})
		}

		if len(scored) == 0 {
			names[cid] = fmt.Sprintf("Cluster %d", cid)
			continue
		}

		sort.Slice(scored, func(i, j int) bool {
			if scored[i].weight != scored[j].weight {
				return scored[i].weight > scored[j].weight
			}
			return scored[i].term < scored[j].term
		})
		if len(scored) > nameTerms {
			scored = scored[:nameTerms]
		}

		parts := make([]string, len(scored))
		for i, s := range scored {
			parts[i] = titleCase(s.term)
		}
		names[cid] = strings.Join(parts, ", ")
	}

	return names
}

// topVocabulary keeps the terms with the highest corpus-wide counts,
// breaking ties alphabetically.
func topVocabulary(totals map[string]int, limit int) map[string]struct{} {
	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		vocab[t] = struct{}{}
	}
	return vocab
}

// titleCase capitalizes the first letter of a cleaned token.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
