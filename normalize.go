package signalscan

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<.*?>`)
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
)

// NormalizedItem is a RawItem plus its cleaned text. Derived once, never
// mutated afterwards.
type NormalizedItem struct {
	RawItem
	Cleaned string
}

// StripHTML removes markup tags with a non-greedy tag match.
func StripHTML(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// CleanText lowercases, strips markup and punctuation, and drops stopwords.
// Total: unparseable input degrades to the empty string.
func CleanText(s string, stopwords map[string]struct{}) string {
	s = strings.ToLower(s)
	s = StripHTML(s)
	s = nonAlnumSpace.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, w := range fields {
		if _, stop := stopwords[w]; !stop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Normalize derives the cleaned text for every item. Title and Summary are
// also stripped of markup in place on the copy, matching the output schema.
func Normalize(items []RawItem, stopwords map[string]struct{}) []NormalizedItem {
	out := make([]NormalizedItem, 0, len(items))
	for _, it := range items {
		it.Title = StripHTML(it.Title)
		it.Summary = StripHTML(it.Summary)
		out = append(out, NormalizedItem{
			RawItem: it,
			Cleaned: CleanText(it.Title+" "+it.Summary, stopwords),
		})
	}
	return out
}
