package signalscan

import "strings"

// Tagger assigns operational category tags from the configured keyword table.
type Tagger struct {
	categories []Category
}

// NewTagger wraps the ordered category table.
func NewTagger(categories []Category) *Tagger {
	return &Tagger{categories: categories}
}

// Tags returns the comma-joined matched categories in table order, or
// "general" when nothing matches. Within a category the first matching
// keyword short-circuits the rest; a category is never tagged twice.
func (t *Tagger) Tags(text string) string {
	text = strings.ToLower(text)

	var tags []string
	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, cat.Name)
				break
			}
		}
	}
	if len(tags) == 0 {
		return "general"
	}
	return strings.Join(tags, ", ")
}
