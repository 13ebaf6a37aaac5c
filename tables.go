package signalscan

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/lexicon.yaml config/categories.yaml config/stopwords.yaml config/feeds.yaml
var defaultTables embed.FS

// Feed is one registered news source.
type Feed struct {
	Name     string  `yaml:"name"`
	URL      string  `yaml:"url"`
	Priority float64 `yaml:"priority"`
}

// Category maps an operational category to its trigger keywords.
// Categories are matched in table order, so this is a list, not a map.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds all static configuration data consumed by the pipeline.
type Tables struct {
	Lexicon    map[string]int
	Categories []Category
	Stopwords  map[string]struct{}
	Feeds      []Feed
}

// LoadTables reads the configuration tables from dir, falling back to the
// embedded defaults for any file that is missing. An empty dir loads only
// the embedded defaults.
func LoadTables(dir string) (*Tables, error) {
	t := &Tables{}

	var rawLexicon map[string]int
	if err := loadTable(dir, "lexicon.yaml", &rawLexicon); err != nil {
		return nil, err
	}
	// Lexicon keys are authored with underscores; matching happens on
	// cleaned text, so normalize them to spaces once at load time.
	t.Lexicon = make(map[string]int, len(rawLexicon))
	for k, v := range rawLexicon {
		t.Lexicon[strings.ReplaceAll(k, "_", " ")] = v
	}

	if err := loadTable(dir, "categories.yaml", &t.Categories); err != nil {
		return nil, err
	}

	var stopwords []string
	if err := loadTable(dir, "stopwords.yaml", &stopwords); err != nil {
		return nil, err
	}
	t.Stopwords = make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		t.Stopwords[w] = struct{}{}
	}

	if err := loadTable(dir, "feeds.yaml", &t.Feeds); err != nil {
		return nil, err
	}

	return t, nil
}

// loadTable unmarshals one YAML table, preferring an on-disk override.
func loadTable(dir, name string, out any) error {
	var data []byte
	var err error

	if dir != "" {
		path := filepath.Join(dir, name)
		data, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read table %s: %w", path, err)
		}
	}
	if data == nil {
		data, err = defaultTables.ReadFile("config/" + name)
		if err != nil {
			return fmt.Errorf("failed to read embedded table %s: %w", name, err)
		}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse table %s: %w", name, err)
	}
	return nil
}
