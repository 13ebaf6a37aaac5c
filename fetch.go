package signalscan

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"
	"github.com/spf13/cobra"
)

// maxItemsPerFeed caps how many entries are taken from a single source per run.
const maxItemsPerFeed = 50

// RawItem represents one news item as gathered from a feed, before any
// processing. Immutable once handed to the pipeline.
type RawItem struct {
	Source         string  `json:"source"`
	Title          string  `json:"title"`
	Link           string  `json:"link"`
	Summary        string  `json:"summary"`
	Published      string  `json:"published"`
	SourcePriority float64 `json:"source_priority"`
}

// FetchCmd: Reads the feed registry, saves data/items.json
var FetchCmd = &cobra.Command{
	Use:   "fetch [source-name]",
	Short: "Fetch recent items from registered feeds",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tables, err := LoadTables(Config.TablesDir)
		if err != nil {
			log.Fatalf("Failed to load configuration tables: %v", err)
		}

		feeds := tables.Feeds
		if len(args) > 0 {
			name := args[0]
			found := false
			for _, f := range tables.Feeds {
				if strings.EqualFold(f.Name, name) {
					feeds = []Feed{f}
					found = true
					break
				}
			}
			if !found {
				log.Fatalf("Source '%s' not found. Available sources: %s", name, feedNames(tables.Feeds))
			}
		}

		items := FetchAll(feeds)
		if err := saveRawItems(items); err != nil {
			log.Fatalf("Failed to save items: %v", err)
		}
		log.Printf("Fetch complete. Saved %d items.", len(items))
	},
}

// FetchAll gathers raw items from every feed concurrently. A failing source
// is logged and skipped; it never aborts the run. The returned order is by
// feed registry position, entries in feed order within each source.
func FetchAll(feeds []Feed) []RawItem {
	var wg sync.WaitGroup
	var mu sync.Mutex
	perFeed := make([][]RawItem, len(feeds))

	log.Printf("Fetching %d feeds...", len(feeds))
	for i, f := range feeds {
		wg.Add(1)
		go func(idx int, feed Feed) {
			defer wg.Done()
			// gofeed.Parser is not safe for concurrent use; give each
			// goroutine its own.
			items, err := fetchFeed(gofeed.NewParser(), feed)
			if err != nil {
				log.Printf("Failed to fetch %s: %v (skipping)", feed.Name, err)
				return
			}
			log.Printf("Source %s: Found %d items", feed.Name, len(items))
			mu.Lock()
			perFeed[idx] = items
			mu.Unlock()
		}(i, f)
	}
	wg.Wait()

	var all []RawItem
	for _, items := range perFeed {
		all = append(all, items...)
	}
	return all
}

// fetchFeed pulls one source, capped at maxItemsPerFeed entries.
func fetchFeed(parser *gofeed.Parser, feed Feed) ([]RawItem, error) {
	parsed, err := parser.ParseURL(feed.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := parsed.Items
	if len(entries) > maxItemsPerFeed {
		entries = entries[:maxItemsPerFeed]
	}

	items := make([]RawItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, RawItem{
			Source:         feed.Name,
			Title:          e.Title,
			Link:           e.Link,
			Summary:        e.Description,
			Published:      e.Published,
			SourcePriority: feed.Priority,
		})
	}
	return items, nil
}

func feedNames(feeds []Feed) string {
	var names []string
	for _, f := range feeds {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

// saveRawItems saves fetched items as data/items.json
func saveRawItems(items []RawItem) error {
	if err := os.MkdirAll(Config.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	return os.WriteFile(filepath.Join(Config.DataDir, "items.json"), data, 0644)
}

// loadRawItems reads data/items.json saved by a previous fetch.
func loadRawItems() ([]RawItem, error) {
	data, err := os.ReadFile(filepath.Join(Config.DataDir, "items.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	var items []RawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items file: %w", err)
	}
	return items, nil
}
