package signalscan

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// EnrichedItem is one fully scored news item, the pipeline's unit of output.
type EnrichedItem struct {
	RawItem
	Cleaned         string      `json:"cleaned"`
	ClusterID       int         `json:"cluster_id"`
	ClusterName     string      `json:"cluster_name"`
	SentimentScore  float64     `json:"sentiment_score"`
	LexiconScore    float64     `json:"lexicon_score"`
	ImpactScore     float64     `json:"impact_score"`
	ImpactLevel     ImpactLevel `json:"impact_level"`
	OperationalTags string      `json:"operational_tags"`
	EventFlag       EventFlag   `json:"event_flag"`
}

// ClusterSummary aggregates one topic cluster for reporting.
type ClusterSummary struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Volume int       `json:"volume"`
	Flag   EventFlag `json:"flag"`
}

// Result is the output of one pipeline run.
type Result struct {
	Items    []EnrichedItem   `json:"items"`
	Clusters []ClusterSummary `json:"clusters"`
}

// Pipeline wires the scoring stages together. Scoring is all or nothing:
// a batch either produces a fully enriched result or an error, never a
// partially scored one.
type Pipeline struct {
	Tables    *Tables
	Sentiment SentimentScorer
	Provider  *Provider

	lexicon *Lexicon
	tagger  *Tagger
}

// NewPipeline builds a pipeline over the loaded tables, sentiment scorer
// and embedding provider.
func NewPipeline(tables *Tables, sentiment SentimentScorer, provider *Provider) *Pipeline {
	return &Pipeline{
		Tables:    tables,
		Sentiment: sentiment,
		Provider:  provider,
		lexicon:   NewLexicon(tables.Lexicon),
		tagger:    NewTagger(tables.Categories),
	}
}

// Run scores a batch of raw items end to end: dedup, normalize, embed,
// cluster, score, tag, detect events and name clusters. An empty batch is
// a no-op. Identical input produces identical output.
func (p *Pipeline) Run(ctx context.Context, items []RawItem) (*Result, error) {
	if len(items) == 0 {
		return &Result{}, nil
	}

	items = DedupeBy(items, func(it RawItem) string {
		return it.Title + "\x00" + it.Link
	})

	normalized := Normalize(items, p.Tables.Stopwords)
	normalized = DedupeBy(normalized, func(it NormalizedItem) string {
		return it.Source + "\x00" + it.Cleaned
	})
	log.Printf("Scoring %d items after deduplication", len(normalized))

	texts := make([]string, len(normalized))
	for i, it := range normalized {
		texts[i] = it.Cleaned
	}

	var assignments []int
	if len(normalized) <= 1 {
		// No engine needed; a single item is its own cluster.
		assignments = make([]int, len(normalized))
	} else {
		vectors, err := p.Provider.Encode(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed items: %w", err)
		}
		assignments = AssignClusters(vectors)
	}

	volumes := make(map[int]int)
	corpus := make(map[int]string)
	for i, cid := range assignments {
		volumes[cid]++
		if corpus[cid] == "" {
			corpus[cid] = normalized[i].Cleaned
		} else {
			corpus[cid] += " " + normalized[i].Cleaned
		}
	}

	flags := DetectEvents(volumes)
	names := NameClusters(corpus, p.Tables.Stopwords)

	enriched := make([]EnrichedItem, len(normalized))
	for i, it := range normalized {
		cid := assignments[i]
		sentiment := p.Sentiment.Compound(it.Cleaned)
		lexicon := p.lexicon.Score(it.Cleaned)
		impact, level := ClassifyImpact(sentiment, lexicon)

		name := names[cid]
		if name == "" {
			name = "General"
		}

		enriched[i] = EnrichedItem{
			RawItem:         it.RawItem,
			Cleaned:         it.Cleaned,
			ClusterID:       cid,
			ClusterName:     name,
			SentimentScore:  sentiment,
			LexiconScore:    lexicon,
			ImpactScore:     impact,
			ImpactLevel:     level,
			OperationalTags: p.tagger.Tags(it.Cleaned),
			EventFlag:       flags[cid],
		}
	}

	clusters := make([]ClusterSummary, 0, len(volumes))
	for cid, volume := range volumes {
		name := names[cid]
		if name == "" {
			name = "General"
		}
		clusters = append(clusters, ClusterSummary{
			ID:     cid,
			Name:   name,
			Volume: volume,
			Flag:   flags[cid],
		})
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].ID < clusters[j].ID })

	return &Result{Items: enriched, Clusters: clusters}, nil
}

// ScoreCmd: Scores data/items.json, saves the result to the database and CSV
var ScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score fetched items and detect events",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := scoreSavedItems()
		if err != nil {
			log.Fatal(err)
		}
		logRunSummary(result)
	},
}

// scoreSavedItems runs the pipeline over the last fetched batch and
// persists the result.
func scoreSavedItems() (*Result, error) {
	tables, err := LoadTables(Config.TablesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration tables: %w", err)
	}
	items, err := loadRawItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	provider := NewProvider(Config.EmbeddingModel, NewOpenAIEncoder)
	pipeline := NewPipeline(tables, NewVaderScorer(), provider)

	result, err := pipeline.Run(context.Background(), items)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		log.Println("No items to score.")
		return result, nil
	}

	if err := SaveResult(result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	if err := ExportCSV(result); err != nil {
		return nil, fmt.Errorf("failed to export CSV: %w", err)
	}
	return result, nil
}

func logRunSummary(result *Result) {
	log.Printf("Scored %d items in %d clusters", len(result.Items), len(result.Clusters))
	for _, c := range result.Clusters {
		if c.Flag == EventNormal {
			continue
		}
		log.Printf("%s: cluster %d (%s), %d items", c.Flag, c.ID, c.Name, c.Volume)
	}
	counts := make(map[ImpactLevel]int)
	for _, it := range result.Items {
		counts[it.ImpactLevel]++
	}
	parts := make([]string, 0, len(counts))
	for _, level := range []ImpactLevel{ImpactHighRisk, ImpactRisk, ImpactNeutral, ImpactOpportunity, ImpactHighOpportunity} {
		if counts[level] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", level, counts[level]))
		}
	}
	log.Printf("Impact distribution: %s", strings.Join(parts, ", "))
}
