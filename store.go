package signalscan

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// initDatabase opens the signals database, creating the schema if needed.
func initDatabase() (*sql.DB, error) {
	if err := os.MkdirAll(Config.DataDir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filepath.Join(Config.DataDir, "signals.db"))
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_count INTEGER NOT NULL,
		cluster_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS signals (
		run_id INTEGER NOT NULL,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		summary TEXT NOT NULL,
		published TEXT NOT NULL,
		source_priority REAL NOT NULL,
		cleaned TEXT NOT NULL,
		cluster_id INTEGER NOT NULL,
		cluster_name TEXT NOT NULL,
		sentiment_score REAL NOT NULL,
		lexicon_score REAL NOT NULL,
		impact_score REAL NOT NULL,
		impact_level TEXT NOT NULL,
		operational_tags TEXT NOT NULL,
		event_flag TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id);
	CREATE INDEX IF NOT EXISTS idx_signals_cluster ON signals(run_id, cluster_id);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		return nil, err
	}

	return db, nil
}

// SaveResult persists one pipeline run and its signals to the database.
func SaveResult(result *Result) error {
	db, err := initDatabase()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (item_count, cluster_count) VALUES (?, ?)`,
		len(result.Items), len(result.Clusters))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	insertSQL := `
	INSERT INTO signals (run_id, source, title, link, summary, published, source_priority,
		cleaned, cluster_id, cluster_name, sentiment_score, lexicon_score,
		impact_score, impact_level, operational_tags, event_flag)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range result.Items {
		_, err := stmt.Exec(runID, it.Source, it.Title, it.Link, it.Summary, it.Published,
			it.SourcePriority, it.Cleaned, it.ClusterID, it.ClusterName,
			it.SentimentScore, it.LexiconScore, it.ImpactScore,
			string(it.ImpactLevel), it.OperationalTags, string(it.EventFlag))
		if err != nil {
			return fmt.Errorf("failed to insert signal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	log.Printf("Saved run %d with %d signals", runID, len(result.Items))
	return nil
}

// LoadLatestResult reads the most recent run back from the database.
func LoadLatestResult() (*Result, error) {
	db, err := initDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	var runID int64
	err = db.QueryRow(`SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no saved runs, run 'score' first")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest run: %w", err)
	}

	rows, err := db.Query(`
	SELECT source, title, link, summary, published, source_priority,
		cleaned, cluster_id, cluster_name, sentiment_score, lexicon_score,
		impact_score, impact_level, operational_tags, event_flag
	FROM signals WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	result := &Result{}
	clusterIndex := make(map[int]int)
	for rows.Next() {
		var it EnrichedItem
		var level, flag string
		err := rows.Scan(&it.Source, &it.Title, &it.Link, &it.Summary, &it.Published,
			&it.SourcePriority, &it.Cleaned, &it.ClusterID, &it.ClusterName,
			&it.SentimentScore, &it.LexiconScore, &it.ImpactScore,
			&level, &it.OperationalTags, &flag)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		it.ImpactLevel = ImpactLevel(level)
		it.EventFlag = EventFlag(flag)
		result.Items = append(result.Items, it)

		idx, ok := clusterIndex[it.ClusterID]
		if !ok {
			idx = len(result.Clusters)
			clusterIndex[it.ClusterID] = idx
			result.Clusters = append(result.Clusters, ClusterSummary{
				ID:   it.ClusterID,
				Name: it.ClusterName,
				Flag: it.EventFlag,
			})
		}
		result.Clusters[idx].Volume++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signals: %w", err)
	}
	return result, nil
}

// csvHeader matches the signals table column order minus run_id.
var csvHeader = []string{
	"source", "title", "link", "summary", "published", "source_priority",
	"cleaned", "cluster_id", "cluster_name", "sentiment_score", "lexicon_score",
	"impact_score", "impact_level", "operational_tags", "event_flag",
}

// ExportCSV writes the scored items to a timestamped CSV under the data
// directory, mirroring the database schema.
func ExportCSV(result *Result) error {
	if err := os.MkdirAll(Config.DataDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(Config.DataDir, fmt.Sprintf("signals_%s.csv", time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, it := range result.Items {
		record := []string{
			it.Source,
			it.Title,
			it.Link,
			it.Summary,
			it.Published,
			strconv.FormatFloat(it.SourcePriority, 'f', -1, 64),
			it.Cleaned,
			strconv.Itoa(it.ClusterID),
			it.ClusterName,
			strconv.FormatFloat(it.SentimentScore, 'f', -1, 64),
			strconv.FormatFloat(it.LexiconScore, 'f', -1, 64),
			strconv.FormatFloat(it.ImpactScore, 'f', -1, 64),
			string(it.ImpactLevel),
			it.OperationalTags,
			string(it.EventFlag),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("Exported %d signals to %s", len(result.Items), path)
	return nil
}
