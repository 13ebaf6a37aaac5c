package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/newswatch-lk/signalscan"
	"github.com/spf13/cobra"
)

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func main() {
	// Load .env file when present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Set configuration for the signalscan package
	signalscan.Config.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	signalscan.Config.EmbeddingModel = getenv("EMBEDDING_MODEL", "text-embedding-3-small")
	signalscan.Config.DataDir = getenv("DATA_DIR", "data")
	signalscan.Config.TablesDir = getenv("TABLES_DIR", "config")

	rootCmd := &cobra.Command{
		Use:   "signalscan",
		Short: "News Signal Scoring and Event Detection CLI",
	}

	// Add all commands from the signalscan package
	rootCmd.AddCommand(signalscan.FetchCmd)
	rootCmd.AddCommand(signalscan.ScoreCmd)
	rootCmd.AddCommand(signalscan.ReportCmd)
	rootCmd.AddCommand(signalscan.ModelCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: fetch -> score -> report",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Running full pipeline...")
		signalscan.FetchCmd.Run(cmd, nil)
		signalscan.ScoreCmd.Run(cmd, nil)
		signalscan.ReportCmd.Run(cmd, nil)
		log.Println("Pipeline complete.")
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean fetched items, exports, and reports",
	Run: func(cmd *cobra.Command, args []string) {
		files, err := os.ReadDir(signalscan.Config.DataDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("Nothing to clean.")
				return
			}
			log.Fatalf("Failed to read %s: %v", signalscan.Config.DataDir, err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(signalscan.Config.DataDir, file.Name())); err != nil {
				log.Printf("Failed to remove %s: %v", file.Name(), err)
			}
		}
		log.Printf("Cleaned %s directory.", signalscan.Config.DataDir)
	},
}
