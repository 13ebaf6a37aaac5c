package signalscan

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	rendererhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/report.html
var htmlTemplate string

//go:embed templates/styles.css
var cssStyles string

// ReportCmd: Renders the last saved run as markdown and HTML
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from the last scored run",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := LoadLatestResult()
		if err != nil {
			log.Fatalf("Failed to load last run: %v", err)
		}
		if err := WriteReports(result); err != nil {
			log.Fatalf("Failed to write reports: %v", err)
		}
	},
}

// WriteReports renders the run as report.md and report.html under the data
// directory.
func WriteReports(result *Result) error {
	if err := os.MkdirAll(Config.DataDir, 0o755); err != nil {
		return err
	}

	markdown := FormatReport(result)
	mdPath := filepath.Join(Config.DataDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	log.Printf("Markdown report generated: %s", mdPath)

	htmlContent, err := renderHTML(markdown)
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(Config.DataDir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(htmlContent), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	log.Printf("HTML report generated: %s", htmlPath)
	return nil
}

// FormatReport renders the run as a markdown document: event headlines
// first, then per-cluster sections with the highest-impact items.
func FormatReport(result *Result) string {
	report := "# News Signal Report\n\n"
	report += fmt.Sprintf("*%s, %d items in %d clusters*\n\n",
		time.Now().Format("2 January 2006"), len(result.Items), len(result.Clusters))

	for _, c := range result.Clusters {
		if c.Flag == EventNormal {
			continue
		}
		report += fmt.Sprintf("> **%s**: %s (%d items)\n\n", c.Flag, c.Name, c.Volume)
	}

	byCluster := make(map[int][]EnrichedItem)
	for _, it := range result.Items {
		byCluster[it.ClusterID] = append(byCluster[it.ClusterID], it)
	}

	for _, c := range result.Clusters {
		report += fmt.Sprintf("## %s\n\n", c.Name)
		report += fmt.Sprintf("%d items, %s\n\n", c.Volume, c.Flag)

		items := byCluster[c.ID]
		sort.SliceStable(items, func(i, j int) bool {
			return absScore(items[i].ImpactScore) > absScore(items[j].ImpactScore)
		})
		for _, it := range items {
			report += fmt.Sprintf("- [%s](%s) (%s, %.2f) [%s]\n",
				it.Title, it.Link, it.ImpactLevel, it.ImpactScore, it.OperationalTags)
		}
		report += "\n"
	}

	return report
}

func absScore(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// renderHTML converts the markdown report into a standalone HTML document
// with embedded CSS.
func renderHTML(markdownContent string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			rendererhtml.WithHardWraps(),
			rendererhtml.WithXHTML(),
			rendererhtml.WithUnsafe(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML template: %w", err)
	}

	data := struct {
		Title string
		Date  string
		Body  template.HTML
		CSS   template.CSS
	}{
		Title: "News Signal Report",
		Date:  time.Now().Format("2 January 2006"),
		Body:  template.HTML(buf.String()),
		CSS:   template.CSS(cssStyles),
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return result.String(), nil
}
