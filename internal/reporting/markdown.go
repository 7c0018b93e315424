package reporting

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aeobooster/aeobooster/internal/models"
)

// BuildMarkdown renders an outcome as a GFM report suitable for saving
// alongside the raw results or serving over the API.
func BuildMarkdown(outcome *models.AnalysisOutcome) string {
	var b strings.Builder

	b.WriteString("# Discoverability Report\n\n")
	b.WriteString(fmt.Sprintf("**Site:** %s  \n", outcome.SiteURL))
	if outcome.BusinessCategory != "" {
		b.WriteString(fmt.Sprintf("**Category:** %s  \n", outcome.BusinessCategory))
	}
	b.WriteString(fmt.Sprintf("**Engine:** %s (%s)  \n", outcome.Setup.EngineType, outcome.Setup.ModelID))
	b.WriteString(fmt.Sprintf("**Run:** %s at %s\n\n", outcome.RunID, outcome.Timestamp.Format("2006-01-02 15:04 MST")))

	avg := outcome.AverageScore()
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Total score: **%d** over %d prompts (average %.2f)\n", outcome.TotalScore, outcome.PromptCount, avg))
	b.WriteString(fmt.Sprintf("- Assessment: %s\n", InterpretAverage(avg)))
	b.WriteString(fmt.Sprintf("- %s\n", InterpretCoverage(outcome.Coverage)))
	if outcome.ErrorCount > 0 {
		b.WriteString(fmt.Sprintf("- %d prompt(s) failed to execute\n", outcome.ErrorCount))
	}
	b.WriteString("\n")

	mentions := outcome.MentionCounts()
	if len(mentions) > 0 {
		b.WriteString("## Mentions\n\n")
		b.WriteString("| Kind | Count |\n|---|---|\n")
		for _, kind := range []models.MentionKind{models.MentionTop3, models.MentionVague, models.MentionNone, models.MentionCompetitorOnly} {
			if n, ok := mentions[kind]; ok {
				b.WriteString(fmt.Sprintf("| %s | %d |\n", kind, n))
			}
		}
		b.WriteString("\n")
	}

	if len(outcome.Clusters) > 0 {
		b.WriteString("## Cluster Breakdown\n\n")
		b.WriteString("| Cluster | Prompts | Score | Average |\n|---|---|---|---|\n")
		for _, cluster := range sortedClusters(outcome.Clusters) {
			stats := outcome.Clusters[cluster]
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f |\n", cluster, stats.Count, stats.ScoreSum, stats.Average))
		}
		b.WriteString("\n")
	}

	if len(outcome.WeakClusters) > 0 {
		b.WriteString("## Weak Clusters\n\n")
		for _, wc := range outcome.WeakClusters {
			b.WriteString(fmt.Sprintf("### %s (avg %.2f over %d prompts)\n\n", wc.Cluster, wc.Average, wc.Count))
			b.WriteString(ClusterAdvice(wc.Cluster))
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// sortedClusters orders clusters by descending average, ties by name, so
// the strongest signal leads the table.
func sortedClusters(clusters map[models.Cluster]models.ClusterStats) []models.Cluster {
	out := make([]models.Cluster, 0, len(clusters))
	for c := range clusters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := clusters[out[i]], clusters[out[j]]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		return out[i] < out[j]
	})
	return out
}

// RenderHTML converts a markdown report to HTML with GFM tables enabled.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
