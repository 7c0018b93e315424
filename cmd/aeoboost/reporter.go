package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/orchestration"
	"github.com/aeobooster/aeobooster/internal/reporting"
)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// mentionIcon maps a mention kind to a one-glyph progress marker.
func mentionIcon(kind models.MentionKind) string {
	switch kind {
	case models.MentionTop3:
		return "✓"
	case models.MentionVague:
		return "~"
	case models.MentionCompetitorOnly:
		return "!"
	default:
		return "✗"
	}
}

// newProgressReporter returns a listener that prints one line per prompt.
func newProgressReporter(w io.Writer, verbose bool) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventAnalysisStart:
			fmt.Fprintf(w, "Running %d prompts...\n", event.TotalPrompts)
		case orchestration.EventPromptCached:
			if verbose {
				fmt.Fprintf(w, "  [%d/%d] %s (cached)\n", event.PromptNum, event.TotalPrompts, event.Cluster)
			}
		case orchestration.EventPromptComplete:
			if verbose {
				fmt.Fprintf(w, "  [%d/%d] %s %s score=%+d (%s)\n",
					event.PromptNum, event.TotalPrompts,
					mentionIcon(event.MentionKind), event.Cluster,
					event.Score, formatDuration(time.Duration(event.DurationMs)*time.Millisecond))
			}
		case orchestration.EventAnalysisComplete:
			fmt.Fprintf(w, "Done: total score %+d over %d prompts in %s\n",
				event.Score, event.TotalPrompts,
				formatDuration(time.Duration(event.DurationMs)*time.Millisecond))
		}
	}
}

// printOutcomeTable prints the per-cluster summary table.
func printOutcomeTable(w io.Writer, outcome *models.AnalysisOutcome) {
	clusters := make([]models.Cluster, 0, len(outcome.Clusters))
	for c := range outcome.Clusters {
		clusters = append(clusters, c)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i] < clusters[j] })

	weak := make(map[models.Cluster]bool, len(outcome.WeakClusters))
	for _, wc := range outcome.WeakClusters {
		weak[wc.Cluster] = true
	}

	nameWidth := len("Cluster")
	for _, c := range clusters {
		if w := runewidth.StringWidth(string(c)); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Fprintf(w, "\n%s  %7s  %6s  %7s\n", padRight("Cluster", nameWidth), "Prompts", "Score", "Average")
	for _, c := range clusters {
		stats := outcome.Clusters[c]
		marker := " "
		if weak[c] {
			marker = "!"
		}
		fmt.Fprintf(w, "%s  %7d  %6d  %7.2f %s\n",
			padRight(string(c), nameWidth), stats.Count, stats.ScoreSum, stats.Average, marker)
	}

	fmt.Fprintf(w, "\nTotal: %d over %d prompts (avg %.2f)\n",
		outcome.TotalScore, outcome.PromptCount, outcome.AverageScore())

	if len(outcome.WeakClusters) > 0 {
		fmt.Fprintf(w, "Weak clusters (below threshold):\n")
		for _, wc := range outcome.WeakClusters {
			fmt.Fprintf(w, "  ! %s: avg %.2f. %s\n", wc.Cluster, wc.Average, reporting.ClusterAdvice(wc.Cluster))
		}
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
