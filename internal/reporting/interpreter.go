// Package reporting turns an analysis outcome into human-readable output:
// a plain-language interpretation, a markdown report, and its HTML
// rendering.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/aeobooster/aeobooster/internal/metrics"
	"github.com/aeobooster/aeobooster/internal/models"
)

// InterpretAverage returns a plain-language label for an average per-prompt
// score. The rubric ranges from -2 (competitors own the answer) to +4
// (consistent primary recommendation).
func InterpretAverage(avg float64) string {
	switch {
	case avg >= 3:
		return "Dominant: the brand is the primary recommendation"
	case avg >= 2:
		return "Strong: the brand ranks among the top answers"
	case avg >= 1:
		return "Visible: mentioned, but rarely prominent"
	case avg >= 0:
		return "Weak: mostly absent from answers"
	default:
		return "Losing: competitors are recommended instead"
	}
}

// InterpretCoverage explains the candidate coverage ratio.
func InterpretCoverage(coverage float64) string {
	pct := coverage * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("Full prompt coverage (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("Partial prompt coverage (%.0f%%): add entities or templates to widen the batch", pct)
	default:
		return fmt.Sprintf("Low prompt coverage (%.0f%%): too few entities for the requested batch size", pct)
	}
}

// ClusterAdvice returns a concrete followup for a weak cluster.
func ClusterAdvice(cluster models.Cluster) string {
	switch cluster {
	case models.ClusterPainPoint:
		return "Publish troubleshooting and how-to content that names the brand in problem-solving contexts."
	case models.ClusterBestX:
		return "Pursue inclusion in roundups and comparison articles for the category."
	case models.ClusterAffordable:
		return "Make pricing pages explicit and crawlable; publish cost comparisons."
	case models.ClusterComparison:
		return "Publish head-to-head comparison pages against the main competitors."
	case models.ClusterSupport:
		return "Surface support quality signals: docs, response-time claims, public changelogs."
	case models.ClusterSafety:
		return "Publish security, compliance, and trust documentation prominently."
	default:
		return "Create content targeting this question type."
	}
}

// FormatSummaryReport produces a full plain-language report from an
// analysis outcome.
func FormatSummaryReport(outcome *models.AnalysisOutcome) string {
	var b strings.Builder

	duration := time.Duration(outcome.DurationMs) * time.Millisecond
	avg := outcome.AverageScore()

	b.WriteString("=== Interpretation ===\n\n")

	b.WriteString(fmt.Sprintf("Site:          %s\n", outcome.SiteURL))
	b.WriteString(fmt.Sprintf("Total Score:   %d across %d prompts (avg %.2f)\n",
		outcome.TotalScore, outcome.PromptCount, avg))
	b.WriteString(fmt.Sprintf("Assessment:    %s\n", InterpretAverage(avg)))
	b.WriteString(fmt.Sprintf("Coverage:      %s\n", InterpretCoverage(outcome.Coverage)))
	b.WriteString(fmt.Sprintf("Duration:      %v\n", duration))
	if outcome.ErrorCount > 0 {
		b.WriteString(fmt.Sprintf("Errors:        %d prompt(s) failed to execute\n", outcome.ErrorCount))
	}

	scores := make([]int, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		scores = append(scores, r.Score)
	}
	if len(scores) > 1 {
		floats := metrics.ScoresToFloat(scores)
		low, high := metrics.ConfidenceInterval95(floats)
		b.WriteString(fmt.Sprintf("Score Spread:  stddev %.2f, 95%% CI [%.2f, %.2f]\n",
			metrics.StdDev(floats), low, high))
	}

	if len(outcome.WeakClusters) > 0 {
		b.WriteString("\nWeak Clusters:\n")
		for _, wc := range outcome.WeakClusters {
			b.WriteString(fmt.Sprintf("  ✗ %s: avg %.2f over %d prompt(s)\n", wc.Cluster, wc.Average, wc.Count))
			b.WriteString(fmt.Sprintf("    %s\n", ClusterAdvice(wc.Cluster)))
		}
	} else if outcome.PromptCount > 0 {
		b.WriteString("\nNo weak clusters: every question type clears the threshold.\n")
	}

	return b.String()
}
