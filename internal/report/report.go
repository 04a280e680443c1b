// Package report renders an analysis as a markdown summary, and as HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"slotsense/domain/setting"
	"slotsense/domain/snapshot"
	domainstats "slotsense/domain/stats"
)

var ratioLabels = []struct {
	key   string
	label string
}{
	{domainstats.Key6vs1, "6 vs 1"},
	{domainstats.Key6vs2, "6 vs 2"},
	{domainstats.Key6vs4, "6 vs 4"},
	{domainstats.Key6vs5, "6 vs 5"},
	{domainstats.KeyHighVsLow, "high (5-6) vs low (1-2)"},
}

// Snapshot renders a stored snapshot with its session header
func Snapshot(s *snapshot.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis %s\n\n", s.ID.Short())
	fmt.Fprintf(&b, "- Recorded: %s\n", s.CreatedAt)
	fmt.Fprintf(&b, "- Games: %d\n", s.Game.CurrentGames)
	fmt.Fprintf(&b, "- Difference: %+d\n", s.Game.TotalDifference)
	if s.Result.State != "" {
		fmt.Fprintf(&b, "- State: %s\n", s.Result.State)
	}
	b.WriteString("\n")
	writeBody(&b, s.Result, "##")
	return b.String()
}

// Result renders a bare analysis result
func Result(r domainstats.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Analysis\n\n")
	writeBody(&b, r, "##")
	return b.String()
}

// HTML converts a markdown report to an HTML fragment
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func writeBody(b *strings.Builder, r domainstats.AnalysisResult, h string) {
	c := r.Conclusion

	fmt.Fprintf(b, "%s Conclusion\n\n", h)
	fmt.Fprintf(b, "**%s** (confidence: %s, strength: %s)\n\n", c.Recommendation, c.ConfidenceLevel, c.StatisticalStrength)
	fmt.Fprintf(b, "Most likely setting **%s** at %.1f%%; high settings (5-6) %.1f%%.\n\n",
		c.MostLikelySetting, c.MaxProbability, c.HighSettingProbability)
	if len(c.Reasoning) > 0 {
		for _, reason := range c.Reasoning {
			fmt.Fprintf(b, "- %s\n", reason)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "%s Setting probabilities\n\n", h)
	b.WriteString("| Setting | Probability |\n|---|---:|\n")
	for _, s := range setting.All() {
		fmt.Fprintf(b, "| %s | %.2f%% |\n", s, r.Posterior[s])
	}
	if spread, err := stats.StandardDeviation(r.Posterior.Values()); err == nil {
		fmt.Fprintf(b, "\nSpread (standard deviation): %.2f points\n", spread)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "%s Probability ratios\n\n", h)
	b.WriteString("| Comparison | Ratio |\n|---|---:|\n")
	for _, rl := range ratioLabels {
		fmt.Fprintf(b, "| %s | %s |\n", rl.label, formatRatio(r.Ratios[rl.key]))
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "%s Variance analysis\n\n", h)
	fmt.Fprintf(b, "Overall ratio %.2f over %d channel(s): %s\n\n",
		r.Variance.OverallRatio, r.Variance.ValidChannels, r.Variance.OverallConclusion)
	if len(r.Variance.Channels) > 0 {
		b.WriteString("| Channel | Upper variance | Normal prob. | Ratio | Conclusion |\n|---|---:|---:|---:|---|\n")
		for _, cv := range r.Variance.Channels {
			fmt.Fprintf(b, "| %s | %.4f%% | %.4f%% | %.2f | %s |\n",
				cv.Channel, cv.UpperVariance, cv.NormalProb, cv.Ratio, cv.Conclusion)
		}
		b.WriteString("\n")
	}

	if len(r.Channels) == 0 {
		b.WriteString("_No channel has samples yet._\n")
		return
	}
	names := make([]string, 0, len(r.Channels))
	for _, ch := range r.Channels {
		names = append(names, string(ch))
	}
	fmt.Fprintf(b, "Evidence from: %s\n", strings.Join(names, ", "))
}

func formatRatio(r domainstats.Ratio) string {
	if r.IsInf() {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r.Float64())
}
