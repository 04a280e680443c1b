package report

import (
	"strings"
	"testing"

	"slotsense/domain/evidence"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
	"slotsense/internal/analysis"
	"slotsense/internal/rates"

	"github.com/stretchr/testify/assert"
)

func highSession() evidence.Counters {
	return evidence.Counters{
		Game:           evidence.Game{CurrentGames: 1500, TotalDifference: 800},
		Voice:          evidence.Voice{Sin: 20, Jaggy: 12, Amiba: 8, Other: 10, Total: 50},
		Bell:           evidence.Bell{Diagonal: 80, Middle: 15, Total: 95},
		ModeTransition: evidence.ModeTransition{TotalATEnds: 6, HeavenStarts: 2},
	}
}

func TestSnapshotReport(t *testing.T) {
	c := highSession()
	snap := snapshot.New(c, analysis.NewEngine(rates.Default()).Analyze(c))

	md := Snapshot(snap)
	assert.True(t, strings.HasPrefix(md, "# Analysis "+snap.ID.Short()))
	assert.Contains(t, md, "- Difference: +800")
	assert.Contains(t, md, "- State: normal")
	assert.Contains(t, md, "**strong continue**")
	assert.Contains(t, md, "| 6 |")
	assert.Contains(t, md, "| high (5-6) vs low (1-2) |")
	assert.Contains(t, md, "| voice |")
	assert.Contains(t, md, "Evidence from: voice, bell, modeTransition")
}

func TestResultReportEmptyEvidence(t *testing.T) {
	md := Result(analysis.NewEngine(rates.Default()).Analyze(evidence.Counters{}))

	assert.Contains(t, md, "**wait-and-see**")
	assert.Contains(t, md, "| 1 | 20.00% |")
	assert.Contains(t, md, "Spread (standard deviation): 0.00 points")
	assert.Contains(t, md, "_No channel has samples yet._")
	assert.NotContains(t, md, "| Channel |")
}

func TestInfiniteRatio(t *testing.T) {
	r := stats.AnalysisResult{
		Posterior: stats.Posterior{6: 100},
		Ratios:    stats.ProbabilityRatios{stats.KeyHighVsLow: stats.Inf},
	}
	assert.Contains(t, Result(r), "| high (5-6) vs low (1-2) | ∞ |")
}

func TestHTML(t *testing.T) {
	out := string(HTML(Result(analysis.NewEngine(rates.Default()).Analyze(highSession()))))

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<strong>strong continue</strong>")
}
