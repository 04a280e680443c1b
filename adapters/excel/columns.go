// Package excel writes snapshot history workbooks and reads counter sheets
// back for batch analysis.
package excel

import "slotsense/domain/evidence"

// Sheet names
const (
	SnapshotSheet = "Snapshots"
	VarianceSheet = "Variance"
	CounterSheet  = "Sheet1"
)

// counterColumn binds a header to one integer field of Counters
type counterColumn struct {
	header string
	field  func(c *evidence.Counters) *int
}

// StateHeader is the only non-integer counter column
const StateHeader = "game.state"

var counterColumns = []counterColumn{
	{"game.currentGames", func(c *evidence.Counters) *int { return &c.Game.CurrentGames }},
	{"game.totalDifference", func(c *evidence.Counters) *int { return &c.Game.TotalDifference }},
	{"voice.sin", func(c *evidence.Counters) *int { return &c.Voice.Sin }},
	{"voice.jaggy", func(c *evidence.Counters) *int { return &c.Voice.Jaggy }},
	{"voice.amiba", func(c *evidence.Counters) *int { return &c.Voice.Amiba }},
	{"voice.other", func(c *evidence.Counters) *int { return &c.Voice.Other }},
	{"voice.total", func(c *evidence.Counters) *int { return &c.Voice.Total }},
	{"bell.diagonal", func(c *evidence.Counters) *int { return &c.Bell.Diagonal }},
	{"bell.middle", func(c *evidence.Counters) *int { return &c.Bell.Middle }},
	{"bell.total", func(c *evidence.Counters) *int { return &c.Bell.Total }},
	{"watermelon.normal.total", func(c *evidence.Counters) *int { return &c.Watermelon.Normal.Total }},
	{"watermelon.normal.hit", func(c *evidence.Counters) *int { return &c.Watermelon.Normal.Hit }},
	{"watermelon.heaven.total", func(c *evidence.Counters) *int { return &c.Watermelon.Heaven.Total }},
	{"watermelon.heaven.hit", func(c *evidence.Counters) *int { return &c.Watermelon.Heaven.Hit }},
	{"watermelon.heaven.consecutiveMiss", func(c *evidence.Counters) *int { return &c.Watermelon.Heaven.ConsecutiveMiss }},
	{"initialHit.totalGames", func(c *evidence.Counters) *int { return &c.InitialHit.TotalGames }},
	{"initialHit.totalHits", func(c *evidence.Counters) *int { return &c.InitialHit.TotalHits }},
	{"initialHit.cherryHits", func(c *evidence.Counters) *int { return &c.InitialHit.CherryHits }},
	{"initialHit.nonCherryHits", func(c *evidence.Counters) *int { return &c.InitialHit.NonCherryHits }},
	{"modeTransition.totalATEnds", func(c *evidence.Counters) *int { return &c.ModeTransition.TotalATEnds }},
	{"modeTransition.jagiStageStarts", func(c *evidence.Counters) *int { return &c.ModeTransition.JagiStageStarts }},
	{"modeTransition.heavenStarts", func(c *evidence.Counters) *int { return &c.ModeTransition.HeavenStarts }},
}

// CounterHeaders lists the counter columns in sheet order, state included
func CounterHeaders() []string {
	out := make([]string, 0, len(counterColumns)+1)
	for _, col := range counterColumns {
		out = append(out, col.header)
	}
	return append(out, StateHeader)
}

func counterValues(c evidence.Counters) []interface{} {
	out := make([]interface{}, 0, len(counterColumns)+1)
	for _, col := range counterColumns {
		out = append(out, *col.field(&c))
	}
	return append(out, string(c.Game.State))
}
