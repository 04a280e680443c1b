// Package testkit provides preset sessions and a seeded session generator
// for tests, demos and the CLI.
package testkit

import (
	"fmt"
	"strings"

	"slotsense/domain/evidence"
)

// Scenario is a named preset session
type Scenario struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Expected    string            `json:"expected"`
	Counters    evidence.Counters `json:"counters"`
}

var scenarios = []Scenario{
	{
		Name:        "high-composite",
		Description: "several channels agree on setting 6",
		Expected:    "setting 6, strong continue",
		Counters: evidence.Counters{
			Game:           evidence.Game{CurrentGames: 1500, TotalDifference: 800},
			Voice:          evidence.Voice{Sin: 20, Jaggy: 12, Amiba: 8, Other: 10, Total: 50},
			Bell:           evidence.Bell{Diagonal: 80, Middle: 15, Total: 95},
			Watermelon: evidence.Watermelon{
				Normal: evidence.WatermelonNormal{Total: 25, Hit: 5},
				Heaven: evidence.WatermelonHeaven{Total: 8, Hit: 3, ConsecutiveMiss: 2},
			},
			InitialHit:     evidence.InitialHit{TotalGames: 1500, TotalHits: 6, CherryHits: 2, NonCherryHits: 4},
			ModeTransition: evidence.ModeTransition{TotalATEnds: 6, JagiStageStarts: 3, HeavenStarts: 2},
		},
	},
	{
		Name:        "low-indicators",
		Description: "most channels point at settings 1-2",
		Expected:    "settings 1-2, stop",
		Counters: evidence.Counters{
			Game:  evidence.Game{CurrentGames: 2000, TotalDifference: -800},
			Voice: evidence.Voice{Sin: 25, Jaggy: 3, Amiba: 2, Other: 20, Total: 50},
			Bell:  evidence.Bell{Diagonal: 5, Middle: 55, Total: 60},
			Watermelon: evidence.Watermelon{
				Normal: evidence.WatermelonNormal{Total: 30, Hit: 4},
				Heaven: evidence.WatermelonHeaven{Total: 5, Hit: 0, ConsecutiveMiss: 5},
			},
			InitialHit:     evidence.InitialHit{TotalGames: 2000, TotalHits: 3, CherryHits: 1, NonCherryHits: 2},
			ModeTransition: evidence.ModeTransition{TotalATEnds: 3},
		},
	},
	{
		Name:        "conflicting",
		Description: "voice leans high while bell leans low",
		Expected:    "settings 4-5, wait and see",
		Counters: evidence.Counters{
			Game:  evidence.Game{CurrentGames: 1200, TotalDifference: 200},
			Voice: evidence.Voice{Sin: 15, Jaggy: 8, Amiba: 7, Other: 20, Total: 50},
			Bell:  evidence.Bell{Diagonal: 6, Middle: 66, Total: 72},
			Watermelon: evidence.Watermelon{
				Normal: evidence.WatermelonNormal{Total: 20, Hit: 3},
				Heaven: evidence.WatermelonHeaven{Total: 3, Hit: 1, ConsecutiveMiss: 2},
			},
			InitialHit:     evidence.InitialHit{TotalGames: 1200, TotalHits: 4, CherryHits: 1, NonCherryHits: 3},
			ModeTransition: evidence.ModeTransition{TotalATEnds: 4, JagiStageStarts: 1, HeavenStarts: 1},
		},
	},
	{
		Name:        "sparse",
		Description: "too few samples for a confident call",
		Expected:    "undecided",
		Counters: evidence.Counters{
			Game:  evidence.Game{CurrentGames: 500, TotalDifference: -200},
			Voice: evidence.Voice{Sin: 5, Jaggy: 2, Amiba: 1, Other: 2, Total: 10},
			Bell:  evidence.Bell{Diagonal: 2, Middle: 18, Total: 20},
			Watermelon: evidence.Watermelon{
				Normal: evidence.WatermelonNormal{Total: 5, Hit: 1},
				Heaven: evidence.WatermelonHeaven{Total: 1, Hit: 0, ConsecutiveMiss: 1},
			},
			InitialHit:     evidence.InitialHit{TotalGames: 500, TotalHits: 1, NonCherryHits: 1},
			ModeTransition: evidence.ModeTransition{TotalATEnds: 1},
		},
	},
}

// Scenarios returns the preset sessions in a fixed order
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// ScenarioByName looks a preset up by name, ignoring case
func ScenarioByName(name string) (Scenario, error) {
	for _, s := range scenarios {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}
