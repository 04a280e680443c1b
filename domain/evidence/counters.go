// Package evidence holds the raw per-channel counters a session records and
// the normalized records the estimator consumes.
package evidence

import (
	"fmt"
	"strings"

	"slotsense/domain/core"
)

// Voice counts voice triggers by category. Jaggy and Amiba are the rare categories.
type Voice struct {
	Sin   int `json:"sin" validate:"gte=0"`
	Jaggy int `json:"jaggy" validate:"gte=0"`
	Amiba int `json:"amiba" validate:"gte=0"`
	Other int `json:"other" validate:"gte=0"`
	Total int `json:"total" validate:"gte=0"`
}

// SubTotal is the sum of the four categories
func (v Voice) SubTotal() int { return v.Sin + v.Jaggy + v.Amiba + v.Other }

// Rare is the rare-category count
func (v Voice) Rare() int { return v.Jaggy + v.Amiba }

// Bell counts bell hits by line. Middle is the common line, Diagonal the rare one.
type Bell struct {
	Diagonal int `json:"diagonal" validate:"gte=0"`
	Middle   int `json:"middle" validate:"gte=0"`
	Total    int `json:"total" validate:"gte=0"`
}

// WatermelonNormal is the weak-watermelon record used by the estimator
type WatermelonNormal struct {
	Total int `json:"total" validate:"gte=0"`
	Hit   int `json:"hit" validate:"gte=0"`
}

// WatermelonHeaven is tracked for export but carries no likelihood
type WatermelonHeaven struct {
	Total           int `json:"total" validate:"gte=0"`
	Hit             int `json:"hit" validate:"gte=0"`
	ConsecutiveMiss int `json:"consecutiveMiss" validate:"gte=0"`
}

type Watermelon struct {
	Normal WatermelonNormal `json:"normal"`
	Heaven WatermelonHeaven `json:"heaven"`
}

// InitialHit counts first hits over the games played
type InitialHit struct {
	TotalGames    int `json:"totalGames" validate:"gte=0"`
	TotalHits     int `json:"totalHits" validate:"gte=0"`
	CherryHits    int `json:"cherryHits" validate:"gte=0"`
	NonCherryHits int `json:"nonCherryHits" validate:"gte=0"`
}

// ModeTransition counts what followed each AT end
type ModeTransition struct {
	TotalATEnds     int `json:"totalATEnds" validate:"gte=0"`
	JagiStageStarts int `json:"jagiStageStarts" validate:"gte=0"`
	HeavenStarts    int `json:"heavenStarts" validate:"gte=0"`
}

// State is the treatment category of the session's cumulative win/loss
type State string

const (
	StateCold   State = "cold"
	StateNormal State = "normal"
	StateHot    State = "hot"
)

// Valid reports whether s is a known state; the empty state is not valid
func (s State) Valid() bool {
	return s == StateCold || s == StateNormal || s == StateHot
}

// ParseState validates a state label
func ParseState(label string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(label)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidState, label)
	}
	return s, nil
}

// Game carries session context. State labels the result and never changes the probabilities.
type Game struct {
	CurrentGames    int   `json:"currentGames" validate:"gte=0"`
	TotalDifference int   `json:"totalDifference"`
	State           State `json:"state,omitempty" validate:"omitempty,oneof=cold normal hot"`
}

// Counters is the complete raw input of one analysis
type Counters struct {
	Game           Game           `json:"game"`
	Voice          Voice          `json:"voice"`
	Bell           Bell           `json:"bell"`
	Watermelon     Watermelon     `json:"watermelon"`
	InitialHit     InitialHit     `json:"initialHit"`
	ModeTransition ModeTransition `json:"modeTransition"`
}
