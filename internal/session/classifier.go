// Package session labels a play session by its cumulative win/loss.
package session

import "slotsense/domain/evidence"

// Treatment boundaries on the cumulative medal difference
const (
	ColdThreshold = -1500
	HotThreshold  = 1500
)

// Classify maps a cumulative difference to its treatment state
func Classify(difference int) evidence.State {
	switch {
	case difference <= ColdThreshold:
		return evidence.StateCold
	case difference >= HotThreshold:
		return evidence.StateHot
	}
	return evidence.StateNormal
}

// Resolve returns the game's explicit state, or classifies it from the
// difference when the caller left it blank.
func Resolve(g evidence.Game) evidence.State {
	if g.State != "" {
		return g.State
	}
	return Classify(g.TotalDifference)
}
