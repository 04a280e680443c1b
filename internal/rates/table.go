// Package rates holds the expected per-setting parameter of every evidence channel.
package rates

import (
	"fmt"
	"math"

	"slotsense/domain/core"
	"slotsense/domain/setting"
)

// Table maps Channel x Setting to an expected parameter: a probability for
// voice, watermelon, initialHit and modeTransition, and the expected
// common:rare (middle:diagonal) ratio for bell. A Table has no mutators.
type Table struct {
	values map[setting.Channel]map[setting.Setting]float64
}

var defaultTable = mustNew(map[setting.Channel]map[setting.Setting]float64{
	setting.Voice: {
		setting.S1: 0.153, setting.S2: 0.168, setting.S4: 0.250, setting.S5: 0.268, setting.S6: 0.287,
	},
	setting.Bell: {
		setting.S1: 11.0, setting.S2: 10.0, setting.S4: 8.5, setting.S5: 7.5, setting.S6: 6.5,
	},
	setting.Watermelon: {
		setting.S1: 0.14, setting.S2: 0.15, setting.S4: 0.17, setting.S5: 0.18, setting.S6: 0.1916,
	},
	setting.InitialHit: {
		setting.S1: 1.0 / 600, setting.S2: 1.0 / 580, setting.S4: 1.0 / 520, setting.S5: 1.0 / 500, setting.S6: 1.0 / 480,
	},
	setting.ModeTransition: {
		setting.S1: 0.176, setting.S2: 0.183, setting.S4: 0.235, setting.S5: 0.261, setting.S6: 0.279,
	},
})

// Default returns the machine's published rate table
func Default() Table {
	return defaultTable
}

// New builds a table from explicit entries. Every channel needs a finite
// entry for each of the five settings; probability channels must lie in [0,1]
// and bell ratios must be positive.
func New(entries map[setting.Channel]map[setting.Setting]float64) (Table, error) {
	values := make(map[setting.Channel]map[setting.Setting]float64, len(entries))

	for ch := range entries {
		if !ch.Valid() {
			return Table{}, fmt.Errorf("%w: %q", core.ErrInvalidChannel, ch)
		}
	}

	for _, ch := range setting.Channels() {
		row, ok := entries[ch]
		if !ok {
			return Table{}, core.NewRateTableError(ch.String(), "missing channel")
		}
		copied := make(map[setting.Setting]float64, setting.Count)
		for s, v := range row {
			if !s.Valid() {
				return Table{}, fmt.Errorf("%w: %d", core.ErrInvalidSetting, int(s))
			}
			copied[s] = v
		}
		for _, s := range setting.All() {
			v, ok := copied[s]
			if !ok {
				return Table{}, core.NewRateTableError(ch.String(), fmt.Sprintf("missing setting %s", s))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Table{}, core.NewRateTableError(ch.String(), fmt.Sprintf("setting %s is not finite", s))
			}
			if ch.IsProbability() && (v < 0 || v > 1) {
				return Table{}, core.NewRateTableError(ch.String(), fmt.Sprintf("setting %s rate %v outside [0,1]", s, v))
			}
			if !ch.IsProbability() && v <= 0 {
				return Table{}, core.NewRateTableError(ch.String(), fmt.Sprintf("setting %s ratio %v must be positive", s, v))
			}
		}
		values[ch] = copied
	}

	return Table{values: values}, nil
}

func mustNew(entries map[setting.Channel]map[setting.Setting]float64) Table {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Rate returns the expected parameter for a channel under a setting.
// ok is false for unknown keys or a zero Table.
func (t Table) Rate(ch setting.Channel, s setting.Setting) (rate float64, ok bool) {
	row, found := t.values[ch]
	if !found {
		return 0, false
	}
	rate, ok = row[s]
	return rate, ok
}

// Row returns a copy of one channel's entries
func (t Table) Row(ch setting.Channel) map[setting.Setting]float64 {
	row := t.values[ch]
	out := make(map[setting.Setting]float64, len(row))
	for s, v := range row {
		out[s] = v
	}
	return out
}

// ProbabilityOf returns the per-trial probability the channel's binomial view
// uses. Bell's ratio r becomes the diagonal share 1/(1+r).
func (t Table) ProbabilityOf(ch setting.Channel, s setting.Setting) (float64, bool) {
	rate, ok := t.Rate(ch, s)
	if !ok {
		return 0, false
	}
	if ch.IsProbability() {
		return rate, true
	}
	return 1 / (1 + rate), true
}
