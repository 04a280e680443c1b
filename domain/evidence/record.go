package evidence

import (
	"slotsense/domain/setting"
)

// Record is one channel's normalized evidence. Each concrete type carries
// exactly the fields its likelihood needs.
type Record interface {
	Channel() setting.Channel
	// SampleSize is the channel-defined size that decides inclusion
	SampleSize() int
}

// Binomial is implemented by records observed as successes out of trials
type Binomial interface {
	Record
	Successes() int
	Trials() int
}

type VoiceRecord struct {
	Rare  int `json:"rare"`
	Total int `json:"total"`
}

func (r VoiceRecord) Channel() setting.Channel { return setting.Voice }
func (r VoiceRecord) SampleSize() int          { return r.Total }
func (r VoiceRecord) Successes() int           { return r.Rare }
func (r VoiceRecord) Trials() int              { return r.Total }

type BellRecord struct {
	Diagonal int `json:"diagonal"`
	Middle   int `json:"middle"`
	Total    int `json:"total"`
}

func (r BellRecord) Channel() setting.Channel { return setting.Bell }
func (r BellRecord) SampleSize() int          { return r.Total }

// Ratio returns middle/diagonal; ok is false when the diagonal count is zero
func (r BellRecord) Ratio() (ratio float64, ok bool) {
	if r.Diagonal == 0 {
		return 0, false
	}
	return float64(r.Middle) / float64(r.Diagonal), true
}

type WatermelonRecord struct {
	Hit   int `json:"hit"`
	Total int `json:"total"`
}

func (r WatermelonRecord) Channel() setting.Channel { return setting.Watermelon }
func (r WatermelonRecord) SampleSize() int          { return r.Total }
func (r WatermelonRecord) Successes() int           { return r.Hit }
func (r WatermelonRecord) Trials() int              { return r.Total }

type InitialHitRecord struct {
	Games     int `json:"games"`
	Cherry    int `json:"cherry"`
	NonCherry int `json:"nonCherry"`
}

func (r InitialHitRecord) Channel() setting.Channel { return setting.InitialHit }
func (r InitialHitRecord) SampleSize() int          { return r.NonCherry }
func (r InitialHitRecord) Successes() int           { return r.NonCherry }
func (r InitialHitRecord) Trials() int              { return r.Games }

// Rate returns the observed non-cherry hit rate per game; ok is false with no games
func (r InitialHitRecord) Rate() (rate float64, ok bool) {
	if r.Games <= 0 {
		return 0, false
	}
	return float64(r.NonCherry) / float64(r.Games), true
}

type ModeTransitionRecord struct {
	ATEnds       int `json:"atEnds"`
	HeavenStarts int `json:"heavenStarts"`
}

func (r ModeTransitionRecord) Channel() setting.Channel { return setting.ModeTransition }
func (r ModeTransitionRecord) SampleSize() int          { return r.ATEnds }
func (r ModeTransitionRecord) Successes() int           { return r.HeavenStarts }
func (r ModeTransitionRecord) Trials() int              { return r.ATEnds }

// Set is an ordered evidence set. A channel missing from the set has no opinion.
type Set []Record

// IsEmpty reports whether no channel contributed
func (s Set) IsEmpty() bool { return len(s) == 0 }

// Get returns the record for a channel
func (s Set) Get(ch setting.Channel) (Record, bool) {
	for _, r := range s {
		if r.Channel() == ch {
			return r, true
		}
	}
	return nil, false
}

// Channels lists the contributing channels in set order
func (s Set) Channels() []setting.Channel {
	out := make([]setting.Channel, 0, len(s))
	for _, r := range s {
		out = append(out, r.Channel())
	}
	return out
}
