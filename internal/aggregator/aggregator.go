// Package aggregator turns raw session counters into an evidence set.
package aggregator

import (
	"slotsense/domain/evidence"
)

// Aggregate builds the evidence set in channel order. A channel whose
// sample size is zero is left out; it never counts against any setting.
func Aggregate(c evidence.Counters) evidence.Set {
	set := make(evidence.Set, 0, 5)

	if voice, ok := voiceRecord(c.Voice); ok {
		set = append(set, voice)
	}
	if bell, ok := bellRecord(c.Bell); ok {
		set = append(set, bell)
	}
	if c.Watermelon.Normal.Total > 0 {
		set = append(set, evidence.WatermelonRecord{
			Hit:   c.Watermelon.Normal.Hit,
			Total: c.Watermelon.Normal.Total,
		})
	}
	if c.InitialHit.NonCherryHits > 0 && c.InitialHit.TotalGames > 0 {
		set = append(set, evidence.InitialHitRecord{
			Games:     c.InitialHit.TotalGames,
			Cherry:    c.InitialHit.CherryHits,
			NonCherry: c.InitialHit.NonCherryHits,
		})
	}
	if c.ModeTransition.TotalATEnds > 0 {
		set = append(set, evidence.ModeTransitionRecord{
			ATEnds:       c.ModeTransition.TotalATEnds,
			HeavenStarts: c.ModeTransition.HeavenStarts,
		})
	}

	return set
}

// A zero total with non-zero categories means the caller left the total blank
func voiceRecord(v evidence.Voice) (evidence.VoiceRecord, bool) {
	total := v.Total
	if total == 0 {
		total = v.SubTotal()
	}
	if total <= 0 {
		return evidence.VoiceRecord{}, false
	}
	return evidence.VoiceRecord{Rare: v.Rare(), Total: total}, true
}

func bellRecord(b evidence.Bell) (evidence.BellRecord, bool) {
	total := b.Total
	if total == 0 {
		total = b.Diagonal + b.Middle
	}
	if total <= 0 {
		return evidence.BellRecord{}, false
	}
	return evidence.BellRecord{Diagonal: b.Diagonal, Middle: b.Middle, Total: total}, true
}
