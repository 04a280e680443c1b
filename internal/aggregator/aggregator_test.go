package aggregator

import (
	"testing"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateAllZeroIsEmpty(t *testing.T) {
	set := Aggregate(evidence.Counters{})
	assert.True(t, set.IsEmpty())
}

func TestAggregateFullSession(t *testing.T) {
	c := evidence.Counters{
		Voice:          evidence.Voice{Sin: 20, Jaggy: 12, Amiba: 8, Other: 10, Total: 50},
		Bell:           evidence.Bell{Diagonal: 80, Middle: 15, Total: 95},
		Watermelon:     evidence.Watermelon{Normal: evidence.WatermelonNormal{Total: 25, Hit: 5}},
		InitialHit:     evidence.InitialHit{TotalGames: 1500, TotalHits: 6, CherryHits: 2, NonCherryHits: 4},
		ModeTransition: evidence.ModeTransition{TotalATEnds: 6, JagiStageStarts: 3, HeavenStarts: 2},
	}

	set := Aggregate(c)

	require.Len(t, set, 5)
	assert.Equal(t, setting.Channels(), set.Channels())
	assert.Equal(t, evidence.VoiceRecord{Rare: 20, Total: 50}, set[0])
	assert.Equal(t, evidence.BellRecord{Diagonal: 80, Middle: 15, Total: 95}, set[1])
	assert.Equal(t, evidence.WatermelonRecord{Hit: 5, Total: 25}, set[2])
	assert.Equal(t, evidence.InitialHitRecord{Games: 1500, Cherry: 2, NonCherry: 4}, set[3])
	assert.Equal(t, evidence.ModeTransitionRecord{ATEnds: 6, HeavenStarts: 2}, set[4])
}

func TestAggregateOmitsZeroSampleChannels(t *testing.T) {
	tests := []struct {
		name     string
		counters evidence.Counters
		expected []setting.Channel
	}{
		{
			name:     "watermelon heaven only",
			counters: evidence.Counters{Watermelon: evidence.Watermelon{Heaven: evidence.WatermelonHeaven{Total: 8, Hit: 3}}},
			expected: []setting.Channel{},
		},
		{
			name:     "initial hit without non-cherry hits",
			counters: evidence.Counters{InitialHit: evidence.InitialHit{TotalGames: 900, TotalHits: 1, CherryHits: 1}},
			expected: []setting.Channel{},
		},
		{
			name:     "initial hit without games",
			counters: evidence.Counters{InitialHit: evidence.InitialHit{NonCherryHits: 2}},
			expected: []setting.Channel{},
		},
		{
			name:     "mode transition without AT ends",
			counters: evidence.Counters{ModeTransition: evidence.ModeTransition{JagiStageStarts: 1}},
			expected: []setting.Channel{},
		},
		{
			name: "voice and mode transition",
			counters: evidence.Counters{
				Voice:          evidence.Voice{Sin: 1, Total: 1},
				ModeTransition: evidence.ModeTransition{TotalATEnds: 2},
			},
			expected: []setting.Channel{setting.Voice, setting.ModeTransition},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Aggregate(tt.counters).Channels())
		})
	}
}

func TestAggregateDerivesBlankTotals(t *testing.T) {
	c := evidence.Counters{
		Voice: evidence.Voice{Sin: 25, Jaggy: 3, Amiba: 2, Other: 20},
		Bell:  evidence.Bell{Diagonal: 5, Middle: 55},
	}

	set := Aggregate(c)

	require.Len(t, set, 2)
	assert.Equal(t, evidence.VoiceRecord{Rare: 5, Total: 50}, set[0])
	assert.Equal(t, evidence.BellRecord{Diagonal: 5, Middle: 55, Total: 60}, set[1])
}

func TestAggregateKeepsBellWithZeroDiagonal(t *testing.T) {
	set := Aggregate(evidence.Counters{Bell: evidence.Bell{Middle: 12, Total: 12}})
	require.Len(t, set, 1)

	bell := set[0].(evidence.BellRecord)
	_, ok := bell.Ratio()
	assert.False(t, ok)
}
