package evidence

import (
	"testing"

	"slotsense/domain/core"
	"slotsense/domain/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceHelpers(t *testing.T) {
	v := Voice{Sin: 20, Jaggy: 12, Amiba: 8, Other: 10, Total: 50}
	assert.Equal(t, 50, v.SubTotal())
	assert.Equal(t, 20, v.Rare())
}

func TestBellRatio(t *testing.T) {
	r, ok := BellRecord{Diagonal: 5, Middle: 55, Total: 60}.Ratio()
	require.True(t, ok)
	assert.InDelta(t, 11.0, r, 1e-12)

	_, ok = BellRecord{Diagonal: 0, Middle: 10, Total: 10}.Ratio()
	assert.False(t, ok)
}

func TestInitialHitRate(t *testing.T) {
	r, ok := InitialHitRecord{Games: 1500, Cherry: 2, NonCherry: 4}.Rate()
	require.True(t, ok)
	assert.InDelta(t, 4.0/1500.0, r, 1e-15)

	_, ok = InitialHitRecord{Games: 0, NonCherry: 1}.Rate()
	assert.False(t, ok)
}

func TestBinomialRecords(t *testing.T) {
	var records []Binomial = []Binomial{
		VoiceRecord{Rare: 3, Total: 10},
		WatermelonRecord{Hit: 3, Total: 10},
		ModeTransitionRecord{HeavenStarts: 3, ATEnds: 10},
	}
	for _, r := range records {
		assert.Equal(t, 3, r.Successes(), r.Channel())
		assert.Equal(t, 10, r.Trials(), r.Channel())
		assert.Equal(t, 10, r.SampleSize(), r.Channel())
	}

	// initial hits are judged as non-cherry hits out of games played
	var hit Binomial = InitialHitRecord{Games: 1500, Cherry: 2, NonCherry: 4}
	assert.Equal(t, 4, hit.Successes())
	assert.Equal(t, 1500, hit.Trials())
	assert.Equal(t, 4, hit.SampleSize())
}

func TestSetLookup(t *testing.T) {
	set := Set{VoiceRecord{Rare: 1, Total: 2}, ModeTransitionRecord{ATEnds: 3}}

	assert.False(t, set.IsEmpty())
	assert.Equal(t, []setting.Channel{setting.Voice, setting.ModeTransition}, set.Channels())

	r, ok := set.Get(setting.ModeTransition)
	require.True(t, ok)
	assert.Equal(t, 3, r.SampleSize())

	_, ok = set.Get(setting.Bell)
	assert.False(t, ok)
	assert.True(t, Set(nil).IsEmpty())
}

func TestParseState(t *testing.T) {
	s, err := ParseState(" HOT ")
	require.NoError(t, err)
	assert.Equal(t, StateHot, s)

	_, err = ParseState("lukewarm")
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.False(t, State("").Valid())
}
