package testkit

import (
	"math"
	"math/rand"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	"slotsense/internal/rates"
)

// Rates of events that carry no likelihood and only make sessions look real
const (
	cherryHitRate   = 1.0 / 1500
	jagiStageRate   = 0.25
	heavenWaterRate = 0.35
	medalsPerGame   = 2.0
)

// SessionGeneratorConfig configures the synthetic session generator
type SessionGeneratorConfig struct {
	TrueSetting      setting.Setting `json:"true_setting"`
	Games            int             `json:"games"`
	VoiceTriggers    int             `json:"voice_triggers"`
	BellHits         int             `json:"bell_hits"`
	WatermelonTrials int             `json:"watermelon_trials"`
	ATEnds           int             `json:"at_ends"`
	Seed             int64           `json:"seed"`
}

// DefaultSessionConfig returns a long session for the given setting
func DefaultSessionConfig(s setting.Setting) SessionGeneratorConfig {
	return SessionGeneratorConfig{
		TrueSetting:      s,
		Games:            8000,
		VoiceTriggers:    400,
		BellHits:         600,
		WatermelonTrials: 150,
		ATEnds:           40,
		Seed:             42,
	}
}

// SessionGenerator draws counters from the rate table for a known setting
type SessionGenerator struct {
	config SessionGeneratorConfig
	rates  rates.Table
	rng    *rand.Rand
}

// NewSessionGenerator creates a new session generator
func NewSessionGenerator(config SessionGeneratorConfig, table rates.Table) *SessionGenerator {
	return &SessionGenerator{
		config: config,
		rates:  table,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate simulates one session. The same config and table always yield
// the same counters.
func (g *SessionGenerator) Generate() evidence.Counters {
	s := g.config.TrueSetting
	var c evidence.Counters

	voiceRate, _ := g.rates.ProbabilityOf(setting.Voice, s)
	for i := 0; i < g.config.VoiceTriggers; i++ {
		rare := g.hit(voiceRate)
		half := g.hit(0.5)
		switch {
		case rare && half:
			c.Voice.Jaggy++
		case rare:
			c.Voice.Amiba++
		case half:
			c.Voice.Sin++
		default:
			c.Voice.Other++
		}
	}
	c.Voice.Total = c.Voice.SubTotal()

	diagonalRate, _ := g.rates.ProbabilityOf(setting.Bell, s)
	for i := 0; i < g.config.BellHits; i++ {
		if g.hit(diagonalRate) {
			c.Bell.Diagonal++
		} else {
			c.Bell.Middle++
		}
	}
	c.Bell.Total = c.Bell.Diagonal + c.Bell.Middle

	melonRate, _ := g.rates.ProbabilityOf(setting.Watermelon, s)
	c.Watermelon.Normal.Total = g.config.WatermelonTrials
	c.Watermelon.Normal.Hit = g.count(g.config.WatermelonTrials, melonRate)
	c.Watermelon.Heaven.Total = g.config.WatermelonTrials / 5
	c.Watermelon.Heaven.Hit = g.count(c.Watermelon.Heaven.Total, heavenWaterRate)
	c.Watermelon.Heaven.ConsecutiveMiss = g.rng.Intn(4)

	initialRate, _ := g.rates.ProbabilityOf(setting.InitialHit, s)
	c.InitialHit.TotalGames = g.config.Games
	c.InitialHit.NonCherryHits = g.count(g.config.Games, initialRate)
	c.InitialHit.CherryHits = g.count(g.config.Games, cherryHitRate)
	c.InitialHit.TotalHits = c.InitialHit.CherryHits + c.InitialHit.NonCherryHits

	heavenRate, _ := g.rates.ProbabilityOf(setting.ModeTransition, s)
	c.ModeTransition.TotalATEnds = g.config.ATEnds
	for i := 0; i < g.config.ATEnds; i++ {
		switch {
		case g.hit(heavenRate):
			c.ModeTransition.HeavenStarts++
		case g.hit(jagiStageRate):
			c.ModeTransition.JagiStageStarts++
		}
	}

	c.Game.CurrentGames = g.config.Games
	c.Game.TotalDifference = int(math.Round(g.rng.NormFloat64() * medalsPerGame * math.Sqrt(float64(g.config.Games)) * 10))

	return c
}

// GenerateMany simulates n independent sessions
func (g *SessionGenerator) GenerateMany(n int) []evidence.Counters {
	out := make([]evidence.Counters, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Generate())
	}
	return out
}

func (g *SessionGenerator) hit(p float64) bool {
	return g.rng.Float64() < p
}

func (g *SessionGenerator) count(trials int, p float64) int {
	n := 0
	for i := 0; i < trials; i++ {
		if g.hit(p) {
			n++
		}
	}
	return n
}
