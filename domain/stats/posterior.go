package stats

import (
	"slotsense/domain/setting"
)

// Posterior maps each setting to its probability in percent
type Posterior map[setting.Setting]float64

// UniformPercent is each setting's share when nothing is known
const UniformPercent = 100.0 / float64(setting.Count)

// UniformPosterior returns 20% per setting
func UniformPosterior() Posterior {
	p := make(Posterior, setting.Count)
	for _, s := range setting.All() {
		p[s] = UniformPercent
	}
	return p
}

// Sum adds the percentages in ascending setting order
func (p Posterior) Sum() float64 {
	total := 0.0
	for _, s := range setting.All() {
		total += p[s]
	}
	return total
}

// Max returns the most likely setting and its probability.
// Ties resolve to the lowest label.
func (p Posterior) Max() (setting.Setting, float64) {
	best := setting.S1
	bestProb := p[setting.S1]
	for _, s := range setting.All()[1:] {
		if p[s] > bestProb {
			best, bestProb = s, p[s]
		}
	}
	return best, bestProb
}

// High is P(5)+P(6)
func (p Posterior) High() float64 { return p[setting.S5] + p[setting.S6] }

// Low is P(1)+P(2)
func (p Posterior) Low() float64 { return p[setting.S1] + p[setting.S2] }

// Values returns the percentages in ascending setting order
func (p Posterior) Values() []float64 {
	out := make([]float64, 0, setting.Count)
	for _, s := range setting.All() {
		out = append(out, p[s])
	}
	return out
}
