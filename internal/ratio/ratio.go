// Package ratio derives comparison ratios from a posterior.
package ratio

import (
	"slotsense/domain/setting"
	"slotsense/domain/stats"
)

var pairwiseKeys = []struct {
	key     string
	against setting.Setting
}{
	{stats.Key6vs1, setting.S1},
	{stats.Key6vs2, setting.S2},
	{stats.Key6vs4, setting.S4},
	{stats.Key6vs5, setting.S5},
}

// Report returns P(6)/P(x) for x in {1,2,4,5} and (P5+P6)/(P1+P2).
// A zero denominator yields +Inf.
func Report(p stats.Posterior) stats.ProbabilityRatios {
	ratios := make(stats.ProbabilityRatios, len(pairwiseKeys)+1)
	six := p[setting.S6]

	for _, pk := range pairwiseKeys {
		ratios[pk.key] = divide(six, p[pk.against])
	}
	ratios[stats.KeyHighVsLow] = divide(p.High(), p.Low())

	return ratios
}

func divide(num, den float64) stats.Ratio {
	if den > 0 {
		return stats.Ratio(num / den)
	}
	return stats.Inf
}
