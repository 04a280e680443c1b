// Package estimator computes the posterior distribution over settings from
// an evidence set.
package estimator

import (
	"math"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	"slotsense/domain/stats"
	"slotsense/internal/rates"
)

// Prior is the uniform prior probability of each setting
const Prior = 1.0 / float64(setting.Count)

// Estimator combines per-channel likelihoods into a posterior. It holds no
// mutable state and is safe for concurrent use.
type Estimator struct {
	rates rates.Table
}

// New creates an estimator over the given rate table
func New(table rates.Table) *Estimator {
	return &Estimator{rates: table}
}

// LogScore is ln(prior) plus the sum of ln(likelihood) over the set. A
// non-positive likelihood contributes LogFloor.
func (e *Estimator) LogScore(set evidence.Set, s setting.Setting) float64 {
	sum := 0.0
	for _, r := range set {
		l := e.Likelihood(r, s)
		if l > 0 && !math.IsNaN(l) {
			sum += math.Log(l)
		} else {
			sum += LogFloor
		}
	}
	return sum + math.Log(Prior)
}

// Posterior returns the percentage per setting. An empty set, or a set that
// leaves no mass anywhere, yields 20% per setting.
func (e *Estimator) Posterior(set evidence.Set) stats.Posterior {
	if set.IsEmpty() {
		return stats.UniformPosterior()
	}

	settings := setting.All()
	logScores := make([]float64, len(settings))
	maxLog := math.Inf(-1)
	for i, s := range settings {
		logScores[i] = e.LogScore(set, s)
		if logScores[i] > maxLog {
			maxLog = logScores[i]
		}
	}
	if math.IsInf(maxLog, 0) || math.IsNaN(maxLog) {
		return stats.UniformPosterior()
	}

	// shifting by the maximum leaves the normalized ratios unchanged and keeps
	// exp from underflowing when every channel is very unlikely
	scores := make([]float64, len(settings))
	total := 0.0
	for i := range settings {
		scores[i] = math.Exp(logScores[i] - maxLog)
		total += scores[i]
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return stats.UniformPosterior()
	}

	posterior := make(stats.Posterior, len(settings))
	for i, s := range settings {
		posterior[s] = scores[i] / total * 100
	}
	return posterior
}
