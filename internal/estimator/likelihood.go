package estimator

import (
	"math"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	"slotsense/internal/binomial"
)

// Calibrated likelihood parameters. The Gaussian variances set how sharply
// the bell and initial-hit channels separate settings.
const (
	BellVariance           = 1.0
	InitialHitVariance     = 0.0001
	BellFallbackLikelihood = 0.1

	// LogFloor replaces ln(0) so a single impossible channel cannot make a sum infinite
	LogFloor = -50.0
)

// Likelihood returns P(record | setting) under the channel's model.
// Records with no samples, or channels missing from the rate table, are neutral (1).
func (e *Estimator) Likelihood(r evidence.Record, s setting.Setting) float64 {
	if r == nil || r.SampleSize() <= 0 {
		return 1
	}
	expected, ok := e.rates.Rate(r.Channel(), s)
	if !ok {
		return 1
	}

	switch rec := r.(type) {
	case evidence.BellRecord:
		ratio, ok := rec.Ratio()
		if !ok {
			return BellFallbackLikelihood
		}
		return gaussian(ratio, expected, BellVariance)
	case evidence.InitialHitRecord:
		rate, ok := rec.Rate()
		if !ok {
			return 1
		}
		return gaussian(rate, expected, InitialHitVariance)
	case evidence.Binomial:
		return binomial.PMF(rec.Successes(), rec.Trials(), expected)
	}
	return 1
}

// gaussian is the unnormalized normal density; the missing constant cancels
// when the posterior is normalized.
func gaussian(observed, expected, variance float64) float64 {
	d := observed - expected
	return math.Exp(-(d * d) / (2 * variance))
}
