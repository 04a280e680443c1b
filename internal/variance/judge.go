// Package variance separates a lucky streak from a streak that reflects the
// true setting, independently of the posterior.
package variance

import (
	"math"

	"github.com/montanaflynn/stats"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	domainstats "slotsense/domain/stats"
	"slotsense/internal/binomial"
	"slotsense/internal/rates"
)

// UpperVarianceFloor bounds the denominator of the luck-vs-skill ratio (in percent)
const UpperVarianceFloor = 0.01

// Channel conclusions
const (
	ConclusionCertainSkill = "statistically certain skill"
	ConclusionHighSkill    = "high-confidence skill"
	ConclusionSkillLeaning = "skill-leaning"
	ConclusionSlightSkill  = "slightly skill-leaning"
	ConclusionInconclusive = "inconclusive"
)

// Aggregate conclusions
const (
	OverallCertainHigh       = "multiple channels: high setting statistically certain"
	OverallStronglyIndicated = "multiple channels: high setting strongly indicated"
	OverallIndicated         = "high setting statistically indicated"
	OverallPossible          = "high setting possible"
)

// Judge compares how extreme an observation is under setting 1 with how
// typical it is under setting 6.
type Judge struct {
	rates rates.Table
}

// New creates a judge over the given rate table
func New(table rates.Table) *Judge {
	return &Judge{rates: table}
}

// JudgeChannel scores one binomially observed channel. ok is false when the
// record has no trials or the table lacks the channel.
func (j *Judge) JudgeChannel(rec evidence.Binomial) (domainstats.ChannelVariance, bool) {
	if rec.Trials() <= 0 {
		return domainstats.ChannelVariance{}, false
	}
	low, ok := j.rates.Rate(rec.Channel(), setting.S1)
	if !ok {
		return domainstats.ChannelVariance{}, false
	}
	high, ok := j.rates.Rate(rec.Channel(), setting.S6)
	if !ok {
		return domainstats.ChannelVariance{}, false
	}

	upper := binomial.UpperTail(rec.Successes(), rec.Trials(), low) * 100
	normal := binomial.PMF(rec.Successes(), rec.Trials(), high) * 100
	ratio := normal / math.Max(upper, UpperVarianceFloor)
	conclusion, confidence := Classify(ratio)

	return domainstats.ChannelVariance{
		Channel:       rec.Channel(),
		UpperVariance: upper,
		NormalProb:    normal,
		Ratio:         ratio,
		Conclusion:    conclusion,
		Confidence:    confidence,
	}, true
}

// Judge scores every binomial channel in the set and aggregates the valid
// ones by geometric mean. Bell carries a ratio rather than a probability, so
// it is counted as a neutral channel with ratio 1.
func (j *Judge) Judge(set evidence.Set) domainstats.VarianceVerdict {
	verdict := domainstats.VarianceVerdict{
		Channels:          []domainstats.ChannelVariance{},
		OverallRatio:      1,
		OverallConclusion: ConclusionInconclusive,
	}

	var logRatios []float64
	for _, r := range set {
		rec, ok := r.(evidence.Binomial)
		if !ok {
			verdict.Channels = append(verdict.Channels, Neutral(r.Channel()))
			logRatios = append(logRatios, 0)
			continue
		}
		cv, ok := j.JudgeChannel(rec)
		if !ok || cv.UpperVariance <= 0 || cv.NormalProb <= 0 {
			continue
		}
		verdict.Channels = append(verdict.Channels, cv)
		logRatios = append(logRatios, math.Log(cv.Ratio))
	}

	verdict.ValidChannels = len(verdict.Channels)
	if len(logRatios) > 0 {
		// geometric mean in log space; a plain product can underflow
		meanLog, err := stats.Mean(logRatios)
		if err == nil {
			verdict.OverallRatio = math.Exp(meanLog)
		}
	}
	verdict.OverallConclusion = ClassifyOverall(verdict.OverallRatio)

	return verdict
}

// Neutral is the verdict for a channel with no exceedance probability
func Neutral(ch setting.Channel) domainstats.ChannelVariance {
	conclusion, confidence := Classify(1)
	return domainstats.ChannelVariance{
		Channel:       ch,
		UpperVariance: 50,
		NormalProb:    50,
		Ratio:         1,
		Conclusion:    conclusion,
		Confidence:    confidence,
	}
}

// Classify maps a channel ratio to its conclusion and confidence bucket
func Classify(ratio float64) (string, domainstats.Confidence) {
	conclusion := ConclusionInconclusive
	switch {
	case ratio > 20:
		conclusion = ConclusionCertainSkill
	case ratio > 10:
		conclusion = ConclusionHighSkill
	case ratio > 5:
		conclusion = ConclusionSkillLeaning
	case ratio > 2:
		conclusion = ConclusionSlightSkill
	}

	confidence := domainstats.ConfidenceLow
	switch {
	case ratio > 10:
		confidence = domainstats.ConfidenceHigh
	case ratio > 5:
		confidence = domainstats.ConfidenceMedium
	}
	return conclusion, confidence
}

// ClassifyOverall maps the aggregate ratio to its conclusion
func ClassifyOverall(ratio float64) string {
	switch {
	case ratio > 50:
		return OverallCertainHigh
	case ratio > 20:
		return OverallStronglyIndicated
	case ratio > 10:
		return OverallIndicated
	case ratio > 5:
		return OverallPossible
	}
	return ConclusionInconclusive
}
