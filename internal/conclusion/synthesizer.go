// Package conclusion turns a posterior and a variance verdict into a
// recommendation with an ordered reasoning trail.
package conclusion

import (
	"fmt"

	"slotsense/domain/stats"
)

// Cascade thresholds, in percent
const (
	VeryHighMax  = 70.0
	HighMax      = 50.0
	HighGroupMin = 60.0
	LowGroupMin  = 50.0
	FlatMax      = 30.0
)

// Aggregate variance thresholds
const (
	StrongVariance   = 20.0
	NotableVariance  = 10.0
	ModerateVariance = 5.0
)

// Synthesize runs the rule cascade. The first matching rule sets the
// recommendation and confidence; the variance checks may only append
// reasoning or upgrade wait-and-see to continue.
func Synthesize(p stats.Posterior, v stats.VarianceVerdict) stats.Conclusion {
	mostLikely, maxProb := p.Max()
	high, low := p.High(), p.Low()
	lowLeading := mostLikely.IsLow()

	c := stats.Conclusion{
		MostLikelySetting:      mostLikely,
		MaxProbability:         maxProb,
		HighSettingProbability: high,
		Recommendation:         stats.RecommendWait,
		ConfidenceLevel:        stats.ConfidenceLow,
		Reasoning:              []string{},
	}

	// a leading low setting must never fall into a continue rule
	switch {
	case maxProb > VeryHighMax && !lowLeading:
		c.Recommendation = stats.RecommendStrongContinue
		c.ConfidenceLevel = stats.ConfidenceVeryHigh
		c.Reasoning = append(c.Reasoning, fmt.Sprintf("setting %s is very likely at %.1f%%", mostLikely, maxProb))
	case maxProb > HighMax && !lowLeading:
		c.Recommendation = stats.RecommendContinue
		c.ConfidenceLevel = stats.ConfidenceHigh
		c.Reasoning = append(c.Reasoning, fmt.Sprintf("setting %s is likely at %.1f%%", mostLikely, maxProb))
	case high > HighGroupMin:
		c.Recommendation = stats.RecommendContinue
		c.ConfidenceLevel = stats.ConfidenceMedium
		c.Reasoning = append(c.Reasoning, fmt.Sprintf("high settings (5-6) total %.1f%%", high))
	case low > LowGroupMin && (maxProb < FlatMax || lowLeading):
		c.Recommendation = stats.RecommendStop
		c.ConfidenceLevel = stats.ConfidenceMedium
		c.Reasoning = append(c.Reasoning, fmt.Sprintf("low settings (1-2) total %.1f%%", low))
	}

	switch {
	case v.OverallRatio > StrongVariance:
		c.Reasoning = append(c.Reasoning, "multiple channels strongly indicate a high setting")
		if c.Recommendation == stats.RecommendWait {
			c.Recommendation = stats.RecommendContinue
		}
	case v.OverallRatio > NotableVariance:
		c.Reasoning = append(c.Reasoning, "a high setting is statistically likely")
	}

	c.StatisticalStrength = Strength(v.OverallRatio)
	return c
}

// Strength labels an aggregate variance ratio
func Strength(ratio float64) stats.Strength {
	switch {
	case ratio > NotableVariance:
		return stats.StrengthStrong
	case ratio > ModerateVariance:
		return stats.StrengthModerate
	}
	return stats.StrengthWeak
}

