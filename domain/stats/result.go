package stats

import (
	"strings"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/setting"
)

// Confidence buckets used by the variance judge and the synthesizer
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
)

// Recommendation is the synthesized advice
type Recommendation string

const (
	RecommendStrongContinue Recommendation = "strong continue"
	RecommendContinue       Recommendation = "continue"
	RecommendStop           Recommendation = "stop"
	RecommendWait           Recommendation = "wait-and-see"
)

// Strength labels the aggregate variance ratio
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// ChannelVariance is the luck-vs-skill diagnostic for one channel.
// UpperVariance and NormalProb are percentages.
type ChannelVariance struct {
	Channel       setting.Channel `json:"channel"`
	UpperVariance float64         `json:"upperVariance"`
	NormalProb    float64         `json:"normalProb"`
	Ratio         float64         `json:"ratio"`
	Conclusion    string          `json:"conclusion"`
	Confidence    Confidence      `json:"confidence"`
}

// VarianceVerdict aggregates the per-channel diagnostics
type VarianceVerdict struct {
	Channels          []ChannelVariance `json:"channels"`
	OverallRatio      float64           `json:"overallRatio"`
	OverallConclusion string            `json:"overallConclusion"`
	ValidChannels     int               `json:"validChannels"`
}

// Conclusion is the output of the rule cascade
type Conclusion struct {
	MostLikelySetting      setting.Setting `json:"mostLikelySetting"`
	MaxProbability         float64         `json:"maxProbability"`
	HighSettingProbability float64         `json:"highSettingProbability"`
	Recommendation         Recommendation  `json:"recommendation"`
	ConfidenceLevel        Confidence      `json:"confidenceLevel"`
	Reasoning              []string        `json:"reasoning"`
	StatisticalStrength    Strength        `json:"statisticalStrength"`
}

// ReasoningText joins the triggered clauses in order
func (c Conclusion) ReasoningText() string {
	return strings.Join(c.Reasoning, "; ")
}

// AnalysisResult is the immutable output of one engine run
type AnalysisResult struct {
	Posterior   Posterior         `json:"settingProbabilities"`
	Ratios      ProbabilityRatios `json:"probabilityRatios"`
	Variance    VarianceVerdict   `json:"varianceAnalysis"`
	Conclusion  Conclusion        `json:"statisticalConclusion"`
	Channels    []setting.Channel `json:"channels"`
	State       evidence.State    `json:"state,omitempty"`
	Fingerprint core.Hash         `json:"fingerprint,omitempty"`
}

// ComputeFingerprint hashes the result with its own fingerprint cleared
func (r AnalysisResult) ComputeFingerprint() (core.Hash, error) {
	r.Fingerprint = ""
	return core.ComputeJSONHash(r)
}
