package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Ratio is a positive real or +Inf. JSON has no infinity literal, so +Inf is
// encoded as the string "+Inf" and decoded back without loss.
type Ratio float64

const infLiteral = "+Inf"

// Inf is the ratio reported for a zero denominator
var Inf = Ratio(math.Inf(1))

func (r Ratio) IsInf() bool { return math.IsInf(float64(r), 1) }

func (r Ratio) Float64() float64 { return float64(r) }

func (r Ratio) String() string {
	if r.IsInf() {
		return infLiteral
	}
	return strconv.FormatFloat(float64(r), 'g', -1, 64)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInf() {
		return []byte(`"` + infLiteral + `"`), nil
	}
	if math.IsNaN(float64(r)) || math.IsInf(float64(r), -1) {
		return nil, fmt.Errorf("ratio %v is not representable", float64(r))
	}
	return json.Marshal(float64(r))
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case infLiteral, "Infinity", "Inf":
			*r = Inf
			return nil
		}
		return fmt.Errorf("invalid ratio %q", s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// Ratio keys
const (
	Key6vs1      = "6vs1"
	Key6vs2      = "6vs2"
	Key6vs4      = "6vs4"
	Key6vs5      = "6vs5"
	KeyHighVsLow = "highVsLow"
)

// ProbabilityRatios maps comparison keys to ratios
type ProbabilityRatios map[string]Ratio
