// Package setting defines the closed set of machine settings and evidence
// channels the estimator reasons about.
package setting

import (
	"fmt"
	"strconv"
	"strings"

	"slotsense/domain/core"
)

// Setting is a machine configuration label. Only 1, 2, 4, 5 and 6 exist;
// label 3 is never produced or consumed.
type Setting int

const (
	S1 Setting = 1
	S2 Setting = 2
	S4 Setting = 4
	S5 Setting = 5
	S6 Setting = 6
)

var all = [...]Setting{S1, S2, S4, S5, S6}

// All returns the admissible settings in ascending order
func All() []Setting {
	out := make([]Setting, len(all))
	copy(out, all[:])
	return out
}

// Count is the number of admissible settings
const Count = len(all)

// Valid reports whether s is one of the admissible labels
func (s Setting) Valid() bool {
	switch s {
	case S1, S2, S4, S5, S6:
		return true
	}
	return false
}

// IsLow reports membership in the low group {1,2}
func (s Setting) IsLow() bool { return s == S1 || s == S2 }

// IsHigh reports membership in the high group {5,6}
func (s Setting) IsHigh() bool { return s == S5 || s == S6 }

func (s Setting) String() string {
	return strconv.Itoa(int(s))
}

// Parse converts a decimal label into a Setting
func Parse(label string) (Setting, error) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidSetting, label)
	}
	s := Setting(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", core.ErrInvalidSetting, n)
	}
	return s, nil
}

// MarshalText encodes the decimal label, which also makes Setting usable as a JSON map key
func (s Setting) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidSetting, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Setting) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
