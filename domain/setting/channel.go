package setting

import (
	"fmt"

	"slotsense/domain/core"
)

// Channel is a category of observable event used as independent evidence
type Channel string

const (
	Voice          Channel = "voice"
	Bell           Channel = "bell"
	Watermelon     Channel = "watermelon"
	InitialHit     Channel = "initialHit"
	ModeTransition Channel = "modeTransition"
)

var channels = [...]Channel{Voice, Bell, Watermelon, InitialHit, ModeTransition}

// Channels returns every channel in evaluation order
func Channels() []Channel {
	out := make([]Channel, len(channels))
	copy(out, channels[:])
	return out
}

// Valid reports whether c is a known channel
func (c Channel) Valid() bool {
	for _, known := range channels {
		if c == known {
			return true
		}
	}
	return false
}

// IsProbability reports whether the channel's rate is a probability in [0,1].
// Bell rates are common:rare ratios instead.
func (c Channel) IsProbability() bool {
	return c != Bell
}

func (c Channel) String() string { return string(c) }

// ParseChannel validates a channel name
func ParseChannel(name string) (Channel, error) {
	c := Channel(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidChannel, name)
	}
	return c, nil
}
