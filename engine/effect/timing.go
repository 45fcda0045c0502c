package effect

import (
	"fmt"
	"strings"
)

// EndBehavior decides what happens when an effect's duration elapses.
type EndBehavior int

const (
	// EndBlendBack blends the effect out over BlendOut.
	EndBlendBack EndBehavior = iota
	// EndForceEnd retires the effect immediately.
	EndForceEnd
	// EndStay ignores the duration and keeps the effect until it is deactivated.
	EndStay
)

var endBehaviorNames = map[EndBehavior]string{
	EndBlendBack: "blend_back",
	EndForceEnd:  "force_end",
	EndStay:      "stay",
}

func (e EndBehavior) String() string {
	if name, ok := endBehaviorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EndBehavior(%d)", int(e))
}

func (e EndBehavior) MarshalText() ([]byte, error) {
	name, ok := endBehaviorNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown end behavior %d", int(e))
	}
	return []byte(name), nil
}

func (e *EndBehavior) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for behavior, name := range endBehaviorNames {
		if name == s {
			*e = behavior
			return nil
		}
	}
	return fmt.Errorf("unknown end behavior %q", s)
}

// Timing holds the temporal parameters shared by every modifier.
type Timing struct {
	// Duration is the active time before EndBehavior applies. Zero or less is unbounded.
	Duration float32 `yaml:"duration"`
	// BlendIn is the entry ramp in seconds. Zero steps to full weight.
	BlendIn float32 `yaml:"blend_in"`
	// BlendOut is the exit ramp in seconds. Zero drops to zero weight.
	BlendOut float32 `yaml:"blend_out"`
	// InterruptBlendTime replaces BlendOut for an Interrupt.
	InterruptBlendTime float32     `yaml:"interrupt_blend_time"`
	EndBehavior        EndBehavior `yaml:"end_behavior"`
}

// DefaultTiming returns the default timing: 2 s duration, 0.3 s in, 0.5 s out, 0.15 s interrupt.
func DefaultTiming() Timing {
	return Timing{
		Duration:           2,
		BlendIn:            0.3,
		BlendOut:           0.5,
		InterruptBlendTime: 0.15,
		EndBehavior:        EndBlendBack,
	}
}

// clamped returns the timing with negative blend times raised to zero.
func (t Timing) clamped() Timing {
	t.BlendIn = max(t.BlendIn, 0)
	t.BlendOut = max(t.BlendOut, 0)
	t.InterruptBlendTime = max(t.InterruptBlendTime, 0)
	return t
}
