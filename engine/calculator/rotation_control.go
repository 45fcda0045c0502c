package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ControlRotation copies the player's control rotation, optionally clamping pitch and zeroing roll.
type ControlRotation struct {
	lifecycle
	config ControlRotationConfig
}

var _ RotationCalculator = &ControlRotation{}

// NewControlRotation creates a control-rotation calculator.
func NewControlRotation(config ControlRotationConfig) *ControlRotation {
	return &ControlRotation{config: config}
}

func (c *ControlRotation) Compute(cameraPos, pivot mgl32.Vec3, control common.Rotator, deltaTime float32) common.Rotator {
	rot := control.Normalize()
	if c.config.LimitPitch {
		rot.Pitch = common.Clamp(rot.Pitch, c.config.MinPitch, c.config.MaxPitch)
	}
	if c.config.LockRoll {
		rot.Roll = 0
	}
	return rot
}
