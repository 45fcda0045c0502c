package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FixedRotation looks at the pivot once per activation and holds that orientation.
type FixedRotation struct {
	lifecycle
	config FixedRotationConfig
	cached common.Rotator
}

var _ RotationCalculator = &FixedRotation{}

// NewFixedRotation creates a fixed rotation calculator.
func NewFixedRotation(config FixedRotationConfig) *FixedRotation {
	return &FixedRotation{config: config}
}

func (f *FixedRotation) Compute(cameraPos, pivot mgl32.Vec3, control common.Rotator, deltaTime float32) common.Rotator {
	if f.firstFrameProcessed {
		return f.cached
	}
	f.firstFrameProcessed = true
	f.cached = common.RotatorFromDirection(common.SafeNormal(pivot.Sub(cameraPos)))
	if !f.config.LockRoll {
		f.cached.Roll = control.Roll
	}
	return f.cached
}
