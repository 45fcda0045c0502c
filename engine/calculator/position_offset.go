package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// OffsetPosition places the camera at a fixed offset from the pivot,
// optionally expressed in the control rotation's local space.
type OffsetPosition struct {
	lifecycle
	config          OffsetConfig
	currentPosition mgl32.Vec3
}

var _ PositionCalculator = &OffsetPosition{}

// NewOffsetPosition creates a fixed-offset position calculator.
func NewOffsetPosition(config OffsetConfig) *OffsetPosition {
	return &OffsetPosition{config: config}
}

func (o *OffsetPosition) Compute(pivot mgl32.Vec3, control common.Rotator, deltaTime float32) mgl32.Vec3 {
	target := pivot.Add(rotatedOffset(o.config.Offset, control, o.config.UseControlRotation, o.config.YawOnly))
	return o.smoothVec(&o.currentPosition, target, deltaTime, o.config.PositionSmoothSpeed)
}

// Config returns the calculator tuning.
func (o *OffsetPosition) Config() OffsetConfig {
	return o.config
}
