package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LookAtRotation aims the camera at the pivot, smoothing the rotation rather than the direction vector.
type LookAtRotation struct {
	lifecycle
	config          LookAtConfig
	currentRotation common.Rotator
}

var _ RotationCalculator = &LookAtRotation{}

// NewLookAtRotation creates a look-at rotation calculator.
func NewLookAtRotation(config LookAtConfig) *LookAtRotation {
	return &LookAtRotation{config: config}
}

func (l *LookAtRotation) Compute(cameraPos, pivot mgl32.Vec3, control common.Rotator, deltaTime float32) common.Rotator {
	dir := pivot.Sub(cameraPos)
	if common.VecNearlyZero(dir) {
		return l.currentRotation
	}

	target := common.RotatorFromDirection(dir)
	if !l.config.LockRoll {
		target.Roll = control.Roll
	}

	if !l.firstFrameProcessed {
		l.firstFrameProcessed = true
		l.currentRotation = target
		return target
	}
	l.currentRotation = common.RInterpTo(l.currentRotation, target, deltaTime, l.config.RotationSmoothSpeed)
	return l.currentRotation
}
