package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TopDown places the camera above and behind the pivot at a fixed height and view angle.
// A pan offset moves the framed point across the ground plane.
type TopDown struct {
	lifecycle
	config          TopDownConfig
	currentPosition mgl32.Vec3
	panOffset       mgl32.Vec3
}

var (
	_ PositionCalculator = &TopDown{}
	_ Pannable           = &TopDown{}
)

// NewTopDown creates an overhead position calculator.
func NewTopDown(config TopDownConfig) *TopDown {
	return &TopDown{config: config}
}

func (t *TopDown) Compute(pivot mgl32.Vec3, control common.Rotator, deltaTime float32) mgl32.Vec3 {
	target := pivot.Add(t.panOffset).Add(t.BaseOffset())
	return t.smoothVec(&t.currentPosition, target, deltaTime, t.config.FollowSmoothSpeed)
}

// BaseOffset returns the pivot-relative camera offset: (-h, 0, H) rotated by ViewDirectionYaw,
// where h = H / tan(ViewAngle).
func (t *TopDown) BaseOffset() mgl32.Vec3 {
	height := t.config.CameraHeight
	var horizontal float32
	if tan := math32.Tan(mgl32.DegToRad(t.config.ViewAngle)); math32.Abs(tan) > common.KindaSmallNumber {
		horizontal = height / tan
	}
	return common.Rotator{Yaw: t.config.ViewDirectionYaw}.RotateVector(mgl32.Vec3{-horizontal, 0, height})
}

func (t *TopDown) AddPanOffset(delta mgl32.Vec3) {
	t.panOffset = t.panOffset.Add(common.Flatten(delta))
	if limit := t.config.MaxPanDistance; limit > 0 && t.panOffset.Len() > limit {
		t.panOffset = common.SafeNormal(t.panOffset).Mul(limit)
	}
}

// PanOffset returns the accumulated pan offset.
func (t *TopDown) PanOffset() mgl32.Vec3 {
	return t.panOffset
}

// ResetPan clears the pan offset.
func (t *TopDown) ResetPan() {
	t.panOffset = common.VecZero
}

// Config returns the calculator tuning.
func (t *TopDown) Config() TopDownConfig {
	return t.config
}
