package feature

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyboardPan pans the camera from the pan axis.
type KeyboardPan struct {
	base
	config KeyboardPanConfig
}

var _ Feature = &KeyboardPan{}

// NewKeyboardPan creates a keyboard pan feature.
func NewKeyboardPan(config KeyboardPanConfig) *KeyboardPan {
	return &KeyboardPan{base: newBase("keyboard_pan", 0), config: config}
}

func (k *KeyboardPan) Update(input InputSource, target Target, current view.CameraView, deltaTime float32) {
	if !k.enabled || input == nil || target == nil {
		return
	}
	axis := input.PanAxis()
	if axis[0] == 0 && axis[1] == 0 {
		return
	}
	target.AddPanOffset(k.PanDirection(axis, current).Mul(k.config.PanSpeed * deltaTime))
}

// PanDirection converts a pan axis into a unit world direction on the ground plane.
//
// Parameters:
//   - axis: X right, Y forward
//   - current: the view whose yaw orients the pan when RelativeToCamera is set
//
// Returns:
//   - mgl32.Vec3: the normalized direction, or zero for a zero axis
func (k *KeyboardPan) PanDirection(axis mgl32.Vec2, current view.CameraView) mgl32.Vec3 {
	if !k.config.RelativeToCamera {
		return common.SafeNormal(mgl32.Vec3{axis[1], axis[0], 0})
	}
	forward, right := yawAxes(current)
	return common.SafeNormal(forward.Mul(axis[1]).Add(right.Mul(axis[0])))
}
