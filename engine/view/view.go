package view

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFOV is the horizontal field of view used when nothing else supplies one.
const DefaultFOV float32 = 90.0

// CameraView is the pose produced once per frame by a camera pipeline and then
// altered in turn by active effects. It is plain data and is passed by value between
// pipeline stages; effects receive a pointer to the single copy being composited.
type CameraView struct {
	// Position is the world-space camera location.
	Position mgl32.Vec3

	// Rotation is the camera orientation.
	Rotation common.Rotator

	// FOV is the horizontal field of view in degrees.
	FOV float32

	// PivotPosition is the focus point the camera was framed around.
	PivotPosition mgl32.Vec3

	// ControlLocation is the location of the controlled subject this frame.
	ControlLocation mgl32.Vec3

	// ControlRotation is the player control rotation sampled this frame.
	ControlRotation common.Rotator

	// PostProcess holds the post-process settings contributed by effects.
	PostProcess PostProcessSettings

	// PostProcessWeight is the blend weight the presentation layer should use for PostProcess.
	PostProcessWeight float32
}

// NewCameraView returns a view at the origin with the default field of view.
func NewCameraView() CameraView {
	return CameraView{FOV: DefaultFOV}
}

// CameraLocation is an alias for Position.
func (v CameraView) CameraLocation() mgl32.Vec3 {
	return v.Position
}

// CameraRotation is an alias for Rotation.
func (v CameraView) CameraRotation() common.Rotator {
	return v.Rotation
}

// Forward returns the unit view direction.
func (v CameraView) Forward() mgl32.Vec3 {
	return v.Rotation.Vector()
}

// ArmLength returns the distance between the camera and its pivot.
func (v CameraView) ArmLength() float32 {
	return v.PivotPosition.Sub(v.Position).Len()
}

// Blend interpolates from v toward other by weight. Rotations take the shortest path.
// A weight of 0 returns v unchanged and a weight of 1 returns other.
//
// Parameters:
//   - other: the view at weight 1
//   - weight: blend factor, clamped to [0, 1]
//
// Returns:
//   - CameraView: the blended view
func (v CameraView) Blend(other CameraView, weight float32) CameraView {
	weight = common.Clamp01(weight)
	if weight <= 0 {
		return v
	}
	if weight >= 1 {
		return other
	}
	return CameraView{
		Position:          common.LerpVec(v.Position, other.Position, weight),
		Rotation:          common.LerpRotator(v.Rotation, other.Rotation, weight),
		FOV:               common.Lerp(v.FOV, other.FOV, weight),
		PivotPosition:     common.LerpVec(v.PivotPosition, other.PivotPosition, weight),
		ControlLocation:   common.LerpVec(v.ControlLocation, other.ControlLocation, weight),
		ControlRotation:   common.LerpRotator(v.ControlRotation, other.ControlRotation, weight),
		PostProcess:       v.PostProcess.Blend(other.PostProcess, weight),
		PostProcessWeight: common.Lerp(v.PostProcessWeight, other.PostProcessWeight, weight),
	}
}
