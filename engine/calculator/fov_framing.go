package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FramingFOV widens the field of view so the player and the locked target both stay in frame.
type FramingFOV struct {
	lifecycle
	config     FramingFOVConfig
	player     ActorID
	currentFOV float32
}

var _ FOVCalculator = &FramingFOV{}

// NewFramingFOV creates a framing FOV calculator.
//
// Parameters:
//   - config: the framing tuning
//   - player: the player actor, or zero for the world's primary subject
//
// Returns:
//   - *FramingFOV: the calculator
func NewFramingFOV(config FramingFOVConfig, player ActorID) *FramingFOV {
	return &FramingFOV{config: config, player: player}
}

func (f *FramingFOV) Compute(cameraPos, pivot mgl32.Vec3, deltaTime float32) float32 {
	target := f.config.BaseFOV
	if f.config.KeepBothInFrame {
		player, okPlayer := subjectPosition(f.world, f.player)
		locked, okLocked := lockedLocation(f.world)
		if okPlayer && okLocked {
			target = FramingAngle(cameraPos, player, locked, f.config.FramePadding)
		}
	}
	target = common.Clamp(target, f.config.MinFOV, f.config.MaxFOV)

	if !f.firstFrameProcessed {
		f.firstFrameProcessed = true
		f.currentFOV = target
		return target
	}
	f.currentFOV = common.InterpTo(f.currentFOV, target, deltaTime, f.config.FOVTransitionSpeed)
	return f.currentFOV
}

// FramingAngle returns the angle in degrees between the camera-to-a and camera-to-b directions,
// inflated by (1 + 2·padding). It never decreases as the separation of a and b grows.
//
// Parameters:
//   - cameraPos: the camera location
//   - a: the first subject location
//   - b: the second subject location
//   - padding: fractional padding applied to each side
//
// Returns:
//   - float32: the required field of view in degrees, before clamping
func FramingAngle(cameraPos, a, b mgl32.Vec3, padding float32) float32 {
	toA := common.SafeNormal(a.Sub(cameraPos))
	toB := common.SafeNormal(b.Sub(cameraPos))
	angle := math32.Acos(common.Clamp(toA.Dot(toB), -1, 1))
	return mgl32.RadToDeg(angle) * (1 + padding*2)
}
