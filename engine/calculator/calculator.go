package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Calculator is the lifecycle shared by every pipeline stage.
// Each calculator owns its smoothing state exclusively; Activate resets it so the
// first Compute after activation snaps to its raw target.
type Calculator interface {
	// Initialize binds the calculator to the world it reads from.
	//
	// Parameters:
	//   - world: the world-state provider (may be nil)
	Initialize(world World)

	// Activate marks the calculator active and resets its smoothing state.
	Activate()

	// Deactivate marks the calculator inactive. Smoothing state is kept until the next Activate.
	Deactivate()

	// IsActive reports whether the calculator is active.
	//
	// Returns:
	//   - bool: true between Activate and Deactivate
	IsActive() bool
}

// TargetCalculator resolves the pivot the camera frames each frame.
type TargetCalculator interface {
	Calculator

	// Compute returns the pivot position for this frame.
	// When the followed subject is gone it returns the last known pivot and found=false.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - pivot: the world-space pivot
	//   - found: false if the subject reference is not live
	Compute(deltaTime float32) (pivot mgl32.Vec3, found bool)

	// Subject returns the followed actor. Zero means the world's primary subject.
	//
	// Returns:
	//   - ActorID: the followed actor
	Subject() ActorID

	// SetSubject changes the followed actor.
	//
	// Parameters:
	//   - id: the actor to follow, or zero for the world's primary subject
	SetSubject(id ActorID)
}

// PositionCalculator places the camera relative to the pivot.
type PositionCalculator interface {
	Calculator

	// Compute returns the camera location for this frame.
	//
	// Parameters:
	//   - pivot: the (offset) pivot from the target stage
	//   - control: the control rotation for this frame
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - mgl32.Vec3: the world-space camera location
	Compute(pivot mgl32.Vec3, control common.Rotator, deltaTime float32) mgl32.Vec3
}

// RotationCalculator orients the camera.
type RotationCalculator interface {
	Calculator

	// Compute returns the camera rotation for this frame.
	//
	// Parameters:
	//   - cameraPos: the camera location from the position stage
	//   - pivot: the pivot from the target stage
	//   - control: the control rotation for this frame
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - common.Rotator: the camera rotation
	Compute(cameraPos, pivot mgl32.Vec3, control common.Rotator, deltaTime float32) common.Rotator
}

// FOVCalculator chooses the horizontal field of view.
type FOVCalculator interface {
	Calculator

	// Compute returns the field of view in degrees for this frame.
	//
	// Parameters:
	//   - cameraPos: the camera location from the position stage
	//   - pivot: the pivot from the target stage
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - float32: horizontal field of view in degrees
	Compute(cameraPos, pivot mgl32.Vec3, deltaTime float32) float32
}

// Pannable is implemented by position calculators that accept a screen-plane pan offset.
type Pannable interface {
	// AddPanOffset shifts the framed point by a world-space delta.
	//
	// Parameters:
	//   - delta: world-space offset to add
	AddPanOffset(delta mgl32.Vec3)
}

// Orbitable is implemented by position calculators that accept orbit-angle input.
type Orbitable interface {
	// AddOrbitInput adds a player orbit delta in degrees to the target orbit angle.
	//
	// Parameters:
	//   - deltaAngle: orbit delta in degrees
	AddOrbitInput(deltaAngle float32)
}

// lifecycle carries the state shared by every calculator kind.
type lifecycle struct {
	world               World
	active              bool
	firstFrameProcessed bool
}

func (l *lifecycle) Initialize(world World) {
	l.world = world
}

func (l *lifecycle) Activate() {
	l.active = true
	l.firstFrameProcessed = false
}

func (l *lifecycle) Deactivate() {
	l.active = false
}

func (l *lifecycle) IsActive() bool {
	return l.active
}

// smoothVec applies first-frame snapping then exponential smoothing to a vector.
func (l *lifecycle) smoothVec(current *mgl32.Vec3, target mgl32.Vec3, deltaTime, speed float32) mgl32.Vec3 {
	if !l.firstFrameProcessed {
		l.firstFrameProcessed = true
		*current = target
		return target
	}
	*current = common.VInterpTo(*current, target, deltaTime, speed)
	return *current
}
