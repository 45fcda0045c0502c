package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ActorID identifies a subject in the world. The zero ID never refers to a live actor.
type ActorID uint64

// World supplies the world state calculators read each frame.
// Every lookup reports liveness explicitly: a false ok means the reference is gone
// and callers must fall back to their last known value.
type World interface {
	// ActorPosition returns the world-space location of an actor.
	//
	// Parameters:
	//   - id: the actor to look up
	//
	// Returns:
	//   - mgl32.Vec3: the actor location
	//   - bool: false if the actor does not exist or is disabled
	ActorPosition(id ActorID) (mgl32.Vec3, bool)

	// ActorRotation returns the orientation of an actor.
	//
	// Parameters:
	//   - id: the actor to look up
	//
	// Returns:
	//   - common.Rotator: the actor rotation
	//   - bool: false if the actor does not exist or is disabled
	ActorRotation(id ActorID) (common.Rotator, bool)

	// ActorEyeHeight returns the height of the actor's eyes above its location.
	//
	// Parameters:
	//   - id: the actor to look up
	//
	// Returns:
	//   - float32: eye height in world units
	//   - bool: false if the actor does not exist or is disabled
	ActorEyeHeight(id ActorID) (float32, bool)

	// PrimarySubject returns the actor the camera follows by default.
	//
	// Returns:
	//   - ActorID: the followed actor, or zero if none
	PrimarySubject() ActorID

	// ControlRotation returns the player's control rotation.
	//
	// Returns:
	//   - common.Rotator: the control rotation
	ControlRotation() common.Rotator

	// HasLockedTarget reports whether a lock-on target is currently held.
	//
	// Returns:
	//   - bool: true if a live locked target exists
	HasLockedTarget() bool

	// LockedFocusLocation returns the focus location of the locked target.
	//
	// Returns:
	//   - mgl32.Vec3: the locked target's focus location
	//   - bool: false if no live locked target exists
	LockedFocusLocation() (mgl32.Vec3, bool)
}

// subjectPosition resolves an actor location, substituting the world's primary subject
// when id is zero. Returns false when there is no world or the actor is not live.
func subjectPosition(w World, id ActorID) (mgl32.Vec3, bool) {
	if w == nil {
		return common.VecZero, false
	}
	if id == 0 {
		id = w.PrimarySubject()
	}
	if id == 0 {
		return common.VecZero, false
	}
	return w.ActorPosition(id)
}

// lockedLocation returns the locked target focus location if one is held.
func lockedLocation(w World) (mgl32.Vec3, bool) {
	if w == nil || !w.HasLockedTarget() {
		return common.VecZero, false
	}
	return w.LockedFocusLocation()
}

// controlRotation returns the world's control rotation or the zero rotator without a world.
func controlRotation(w World) common.Rotator {
	if w == nil {
		return common.Rotator{}
	}
	return w.ControlRotation()
}

// VelocitySource is implemented by worlds that can report actor velocity.
// Speed-driven stages read it when the world provides it and treat the subject as still otherwise.
type VelocitySource interface {
	// ActorVelocity returns the linear velocity of an actor.
	//
	// Parameters:
	//   - id: the actor to look up
	//
	// Returns:
	//   - mgl32.Vec3: velocity in world units per second
	//   - bool: false if the actor does not exist or is disabled
	ActorVelocity(id ActorID) (mgl32.Vec3, bool)
}

// SubjectVelocity returns the velocity of id, or of the primary subject when id is zero.
//
// Parameters:
//   - w: the world, may be nil
//   - id: the actor, or zero for the primary subject
//
// Returns:
//   - mgl32.Vec3: the velocity, zero when unknown
//   - bool: false if w cannot report velocity or the actor is not live
func SubjectVelocity(w World, id ActorID) (mgl32.Vec3, bool) {
	vs, ok := w.(VelocitySource)
	if !ok {
		return common.VecZero, false
	}
	if id == 0 {
		id = w.PrimarySubject()
	}
	if id == 0 {
		return common.VecZero, false
	}
	return vs.ActorVelocity(id)
}
