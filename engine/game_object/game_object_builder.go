package game_object

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject. Scenes assign one on Add when it is left at zero.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject starts live.
//
// Parameters:
//   - enabled: true for a live object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithEphemeral marks the GameObject as ephemeral, such as a projectile or a pickup.
//
// Parameters:
//   - ephemeral: true to mark as ephemeral
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Ephemeral flag
func WithEphemeral(ephemeral bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.ephemeral = ephemeral
	}
}

// WithPosition sets the starting position.
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithRotation sets the starting rotation.
func WithRotation(r common.Rotator) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r.Normalize()
	}
}

// WithEyeHeight sets the eye height.
func WithEyeHeight(h float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.eyeHeight = h
	}
}

// WithVelocity sets the starting linear velocity.
func WithVelocity(v mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.velocity = v
	}
}

// WithRotationSpeed sets the starting angular velocity in degrees per second.
func WithRotationSpeed(r common.Rotator) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = r
	}
}
