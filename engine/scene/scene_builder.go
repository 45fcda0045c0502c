package scene

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is ticked by the engine.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithPrimarySubject sets the followed subject.
//
// Parameters:
//   - id: the subject's object ID
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPrimarySubject(id uint64) SceneBuilderOption {
	return func(s *scene) {
		s.primary = id
	}
}

// WithControlRotation sets the initial control rotation.
func WithControlRotation(r common.Rotator) SceneBuilderOption {
	return func(s *scene) {
		s.control = clampControl(r)
	}
}
