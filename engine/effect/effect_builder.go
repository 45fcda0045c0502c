package effect

import "github.com/Carmen-Shannon/oxy-camera/engine/calculator"

type EffectBuilderOption func(*Effect)

// WithWorld sets the world used to resolve look-at actors.
//
// Parameters:
//   - world: the world-state provider
//
// Returns:
//   - EffectBuilderOption: a function that sets the world
func WithWorld(world calculator.World) EffectBuilderOption {
	return func(e *Effect) {
		e.world = world
	}
}

// WithShakePlayer sets the player used to start shakes.
//
// Parameters:
//   - player: the shake player
//
// Returns:
//   - EffectBuilderOption: a function that sets the shake player
func WithShakePlayer(player ShakePlayer) EffectBuilderOption {
	return func(e *Effect) {
		e.shakes = player
	}
}
