package rig

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/feature"
	"github.com/Carmen-Shannon/oxy-camera/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-camera/engine/registry"
	"github.com/Carmen-Shannon/oxy-camera/engine/shake"
)

// RigBuilderOption is a functional option for configuring a Rig.
type RigBuilderOption func(*rigImpl)

// WithOwner sets the owner ID the rig registers its effects under.
func WithOwner(owner registry.OwnerID) RigBuilderOption {
	return func(r *rigImpl) {
		r.owner = owner
	}
}

// WithRegistry shares an effect registry between rigs.
func WithRegistry(reg registry.Registry) RigBuilderOption {
	return func(r *rigImpl) {
		r.registry = reg
	}
}

// WithWorld sets the world the rig's pipeline and effects read from.
func WithWorld(world calculator.World) RigBuilderOption {
	return func(r *rigImpl) {
		r.world = world
	}
}

// WithPipeline sets the initial mode. It starts at full weight.
func WithPipeline(p pipeline.Pipeline) RigBuilderOption {
	return func(r *rigImpl) {
		r.mode = p
	}
}

// WithPresenter sets the target that receives the final view, usually a camera.Camera.
func WithPresenter(p Presenter) RigBuilderOption {
	return func(r *rigImpl) {
		r.out = p
	}
}

// WithInput sets the input source features read from.
func WithInput(input feature.InputSource) RigBuilderOption {
	return func(r *rigImpl) {
		r.input = input
	}
}

// WithFeatures adds features to the rig.
func WithFeatures(features ...feature.Feature) RigBuilderOption {
	return func(r *rigImpl) {
		for _, f := range features {
			r.addFeature(f)
		}
	}
}

// WithShakePlayer sets the player that runs the rig's shakes.
func WithShakePlayer(player shake.Player) RigBuilderOption {
	return func(r *rigImpl) {
		r.shakes = player
	}
}

// WithEffectPresets registers named effects for ActivatePreset.
func WithEffectPresets(presets map[string]effect.Config) RigBuilderOption {
	return func(r *rigImpl) {
		r.setPresets(presets)
	}
}
