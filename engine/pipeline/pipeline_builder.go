package pipeline

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
)

type PipelineBuilderOption func(*pipelineImpl)

// WithName sets the pipeline name used in logs.
//
// Parameters:
//   - name: the pipeline name
//
// Returns:
//   - PipelineBuilderOption: a function that sets the name
func WithName(name string) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.name = name
	}
}

// WithWorld sets the world every calculator reads from.
//
// Parameters:
//   - world: the world-state provider
//
// Returns:
//   - PipelineBuilderOption: a function that sets the world
func WithWorld(world calculator.World) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.world = world
	}
}

// WithTarget sets the target stage.
func WithTarget(c calculator.TargetCalculator) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.target = c
	}
}

// WithPosition sets the position stage.
func WithPosition(c calculator.PositionCalculator) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.position = c
	}
}

// WithRotation sets the rotation stage.
func WithRotation(c calculator.RotationCalculator) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.rotation = c
	}
}

// WithFOV sets the FOV stage.
func WithFOV(c calculator.FOVCalculator) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.fov = c
	}
}

// WithPivotOffset sets the offset applied between the target and position stages.
//
// Parameters:
//   - offset: the pivot offset
//
// Returns:
//   - PipelineBuilderOption: a function that sets the pivot offset
func WithPivotOffset(offset PivotOffset) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.pivotOffset = offset
	}
}

// WithActivationBlend replaces the default 0.5 s EaseInOut activation blend.
//
// Parameters:
//   - b: the activation blend
//
// Returns:
//   - PipelineBuilderOption: a function that sets the activation blend
func WithActivationBlend(b blend.ActivationBlend) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.activation = b
	}
}
