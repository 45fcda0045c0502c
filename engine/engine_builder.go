package engine

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/config"
	"github.com/Carmen-Shannon/oxy-camera/engine/rig"
	"github.com/Carmen-Shannon/oxy-camera/engine/scene"
	"github.com/Carmen-Shannon/oxy-camera/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(fps)
	}
}

// WithWindow sets the window whose message loop Run drives and whose size the rig cameras follow.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the world the rigs read from.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRig registers a rig at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index of the rig
//   - r: the Rig to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(key int, r rig.Rig) EngineBuilderOption {
	return func(e *engine) {
		if r != nil {
			e.rigs[key] = r
		}
	}
}

// WithWorkers bounds how many rigs are ticked in parallel.
// Values <= 0 keep the default of one worker per CPU minus one.
//
// Parameters:
//   - n: the maximum number of rig workers
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.rigWorkers = n
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithSettings applies the engine section of a settings file.
//
// Parameters:
//   - s: the engine settings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSettings(s config.EngineSettings) EngineBuilderOption {
	return func(e *engine) {
		WithTickRate(s.TickRate)(e)
		WithRenderFrameLimit(s.RenderFrameLimit)(e)
		WithWorkers(s.Workers)(e)
		WithProfiling(s.Profiling)(e)
	}
}
