package feature

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// InputSource is the per-frame player input a feature reads. Screen coordinates are in pixels
// with the origin at the top-left corner of the viewport.
type InputSource interface {
	// CursorPosition returns the cursor location.
	//
	// Returns:
	//   - mgl32.Vec2: cursor position in pixels
	//   - bool: false if the cursor is outside the window or unknown
	CursorPosition() (mgl32.Vec2, bool)

	// ViewportSize returns the viewport dimensions in pixels.
	//
	// Returns:
	//   - width, height: viewport size, zero when minimized
	ViewportSize() (width, height int)

	// PanAxis returns the 2D pan input, X to the right and Y forward, each in [-1, 1].
	PanAxis() mgl32.Vec2

	// OrbitAxis returns the orbit input in [-1, 1]; positive orbits to the right.
	OrbitAxis() float32

	// DragActive reports whether the drag button is held.
	DragActive() bool
}

// Target is the camera surface a feature drives. A pipeline satisfies it.
type Target interface {
	// AddPanOffset forwards a world-space pan delta.
	//
	// Returns:
	//   - bool: false if the current position stage does not pan
	AddPanOffset(delta mgl32.Vec3) bool

	// AddOrbitInput forwards an orbit delta in degrees.
	//
	// Returns:
	//   - bool: false if the current position stage does not orbit
	AddOrbitInput(deltaAngle float32) bool
}

// Feature is an input-driven behavior updated once per frame before the pipeline runs.
type Feature interface {
	// Name returns the feature name used in logs.
	Name() string

	// Priority orders features within a rig; lower values update first.
	Priority() int

	// Enabled reports whether Update has any effect.
	Enabled() bool

	// SetEnabled toggles the feature.
	SetEnabled(enabled bool)

	// Activate is called when the feature is added to a rig.
	Activate()

	// Deactivate is called when the feature is removed from a rig. Held input state is cleared.
	Deactivate()

	// Update reads input and drives target.
	//
	// Parameters:
	//   - input: the input source, may be nil
	//   - target: the camera surface to drive
	//   - current: the view presented last frame
	//   - deltaTime: frame time in seconds
	Update(input InputSource, target Target, current view.CameraView, deltaTime float32)
}

// ViewFeature is a feature that also adjusts the mode's view each frame, after the mode
// blend and before effects.
type ViewFeature interface {
	Feature

	// ApplyToView adjusts v in place.
	//
	// Parameters:
	//   - world: the world the mode reads, may be nil
	//   - v: the composed view
	//   - deltaTime: frame time in seconds
	ApplyToView(world calculator.World, v *view.CameraView, deltaTime float32)
}

// base carries the state every feature shares.
type base struct {
	name     string
	priority int
	enabled  bool
}

func newBase(name string, priority int) base {
	return base{name: name, priority: priority, enabled: true}
}

func (b *base) Name() string            { return b.name }
func (b *base) Priority() int           { return b.priority }
func (b *base) Enabled() bool           { return b.enabled }
func (b *base) SetEnabled(enabled bool) { b.enabled = enabled }
func (b *base) Activate()               {}
func (b *base) Deactivate()             {}

// yawAxes returns the horizontal forward and right vectors of the view's yaw.
func yawAxes(v view.CameraView) (forward, right mgl32.Vec3) {
	forward, right, _ = v.Rotation.YawOnly().Axes()
	return forward, right
}
