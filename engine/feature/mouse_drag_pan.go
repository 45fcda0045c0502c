package feature

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// MouseDragPan drags the ground plane with the cursor while the drag button is held.
// The pan scales with camera height so the ground tracks the cursor at any zoom.
type MouseDragPan struct {
	base
	config   MouseDragPanConfig
	dragging bool
	last     mgl32.Vec2
}

var _ Feature = &MouseDragPan{}

// NewMouseDragPan creates a drag pan feature.
func NewMouseDragPan(config MouseDragPanConfig) *MouseDragPan {
	return &MouseDragPan{base: newBase("mouse_drag_pan", 0), config: config}
}

func (m *MouseDragPan) Deactivate() {
	m.dragging = false
}

func (m *MouseDragPan) Update(input InputSource, target Target, current view.CameraView, deltaTime float32) {
	if !m.enabled || input == nil || target == nil {
		m.dragging = false
		return
	}
	cursor, ok := input.CursorPosition()
	if !input.DragActive() || !ok {
		m.dragging = false
		return
	}
	if !m.dragging {
		m.dragging = true
		m.last = cursor
		return
	}

	delta := cursor.Sub(m.last)
	m.last = cursor
	if m.config.InvertDrag {
		delta = delta.Mul(-1)
	}
	if delta[0] == 0 && delta[1] == 0 {
		return
	}
	target.AddPanOffset(m.WorldPan(delta, current))
}

// WorldPan converts a screen drag delta into a world pan: right·dx - forward·dy, scaled by
// DragSensitivity·max(100, camera height)/1000.
//
// Parameters:
//   - delta: cursor movement in pixels
//   - current: the view whose yaw and height orient and scale the pan
//
// Returns:
//   - mgl32.Vec3: the world-space pan delta
func (m *MouseDragPan) WorldPan(delta mgl32.Vec2, current view.CameraView) mgl32.Vec3 {
	scale := m.config.DragSensitivity * max(100, current.Position[2]) / 1000
	forward, right := yawAxes(current)
	return right.Mul(delta[0]).Sub(forward.Mul(delta[1])).Mul(scale)
}

// Dragging reports whether a drag is in progress.
func (m *MouseDragPan) Dragging() bool {
	return m.dragging
}
