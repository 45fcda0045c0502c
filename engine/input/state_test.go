package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/engine/window"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want glfw.Key
	}{
		{"w", glfw.KeyW},
		{"W", glfw.KeyW},
		{" up ", glfw.KeyUp},
		{"7", glfw.Key7},
		{"space", glfw.KeySpace},
	}
	for _, tt := range tests {
		k, err := ParseKey(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, k, tt.name)
	}

	_, err := ParseKey("f13")
	assert.Error(t, err)
}

func TestPanAxis(t *testing.T) {
	s := NewState()
	s.OnKeyDown(uint32(glfw.KeyW))
	s.OnKeyDown(uint32(glfw.KeyD))
	assert.Equal(t, mgl32.Vec2{1, 1}, s.PanAxis())

	// opposing keys cancel
	s.OnKeyDown(uint32(glfw.KeyS))
	assert.Equal(t, mgl32.Vec2{1, 0}, s.PanAxis())

	// two keys on one action: releasing one keeps it held
	s.OnKeyDown(uint32(glfw.KeyRight))
	s.OnKeyUp(uint32(glfw.KeyD))
	assert.Equal(t, float32(1), s.PanAxis()[0])

	// key repeat does not double count
	s.OnKeyDown(uint32(glfw.KeyRight))
	s.OnKeyUp(uint32(glfw.KeyRight))
	assert.Equal(t, float32(0), s.PanAxis()[0])

	s.Reset()
	assert.Equal(t, mgl32.Vec2{}, s.PanAxis())
}

func TestOrbitAxisAndDrag(t *testing.T) {
	s := NewState(WithViewport(800, 600))
	s.OnKeyDown(uint32(glfw.KeyQ))
	assert.Equal(t, float32(-1), s.OrbitAxis())

	s.OnMouseButton(window.MouseButtonLeft, true, 5, 5)
	assert.False(t, s.DragActive())
	s.OnMouseButton(window.MouseButtonMiddle, true, 10, 20)
	assert.True(t, s.DragActive())
	pos, ok := s.CursorPosition()
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec2{10, 20}, pos)

	s.OnCursorEnter(false)
	_, ok = s.CursorPosition()
	assert.False(t, ok)

	w, h := s.ViewportSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestCustomBindings(t *testing.T) {
	b := DefaultBindings()
	b.OrbitLeft = []string{"z"}
	b.DragButton = "right"
	s := NewState(WithBindings(b))

	s.OnKeyDown(uint32(glfw.KeyZ))
	assert.Equal(t, float32(-1), s.OrbitAxis())
	s.OnMouseButton(window.MouseButtonRight, true, 0, 0)
	assert.True(t, s.DragActive())

	bad := DefaultBindings()
	bad.PanLeft = []string{"nope"}
	assert.Error(t, bad.Validate())
	kept := NewState(WithBindings(bad))
	kept.OnKeyDown(uint32(glfw.KeyA))
	assert.Equal(t, float32(-1), kept.PanAxis()[0])
}

func TestSetBindingsRemapsHeldKeys(t *testing.T) {
	s := NewState()
	s.OnKeyDown(uint32(glfw.KeyJ))
	assert.Equal(t, float32(0), s.OrbitAxis())

	b := DefaultBindings()
	b.OrbitRight = []string{"j"}
	s.SetBindings(b)
	assert.Equal(t, float32(1), s.OrbitAxis(), "a key held across the swap counts under its new action")

	bad := DefaultBindings()
	bad.OrbitRight = []string{"??"}
	s.SetBindings(bad)
	assert.Equal(t, float32(1), s.OrbitAxis())

	s.OnKeyUp(uint32(glfw.KeyJ))
	assert.Equal(t, float32(0), s.OrbitAxis())
}
