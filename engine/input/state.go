package input

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/engine/feature"
	"github.com/Carmen-Shannon/oxy-camera/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// State accumulates window input events and exposes them to camera features.
// Event handlers may run on the window thread while features read on a tick worker.
type State interface {
	feature.InputSource

	// Attach routes the window's key and mouse callbacks into the state and records its size.
	// Resizes are not routed because the engine owns the window's resize callback; forward them to OnResize.
	//
	// Parameters:
	//   - w: the window to listen to
	Attach(w window.Window)

	// OnKeyDown records a key press.
	OnKeyDown(keyCode uint32)

	// OnKeyUp records a key release.
	OnKeyUp(keyCode uint32)

	// OnMouseMove records the cursor position.
	OnMouseMove(x, y int32)

	// OnMouseButton records a button press or release.
	OnMouseButton(button window.MouseButton, pressed bool, x, y int32)

	// OnCursorEnter records the cursor entering or leaving the viewport.
	OnCursorEnter(entered bool)

	// OnResize records the new viewport size.
	OnResize(width, height int)

	// SetBindings replaces the key bindings. Invalid bindings are logged and the current ones kept.
	//
	// Parameters:
	//   - b: the new bindings
	SetBindings(b Bindings)

	// Reset releases every held key and button.
	Reset()
}

type stateImpl struct {
	mu *sync.Mutex

	bindings   map[uint32]action
	dragButton window.MouseButton

	held      map[action]int
	keys      map[uint32]bool
	cursor    mgl32.Vec2
	hasCursor bool
	dragging  bool
	width     int
	height    int
}

var _ State = &stateImpl{}

// NewState creates an input state with the default bindings.
// Bindings that fail to resolve are logged and the defaults are used instead.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - State: the newly created state
func NewState(options ...StateBuilderOption) State {
	s := &stateImpl{
		mu:   &sync.Mutex{},
		held: map[action]int{},
		keys: map[uint32]bool{},
	}
	s.bindings, s.dragButton, _ = DefaultBindings().resolve()
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *stateImpl) Attach(w window.Window) {
	w.SetKeyDownCallback(s.OnKeyDown)
	w.SetKeyUpCallback(s.OnKeyUp)
	w.SetMouseMoveCallback(s.OnMouseMove)
	w.SetMouseButtonCallback(s.OnMouseButton)
	w.SetCursorEnterCallback(s.OnCursorEnter)
	s.OnResize(w.Width(), w.Height())
}

func (s *stateImpl) OnKeyDown(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[keyCode] {
		return
	}
	s.keys[keyCode] = true
	if a, ok := s.bindings[keyCode]; ok {
		s.held[a]++
	}
}

func (s *stateImpl) OnKeyUp(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.keys[keyCode] {
		return
	}
	delete(s.keys, keyCode)
	if a, ok := s.bindings[keyCode]; ok && s.held[a] > 0 {
		s.held[a]--
	}
}

func (s *stateImpl) OnMouseMove(x, y int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = mgl32.Vec2{float32(x), float32(y)}
	s.hasCursor = true
}

func (s *stateImpl) OnMouseButton(button window.MouseButton, pressed bool, x, y int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = mgl32.Vec2{float32(x), float32(y)}
	s.hasCursor = true
	if button == s.dragButton {
		s.dragging = pressed
	}
}

func (s *stateImpl) OnCursorEnter(entered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasCursor = entered
}

func (s *stateImpl) OnResize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *stateImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.keys)
	clear(s.held)
	s.dragging = false
}

func (s *stateImpl) CursorPosition() (mgl32.Vec2, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.hasCursor
}

func (s *stateImpl) ViewportSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *stateImpl) PanAxis() mgl32.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mgl32.Vec2{
		s.axis(actionPanRight, actionPanLeft),
		s.axis(actionPanForward, actionPanBack),
	}
}

func (s *stateImpl) OrbitAxis() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axis(actionOrbitRight, actionOrbitLeft)
}

func (s *stateImpl) DragActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

func (s *stateImpl) SetBindings(b Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyBindings(b)
	clear(s.held)
	for key := range s.keys {
		if a, ok := s.bindings[key]; ok {
			s.held[a]++
		}
	}
}

// axis returns +1, -1 or 0 from a pair of opposing actions. Caller must hold the mutex.
func (s *stateImpl) axis(positive, negative action) float32 {
	var v float32
	if s.held[positive] > 0 {
		v++
	}
	if s.held[negative] > 0 {
		v--
	}
	return v
}

// applyBindings swaps the binding table, keeping the previous one on error. Caller must hold the mutex.
func (s *stateImpl) applyBindings(b Bindings) {
	table, button, err := b.resolve()
	if err != nil {
		slog.Warn("invalid input bindings, keeping previous", "error", err)
		return
	}
	s.bindings = table
	s.dragButton = button
}
