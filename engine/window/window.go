package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button in window callbacks.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window hosts the camera viewport and forwards raw input to the input layer.
// The cursor position, key codes and framebuffer size it reports are what
// the camera features read each frame.
type Window interface {
	// SetUpdateCallback sets the function run after each event poll, or nil.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function receiving the new framebuffer size in pixels.
	// The engine owns this slot and fans the size out to cameras, displays and input.
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the function receiving glfw key codes on press and repeat.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function receiving glfw key codes on release.
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseButtonCallback sets the function receiving button transitions with the cursor position.
	SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int32))

	// SetCursorEnterCallback sets the function told when the cursor enters (true) or leaves (false).
	// Edge scrolling stops while the cursor is outside.
	SetCursorEnterCallback(callback func(entered bool))

	// SetMouseMoveCallback sets the function receiving the cursor position in pixels.
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns the descriptor the camera display creates its surface from,
	// or nil before the window exists.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open.
	IsRunning() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages polls input until the window closes, running the update callback after each poll.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// engineWindow keeps the size limits the viewport may take and the callbacks input flows through.
type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int
	// width and height track the framebuffer, not the requested window size.
	width, height int

	platform *glfwWindow

	onUpdate      func()
	onResize      func(width, height int)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onMouseButton func(button MouseButton, pressed bool, x, y int32)
	onCursorEnter func(entered bool)
	onMouseMove   func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow opens a 1280x720 window titled "oxy-camera" unless options say otherwise.
// It panics if GLFW cannot create the window, since no camera can be presented without one.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-camera",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	platform, err := openGLFW(w)
	if err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	w.platform = platform
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int32)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetCursorEnterCallback(callback func(entered bool)) {
	w.onCursorEnter = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform.running()
}

func (w *engineWindow) Close() error {
	return w.platform.destroy()
}

func (w *engineWindow) ProcessMessages() {
	for w.platform.poll() {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
