package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNoWindow = errors.New("window is not initialized")

var mouseButtons = map[glfw.MouseButton]MouseButton{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

// glfwWindow forwards GLFW events to the engineWindow callbacks.
type glfwWindow struct {
	owner  *engineWindow
	handle *glfw.Window
	open   bool
}

// openGLFW creates a client-API-less GLFW window sized from w and hooks its events.
// The calling goroutine is locked to its OS thread for the lifetime of the window.
func openGLFW(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// no GL context, presentation goes through WebGPU
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	g := &glfwWindow{owner: w, handle: handle, open: true}
	handle.SetKeyCallback(g.key)
	handle.SetMouseButtonCallback(g.mouseButton)
	handle.SetCursorEnterCallback(g.cursorEnter)
	handle.SetCursorPosCallback(g.cursorPos)
	handle.SetFramebufferSizeCallback(g.framebufferSize)

	// high-DPI framebuffers differ from the requested size
	w.width, w.height = handle.GetFramebufferSize()
	return g, nil
}

// key closes the window on Escape and forwards everything else; repeats count as presses.
func (g *glfwWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		g.open = false
		g.handle.SetShouldClose(true)
		return
	}
	code := uint32(key)
	if action == glfw.Release {
		if g.owner.onKeyUp != nil {
			g.owner.onKeyUp(code)
		}
		return
	}
	if g.owner.onKeyDown != nil {
		g.owner.onKeyDown(code)
	}
}

func (g *glfwWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	mb, ok := mouseButtons[button]
	if !ok || action == glfw.Repeat || g.owner.onMouseButton == nil {
		return
	}
	x, y := g.handle.GetCursorPos()
	g.owner.onMouseButton(mb, action == glfw.Press, int32(x), int32(y))
}

func (g *glfwWindow) cursorEnter(_ *glfw.Window, entered bool) {
	if g.owner.onCursorEnter != nil {
		g.owner.onCursorEnter(entered)
	}
}

func (g *glfwWindow) cursorPos(_ *glfw.Window, x, y float64) {
	if g.owner.onMouseMove != nil {
		g.owner.onMouseMove(int32(x), int32(y))
	}
}

// framebufferSize reports pixels: the projection aspect and the edge scroll border use them.
func (g *glfwWindow) framebufferSize(_ *glfw.Window, width, height int) {
	g.owner.width, g.owner.height = width, height
	if g.owner.onResize != nil {
		g.owner.onResize(width, height)
	}
}

func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if g == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(g.handle)
}

func (g *glfwWindow) running() bool {
	return g != nil && g.open && !g.handle.ShouldClose()
}

// poll drains pending events without blocking and reports whether the window is still open.
func (g *glfwWindow) poll() bool {
	if !g.running() {
		return false
	}
	glfw.PollEvents()
	return g.running()
}

func (g *glfwWindow) destroy() error {
	if g == nil {
		return errNoWindow
	}
	g.open = false
	g.handle.SetShouldClose(true)
	g.handle.Destroy()
	glfw.Terminate()
	return nil
}
