package camera

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Display owns the WebGPU device and window surface that camera uniforms are uploaded to.
// It draws nothing itself; Present clears the swap chain so a host without a renderer still
// shows that the loop is alive.
type Display interface {
	// Device returns the WebGPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device used for CreateUniformBuffer
	Device() *wgpu.Device

	// Queue returns the device queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue used for Upload
	Queue() *wgpu.Queue

	// Configure (re)creates the swap chain for the given surface size. Zero-area sizes are ignored.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	Configure(width, height int)

	// Present clears the next swap chain image to color and presents it.
	//
	// Parameters:
	//   - color: the clear color
	//
	// Returns:
	//   - error: error if the surface image cannot be acquired or the frame cannot be encoded
	Present(color wgpu.Color) error

	// Release frees the surface, device and adapter.
	Release()
}

type displayImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format     wgpu.TextureFormat
	configured bool
}

var _ Display = &displayImpl{}

// NewDisplay creates a device compatible with the window surface described by surfaceDescriptor.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor, from window.Window.SurfaceDescriptor
//   - forceFallbackAdapter: request the software adapter
//
// Returns:
//   - Display: the display, not yet configured
//   - error: error if no adapter or device is available
func NewDisplay(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (Display, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("camera: display needs a surface descriptor")
	}
	runtime.LockOSThread()

	d := &displayImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
	}
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("camera: request adapter: %w", err)
	}
	d.adapter = a

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "Camera Device"})
	if err != nil {
		return nil, fmt.Errorf("camera: request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()
	return d, nil
}

func (d *displayImpl) Device() *wgpu.Device {
	return d.device
}

func (d *displayImpl) Queue() *wgpu.Queue {
	return d.queue
}

func (d *displayImpl) Configure(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	capabilities := d.surface.GetCapabilities(d.adapter)
	d.format = capabilities.Formats[0]
	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	d.configured = true
}

func (d *displayImpl) Present(color wgpu.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.configured {
		return fmt.Errorf("camera: display surface is not configured")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("camera: acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("camera: create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("camera: create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: color,
			},
		},
	})
	pass.End()
	pass.Release() // must happen before Finish

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("camera: finish frame: %w", err)
	}
	defer commandBuffer.Release()

	d.queue.Submit(commandBuffer)
	d.surface.Present()
	return nil
}

func (d *displayImpl) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	d.configured = false
}
