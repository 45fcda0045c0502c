package camera

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique GPU buffer labels for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	label  string
	aspect float32
	near   float32
	far    float32

	current view.CameraView

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
	frustum                 common.Frustum

	buffer *wgpu.Buffer
}

// Camera presents a composed CameraView: it turns the view into view and projection
// matrices, answers visibility queries against the resulting frustum and uploads the
// camera uniform to the GPU.
type Camera interface {
	// Apply makes v the presented view and recomputes every matrix.
	//
	// Parameters:
	//   - v: the composed view
	Apply(v view.CameraView)

	// View returns the presented view.
	//
	// Returns:
	//   - view.CameraView: the last applied view
	View() view.CameraView

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetAspect sets the aspect ratio and recomputes matrices. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetViewport sets the aspect ratio from a viewport size. A zero-area viewport is ignored.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// SetClipPlanes sets the near and far clipping distances and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClipPlanes(near, far float32)

	// VerticalFOV returns the vertical field of view in degrees derived from the view's
	// horizontal FOV and the aspect ratio.
	VerticalFOV() float32

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	InverseProjectionMatrix() mgl32.Mat4

	// Frustum returns the view frustum of the presented view.
	Frustum() common.Frustum

	// InView reports whether a world-space point is inside the frustum.
	//
	// Parameters:
	//   - point: the world-space point
	//
	// Returns:
	//   - bool: true if visible
	InView(point mgl32.Vec3) bool

	// InViewSphere reports whether a sphere intersects the frustum.
	//
	// Parameters:
	//   - center: sphere center
	//   - radius: sphere radius
	//
	// Returns:
	//   - bool: true if any part may be visible
	InViewSphere(center mgl32.Vec3, radius float32) bool

	// Uniform returns the GPU camera uniform for the presented view.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform data
	Uniform() GPUCameraUniform

	// CreateUniformBuffer allocates the camera uniform buffer on device.
	//
	// Parameters:
	//   - device: the WebGPU device
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: error if allocation fails
	CreateUniformBuffer(device *wgpu.Device) (*wgpu.Buffer, error)

	// Upload writes the current uniform into the buffer created by CreateUniformBuffer.
	//
	// Parameters:
	//   - queue: the device queue
	//
	// Returns:
	//   - error: error if no buffer was created
	Upload(queue *wgpu.Queue) error

	// Release frees the GPU buffer, if any.
	Release()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera presenting the default view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:      &sync.Mutex{},
		label:   "camera_" + strconv.FormatUint(cameraCount.Add(1)-1, 10),
		aspect:  16.0 / 9.0,
		near:    1,
		far:     100000,
		current: view.NewCameraView(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Apply(v view.CameraView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = v
	c.updateMatrices()
}

func (c *cameraImpl) View() view.CameraView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

func (c *cameraImpl) SetClipPlanes(near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) VerticalFOV() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.RadToDeg(c.verticalFOV())
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum
}

func (c *cameraImpl) InView(point mgl32.Vec3) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum.ContainsPoint(point)
}

func (c *cameraImpl) InViewSphere(center mgl32.Vec3, radius float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum.ContainsSphere(center, radius)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:          c.viewProjectionMatrix,
		CameraPosition:    c.current.Position,
		FieldOfView:       c.current.FOV,
		PostProcessWeight: c.current.PostProcessWeight,
		ExposureBias:      c.current.PostProcess.ExposureBias,
		VignetteIntensity: c.current.PostProcess.VignetteIntensity,
		Saturation:        c.current.PostProcess.Saturation,
	}
}

func (c *cameraImpl) CreateUniformBuffer(device *wgpu.Device) (*wgpu.Buffer, error) {
	size := (&GPUCameraUniform{}).Size()
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: c.label + " Uniform Buffer",
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("camera: create uniform buffer: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer != nil {
		c.buffer.Release()
	}
	c.buffer = buf
	return buf, nil
}

func (c *cameraImpl) Upload(queue *wgpu.Queue) error {
	uniform := c.Uniform()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer == nil {
		return fmt.Errorf("camera: %s has no uniform buffer", c.label)
	}
	queue.WriteBuffer(c.buffer, 0, uniform.Marshal())
	return nil
}

func (c *cameraImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
}

// verticalFOV converts the view's horizontal FOV into a vertical FOV in radians.
// Caller must hold the mutex.
func (c *cameraImpl) verticalFOV() float32 {
	h := mgl32.DegToRad(common.Clamp(c.current.FOV, 1, 179))
	return 2 * math32.Atan(math32.Tan(h/2)/c.aspect)
}

// updateMatrices recalculates the view, projection, view-projection and inverse projection
// matrices and the frustum from the current view. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	forward, _, up := c.current.Rotation.Axes()
	eye := c.current.Position
	c.viewMatrix = mgl32.LookAtV(eye, eye.Add(forward), up)
	c.projectionMatrix = mgl32.Perspective(c.verticalFOV(), c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
	c.frustum = common.ExtractFrustum(c.viewProjectionMatrix)
}
