package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestUniformLayout(t *testing.T) {
	u := GPUCameraUniform{FieldOfView: 75, PostProcessWeight: 0.5, Saturation: 0.25, CameraPosition: [3]float32{1, 2, 3}}
	assert.Equal(t, 96, u.Size())

	buf := u.Marshal()
	assert.Len(t, buf, 96)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Equal(t, float32(75), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[80:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[92:])))
	assert.Contains(t, GPUCameraUniformSource, "post_process_weight")
}

func TestApplyAndInView(t *testing.T) {
	c := NewCamera(WithAspect(1))
	v := view.NewCameraView()
	v.Position = mgl32.Vec3{0, 0, 0}
	v.Rotation = common.Rotator{Yaw: 90}
	c.Apply(v)

	assert.True(t, c.InView(mgl32.Vec3{0, 500, 0}))
	assert.False(t, c.InView(mgl32.Vec3{500, 0, 0}))
	assert.False(t, c.InView(mgl32.Vec3{0, -500, 0}))
	assert.True(t, c.InViewSphere(mgl32.Vec3{0, 500, 0}, 10))

	// at aspect 1 the vertical FOV equals the horizontal FOV
	assert.InDelta(t, 90, c.VerticalFOV(), 1e-3)
}

func TestViewportAspect(t *testing.T) {
	c := NewCamera()
	c.SetViewport(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-5)
	assert.Less(t, c.VerticalFOV(), float32(90))

	c.SetViewport(0, 100)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-5, "minimized windows keep the last aspect")
}

func TestUniformFollowsView(t *testing.T) {
	c := NewCamera()
	v := view.NewCameraView()
	v.Position = mgl32.Vec3{10, 20, 30}
	v.FOV = 70
	v.PostProcessWeight = 0.25
	c.Apply(v)

	u := c.Uniform()
	assert.Equal(t, [3]float32{10, 20, 30}, u.CameraPosition)
	assert.Equal(t, float32(70), u.FieldOfView)
	assert.Equal(t, float32(0.25), u.PostProcessWeight)
	assert.Equal(t, [16]float32(c.ViewProjectionMatrix()), u.ViewProj)
	assert.Error(t, c.Upload(nil), "uploading without a buffer fails")
}
