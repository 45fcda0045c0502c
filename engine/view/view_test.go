package view

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBlendEndpoints(t *testing.T) {
	a := CameraView{Position: mgl32.Vec3{0, 0, 0}, FOV: 90}
	b := CameraView{Position: mgl32.Vec3{100, 0, 0}, FOV: 60, Rotation: common.Rotator{Yaw: 90}}

	assert.Equal(t, a, a.Blend(b, 0))
	assert.Equal(t, b, a.Blend(b, 1))
	assert.Equal(t, b, a.Blend(b, 3))
}

func TestBlendMidpoint(t *testing.T) {
	a := CameraView{Position: mgl32.Vec3{0, 0, 0}, FOV: 90, Rotation: common.Rotator{Yaw: 170}}
	b := CameraView{Position: mgl32.Vec3{100, 0, 0}, FOV: 60, Rotation: common.Rotator{Yaw: -170}}

	mid := a.Blend(b, 0.5)
	assert.InDelta(t, 50, mid.Position[0], 1e-4)
	assert.InDelta(t, 75, mid.FOV, 1e-4)
	assert.InDelta(t, 180, mid.Rotation.Yaw, 1e-3)
}

func TestArmLength(t *testing.T) {
	v := CameraView{Position: mgl32.Vec3{-300, 0, 400}, PivotPosition: mgl32.Vec3{0, 0, 0}}
	assert.InDelta(t, 500, v.ArmLength(), 1e-3)
	assert.Equal(t, DefaultFOV, NewCameraView().FOV)
}
