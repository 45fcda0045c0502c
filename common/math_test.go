package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestInterpTo(t *testing.T) {
	tests := []struct {
		name      string
		current   float32
		target    float32
		deltaTime float32
		speed     float32
		want      float32
	}{
		{"zero delta time snaps", 0, 10, 0, 5, 10},
		{"negative delta time snaps", 0, 10, -1, 5, 10},
		{"zero speed snaps", 0, 10, 0.1, 0, 10},
		{"partial step", 0, 10, 0.1, 5, 5},
		{"overshoot clamped", 0, 10, 1, 5, 10},
		{"already there", 3, 3, 0.1, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InterpTo(tt.current, tt.target, tt.deltaTime, tt.speed), 1e-5)
		})
	}
}

func TestVInterpTo(t *testing.T) {
	got := VInterpTo(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, -10, 4}, 0.05, 4)
	assert.InDelta(t, 2, got[0], 1e-5)
	assert.InDelta(t, -2, got[1], 1e-5)
	assert.InDelta(t, 0.8, got[2], 1e-5)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, VInterpTo(mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}, 0, 4))
}

func TestRInterpToTakesShortestPath(t *testing.T) {
	got := RInterpTo(Rotator{Yaw: 170}, Rotator{Yaw: -170}, 0.5, 1)
	assert.InDelta(t, 180, got.Yaw, 1e-3)
}

func TestSafeNormal(t *testing.T) {
	assert.Equal(t, VecZero, SafeNormal(mgl32.Vec3{}))
	n := SafeNormal(mgl32.Vec3{0, 3, 4})
	assert.InDelta(t, 1, n.Len(), 1e-5)
	assert.InDelta(t, 0.6, n[1], 1e-5)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 1))
	assert.Equal(t, float32(0.5), Clamp01(0.5))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
}

func TestFrustumContainsPoint(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	viewM := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1})
	f := ExtractFrustum(proj.Mul4(viewM))

	assert.True(t, f.ContainsPoint(mgl32.Vec3{10, 0, 0}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{-10, 0, 0}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{200, 0, 0}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{10, 50, 0}))
	assert.True(t, f.ContainsSphere(mgl32.Vec3{10, 7, 0}, 2))
}
