package shake

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShake() effect.ShakeConfig {
	return effect.ShakeConfig{
		Scale:             2,
		LocationAmplitude: mgl32.Vec3{0, 5, 5},
		RotationAmplitude: common.Rotator{Pitch: 1, Yaw: 1},
		Frequency:         10,
		Duration:          1,
		BlendIn:           0.1,
		BlendOut:          0.2,
	}
}

func TestShakeOffsetsStayWithinAmplitude(t *testing.T) {
	p := NewPlayer(WithSeed(7))
	h := p.StartShake(testShake())
	require.True(t, h.Valid())

	moved := false
	for range 40 {
		v := view.NewCameraView()
		p.Apply(&v, 0.02)
		assert.LessOrEqual(t, math32.Abs(v.Position[1]), float32(10)+1e-4)
		assert.LessOrEqual(t, math32.Abs(v.Position[2]), float32(10)+1e-4)
		assert.LessOrEqual(t, math32.Abs(v.Rotation.Pitch), float32(2)+1e-4)
		assert.Equal(t, float32(0), v.Position[0])
		if v.Position.Len() > 0 {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestShakeEndsAfterDuration(t *testing.T) {
	p := NewPlayer(WithSeed(1))
	h := p.StartShake(testShake())
	v := view.NewCameraView()
	for range 12 {
		p.Apply(&v, 0.1)
	}
	assert.False(t, h.Valid())
	assert.Equal(t, 0, p.ActiveCount())

	still := view.NewCameraView()
	p.Apply(&still, 0.1)
	assert.Equal(t, view.NewCameraView(), still)
}

func TestShakeStop(t *testing.T) {
	p := NewPlayer(WithSeed(3))
	cfg := testShake()
	cfg.Duration = 0

	hard := p.StartShake(cfg)
	soft := p.StartShake(cfg)
	assert.Equal(t, 2, p.ActiveCount())

	hard.Stop(true)
	assert.False(t, hard.Valid())

	soft.Stop(false)
	v := view.NewCameraView()
	p.Apply(&v, 0.1)
	assert.True(t, soft.Valid(), "still blending out")
	p.Apply(&v, 0.1)
	assert.False(t, soft.Valid())
	assert.Equal(t, 0, p.ActiveCount())
}

func TestLoopingShakeUntilStopAll(t *testing.T) {
	p := NewPlayer()
	cfg := testShake()
	cfg.Duration = 0
	h := p.StartShake(cfg)

	v := view.NewCameraView()
	for range 100 {
		p.Apply(&v, 0.1)
	}
	assert.True(t, h.Valid())

	p.StopAll(true)
	assert.False(t, h.Valid())
}
