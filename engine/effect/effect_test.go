package effect

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeHandle struct {
	valid   bool
	stopped bool
	hard    bool
}

func (h *fakeHandle) Valid() bool { return h.valid }

func (h *fakeHandle) Stop(immediate bool) {
	h.stopped = true
	h.hard = immediate
	h.valid = false
}

type fakePlayer struct {
	started []ShakeConfig
	handles []*fakeHandle
}

func (p *fakePlayer) StartShake(config ShakeConfig) ShakeHandle {
	h := &fakeHandle{valid: true}
	p.started = append(p.started, config)
	p.handles = append(p.handles, h)
	return h
}

type fakeWorld struct {
	calculator.World
	positions map[calculator.ActorID]mgl32.Vec3
}

func (w fakeWorld) ActorPosition(id calculator.ActorID) (mgl32.Vec3, bool) {
	p, ok := w.positions[id]
	return p, ok
}

func offsetEffect(timing Timing) *Effect {
	cfg := DefaultConfig("nudge")
	cfg.Timing = timing
	cfg.Location = &LocationConfig{Offset: mgl32.Vec3{0, 0, 100}}
	return NewEffect(cfg)
}

func tick(m Modifier, dt float32) (view.CameraView, bool) {
	v := view.NewCameraView()
	ok := m.ModifyCamera(&v, dt)
	return v, ok
}

func TestMonotonicBlendIn(t *testing.T) {
	e := offsetEffect(Timing{BlendIn: 1, BlendOut: 1})
	e.Activate(true)

	samples := []float32{e.Weight()}
	for range 4 {
		tick(e, 0.25)
		samples = append(samples, e.Weight())
	}

	assert.Equal(t, float32(0), samples[0])
	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i], samples[i-1], "sample %d", i)
	}
	assert.InDelta(t, 0.5, samples[2], 1e-5)
	assert.Equal(t, float32(1), samples[4])
}

func TestInterruptedExitStartsFromCurrentWeight(t *testing.T) {
	e := offsetEffect(Timing{BlendIn: 1, BlendOut: 1})
	e.Activate(true)
	tick(e, 0.5)
	before := e.Weight()
	require.InDelta(t, 0.5, before, 1e-5)

	e.Deactivate(false)
	assert.True(t, e.IsExiting())
	assert.Equal(t, before, e.Weight())

	prev := before
	for range 3 {
		v, ok := tick(e, 0.25)
		assert.True(t, ok)
		assert.Less(t, e.Weight(), prev)
		assert.InDelta(t, 100*e.Weight(), v.Position[2], 1e-3)
		prev = e.Weight()
	}
	assert.InDelta(t, 0.5*(1-blend.EaseInOut(0.75)), prev, 1e-5)

	_, ok := tick(e, 0.25)
	assert.False(t, ok)
	assert.False(t, e.IsActive())
	assert.Equal(t, float32(0), e.Weight())
}

func TestDoubleImmediateDeactivate(t *testing.T) {
	e := offsetEffect(DefaultTiming())
	e.Activate(true)
	tick(e, 0.1)

	e.Deactivate(true)
	assert.False(t, e.IsActive())
	assert.Equal(t, float32(0), e.Weight())

	assert.NotPanics(t, func() { e.Deactivate(true) })
	assert.False(t, e.IsActive())
	assert.False(t, e.IsExiting())
	assert.Equal(t, float32(0), e.Weight())

	_, ok := tick(e, 0.1)
	assert.False(t, ok)
}

func TestDeactivateAtZeroWeightRetires(t *testing.T) {
	e := offsetEffect(Timing{BlendIn: 1, BlendOut: 1})
	e.Activate(true)
	e.Deactivate(false)
	assert.False(t, e.IsActive())
	assert.False(t, e.IsExiting())
}

func TestEndBehavior(t *testing.T) {
	t.Run("blend back", func(t *testing.T) {
		e := offsetEffect(Timing{Duration: 1, BlendOut: 0.5, EndBehavior: EndBlendBack})
		e.Activate(true)
		_, ok := tick(e, 1)
		assert.True(t, ok)
		assert.True(t, e.IsExiting())
		assert.Equal(t, float32(1), e.Weight())

		tick(e, 0.25)
		assert.InDelta(t, 0.5, e.Weight(), 1e-5)
		tick(e, 0.25)
		assert.False(t, e.IsActive())
	})

	t.Run("force end", func(t *testing.T) {
		e := offsetEffect(Timing{Duration: 1, BlendOut: 0.5, EndBehavior: EndForceEnd})
		e.Activate(true)
		_, ok := tick(e, 1.2)
		assert.False(t, ok)
		assert.False(t, e.IsActive())
	})

	t.Run("stay", func(t *testing.T) {
		e := offsetEffect(Timing{Duration: 1, BlendOut: 0.5, EndBehavior: EndStay})
		e.Activate(true)
		_, ok := tick(e, 5)
		assert.True(t, ok)
		assert.True(t, e.IsActive())
		assert.False(t, e.IsExiting())
	})
}

func TestExitRetiresWhenCurveFallsShort(t *testing.T) {
	curve, err := blend.NewScriptCurve("result = alpha * 0.9")
	require.NoError(t, err)

	e := offsetEffect(Timing{BlendOut: 0.5})
	e.SetCurve(curve)
	e.Activate(true)
	_, ok := tick(e, 0.1)
	require.True(t, ok)

	e.Deactivate(false)
	require.True(t, e.IsExiting())
	tick(e, 0.25)
	assert.True(t, e.IsActive())
	assert.InDelta(t, 1-0.45, e.Weight(), 1e-4)

	_, ok = tick(e, 0.25)
	assert.False(t, ok)
	assert.False(t, e.IsActive())
	assert.Equal(t, float32(0), e.Weight())
}

func TestPauseFreezesTime(t *testing.T) {
	e := offsetEffect(Timing{BlendIn: 1})
	e.Activate(true)
	tick(e, 0.5)

	e.Pause()
	_, ok := tick(e, 0.4)
	assert.False(t, ok)
	assert.True(t, e.IsPaused())
	assert.InDelta(t, 0.5, e.ActiveTime(), 1e-6)
	assert.InDelta(t, 0.5, e.Weight(), 1e-5)

	e.Resume()
	tick(e, 0.25)
	assert.InDelta(t, 0.75, e.ActiveTime(), 1e-6)
}

func TestActivateResetTimer(t *testing.T) {
	e := offsetEffect(Timing{BlendIn: 1})
	e.Activate(true)
	tick(e, 0.5)

	e.Activate(false)
	assert.InDelta(t, 0.5, e.ActiveTime(), 1e-6)
	e.Activate(true)
	assert.Equal(t, float32(0), e.ActiveTime())
}

func TestInterruptUsesShortBlend(t *testing.T) {
	e := offsetEffect(Timing{BlendOut: 2, InterruptBlendTime: 0.15})
	e.Activate(true)
	tick(e, 0.1)

	e.Interrupt()
	assert.True(t, e.IsExiting())
	assert.Equal(t, float32(2), e.Timing().BlendOut)

	tick(e, 0.15)
	assert.False(t, e.IsActive())
}

func TestShakeKeepsEffectAlive(t *testing.T) {
	player := &fakePlayer{}
	cfg := DefaultConfig("hit")
	cfg.Timing = Timing{BlendIn: 1, BlendOut: 0.2}
	shake := DefaultShakeConfig()
	cfg.Shake = &shake
	e := NewEffect(cfg, WithShakePlayer(player))

	e.Activate(true)
	require.Len(t, player.handles, 1)

	_, ok := tick(e, 0)
	assert.True(t, ok, "kept alive at zero weight while the shake plays")
	assert.True(t, e.ShouldKeepActive(0))

	e.Deactivate(true)
	assert.True(t, player.handles[0].stopped)
	assert.True(t, player.handles[0].hard)
	assert.False(t, e.ShouldKeepActive(0))
}

func TestShakeStartsWhenPlayerArrives(t *testing.T) {
	cfg := DefaultConfig("late")
	cfg.Timing = Timing{}
	shake := DefaultShakeConfig()
	cfg.Shake = &shake
	e := NewEffect(cfg)

	e.Activate(true)
	_, ok := tick(e, 0.016)
	assert.True(t, ok)

	player := &fakePlayer{}
	e.SetShakePlayer(player)
	tick(e, 0.016)
	assert.Len(t, player.started, 1)

	tick(e, 0.016)
	assert.Len(t, player.started, 1)
}

func TestEffectKinds(t *testing.T) {
	base := view.NewCameraView()
	base.Rotation = common.Rotator{Yaw: 90}

	t.Run("local location", func(t *testing.T) {
		v := base
		e := &Effect{config: Config{Location: &LocationConfig{Offset: mgl32.Vec3{10, 0, 0}, LocalSpace: true}}}
		assert.True(t, e.ApplyEffect(&v, 0.5, 0))
		assert.InDelta(t, 5, v.Position[1], 1e-4)
	})

	t.Run("rotation", func(t *testing.T) {
		v := base
		e := &Effect{config: Config{Rotation: &RotationConfig{Offset: common.Rotator{Yaw: 200}}}}
		e.ApplyEffect(&v, 1, 0)
		assert.InDelta(t, -70, v.Rotation.Yaw, 1e-3)
	})

	t.Run("fov offset clamps", func(t *testing.T) {
		v := base
		e := &Effect{config: Config{FOV: &FOVConfig{Mode: FOVOffset, Value: 200}}}
		e.ApplyEffect(&v, 1, 0)
		assert.Equal(t, MaxFOV, v.FOV)
	})

	t.Run("fov override", func(t *testing.T) {
		v := base
		e := &Effect{config: Config{FOV: &FOVConfig{Mode: FOVOverride, Value: 50}}}
		e.ApplyEffect(&v, 0.5, 0)
		assert.InDelta(t, 70, v.FOV, 1e-4)
	})

	t.Run("look at actor", func(t *testing.T) {
		v := base
		w := fakeWorld{positions: map[calculator.ActorID]mgl32.Vec3{4: {0, -100, 0}}}
		e := NewEffect(Config{Name: "stare", LookAt: &LookAtConfig{Actor: 4, Weight: 1}}, WithWorld(w))
		assert.True(t, e.ApplyEffect(&v, 1, 0))
		assert.InDelta(t, -90, v.Rotation.Yaw, 1e-3)

		v = base
		e.SetLookAtLocation(mgl32.Vec3{100, 0, 0})
		e.ApplyEffect(&v, 0.5, 0)
		assert.InDelta(t, 45, v.Rotation.Yaw, 1e-3)
	})

	t.Run("look at missing actor", func(t *testing.T) {
		v := base
		e := &Effect{world: fakeWorld{}, config: Config{LookAt: &LookAtConfig{Actor: 9, Weight: 1}}}
		assert.False(t, e.ApplyEffect(&v, 1, 0))
		assert.Equal(t, base, v)
	})

	t.Run("post process", func(t *testing.T) {
		v := base
		settings := view.PostProcessSettings{VignetteIntensity: 0.8}
		e := &Effect{config: Config{PostProcess: &PostProcessConfig{Settings: settings, Weight: 0.5}}}
		e.ApplyEffect(&v, 0.5, 0)
		assert.Equal(t, settings, v.PostProcess)
		assert.InDelta(t, 0.25, v.PostProcessWeight, 1e-6)
	})
}

func TestConfigYAMLDefaults(t *testing.T) {
	src := `
name: slam
blend_in: 0.1
curve: linear
fov:
  mode: override
  value: 60
look_at:
  location: [1, 2, 3]
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, "slam", cfg.Name)
	assert.Equal(t, float32(0.1), cfg.Timing.BlendIn)
	assert.Equal(t, float32(0.5), cfg.Timing.BlendOut)
	assert.Equal(t, float32(2), cfg.Timing.Duration)
	assert.Equal(t, blend.CurveLinear, cfg.Curve)
	require.NotNil(t, cfg.FOV)
	assert.Equal(t, FOVOverride, cfg.FOV.Mode)
	require.NotNil(t, cfg.LookAt)
	assert.Equal(t, float32(1), cfg.LookAt.Weight)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.LookAt.Location)
	assert.NoError(t, cfg.Validate())

	cfg.FOV.Value = 300
	assert.Error(t, cfg.Validate())
	assert.Error(t, Config{}.Validate())
}

func TestCustomHooks(t *testing.T) {
	calls := 0
	b := NewBase("custom", Timing{}, nil, hookFuncs{apply: func(v *view.CameraView, w float32) bool {
		calls++
		v.FOV = 42
		return true
	}})
	b.Activate(true)
	v, ok := tick(b, 0.016)
	assert.True(t, ok)
	assert.Equal(t, float32(42), v.FOV)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "custom", b.Name())
}

type hookFuncs struct {
	apply func(v *view.CameraView, w float32) bool
}

func (h hookFuncs) ApplyEffect(v *view.CameraView, w, _ float32) bool { return h.apply(v, w) }
func (h hookFuncs) KeepAlive(float32) bool                            { return false }
