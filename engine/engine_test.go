package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-camera/engine/config"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
	"github.com/Carmen-Shannon/oxy-camera/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-camera/engine/rig"
	"github.com/Carmen-Shannon/oxy-camera/engine/scene"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewport struct {
	width, height int
	views         int
}

func (v *viewport) Apply(view.CameraView)         { v.views++ }
func (v *viewport) SetViewport(width, height int) { v.width, v.height = width, height }

func newTestScene() scene.Scene {
	player := game_object.NewGameObject(game_object.WithVelocity(mgl32.Vec3{100, 0, 0}))
	return scene.NewScene("test", scene.WithActive(true), scene.WithObjects(player), scene.WithPrimarySubject(1))
}

func newThirdPersonRig() rig.Rig {
	return rig.NewRig(rig.WithPipeline(pipeline.NewThirdPerson(nil, 0, pipeline.DefaultThirdPersonConfig())))
}

func TestStepTicksEveryRig(t *testing.T) {
	s := newTestScene()
	e := NewEngine(WithScene(s), WithWorkers(2))
	defer e.Quit()

	for i := range 4 {
		e.AddRig(i, newThirdPersonRig())
	}

	stats := e.Step(1)
	assert.Equal(t, 4, stats.Rigs)
	assert.Zero(t, stats.Effects)

	for key, r := range e.Rigs() {
		v := r.View()
		assert.InDelta(t, 100, v.PivotPosition[0], 1e-3, "rig %d pivot follows the moved player", key)
		assert.InDelta(t, -200, v.Position[0], 1e-3, "rig %d", key)
		assert.InDelta(t, 100, v.Position[2], 1e-3, "rig %d", key)
	}
}

func TestStepCountsEffects(t *testing.T) {
	e := NewEngine(WithScene(newTestScene()))
	defer e.Quit()

	r := newThirdPersonRig()
	e.AddRig(0, r)
	e.AddRig(1, newThirdPersonRig())

	cfg := effect.DefaultConfig("zoom")
	cfg.Timing.Duration = 0
	cfg.FOV = &effect.FOVConfig{Value: 5}
	_, err := r.ActivateEffect(cfg)
	require.NoError(t, err)

	stats := e.Step(0.016)
	assert.Equal(t, 2, stats.Rigs)
	assert.Equal(t, 1, stats.Effects)
}

func TestStepSkipsInactiveScene(t *testing.T) {
	s := newTestScene()
	s.SetActive(false)
	e := NewEngine(WithScene(s))
	defer e.Quit()

	e.Step(1)
	pos, ok := s.ActorPosition(1)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, pos)
}

func TestRigRegistry(t *testing.T) {
	s := newTestScene()
	e := NewEngine(WithScene(s))
	defer e.Quit()

	first := newThirdPersonRig()
	e.AddRig(3, first)
	assert.Same(t, s, first.World())
	assert.Same(t, first, e.Rig(3))

	cfg := effect.DefaultConfig("zoom")
	cfg.Timing.Duration = 0
	_, err := first.ActivateEffect(cfg)
	require.NoError(t, err)

	second := newThirdPersonRig()
	e.AddRig(3, second)
	assert.Same(t, second, e.Rig(3))
	assert.False(t, first.HasActiveEffects(), "a replaced rig is closed")
	assert.False(t, first.Mode().IsActive())

	e.RemoveRig(3)
	assert.Nil(t, e.Rig(3))
	assert.Empty(t, e.Rigs())
	assert.False(t, second.Mode().IsActive())

	e.RemoveRig(3)
}

func TestSetSceneRebindsRigs(t *testing.T) {
	e := NewEngine()
	defer e.Quit()

	r := newThirdPersonRig()
	e.AddRig(0, r)
	assert.Nil(t, r.World())

	s := newTestScene()
	e.SetScene(s)
	assert.Same(t, s, e.Scene())
	assert.Same(t, s, r.World())
	assert.Same(t, s, r.Mode().World())
}

func TestResizeForwardsViewport(t *testing.T) {
	out := &viewport{}
	e := NewEngine(WithRig(0, rig.NewRig(rig.WithPresenter(out))), WithRig(1, rig.NewRig()))
	defer e.Quit()

	var resized [2]int
	e.SetResizeCallback(func(width, height int) { resized = [2]int{width, height} })

	e.(*engine).resize(800, 600)
	assert.Equal(t, [2]int{800, 600}, resized)
	assert.Equal(t, 800, out.width)
	assert.Equal(t, 600, out.height)

	e.Step(0.016)
	assert.Equal(t, 1, out.views)
}

func TestWithSettings(t *testing.T) {
	e := NewEngine(WithSettings(config.EngineSettings{TickRate: 120, RenderFrameLimit: 30, Workers: 3, Profiling: true}))
	defer e.Quit()

	impl := e.(*engine)
	assert.Equal(t, time.Second/120, impl.engineTickRate)
	assert.Equal(t, time.Second/30, impl.renderFrameLimit)
	assert.Equal(t, 3, impl.rigWorkers)
	assert.True(t, impl.profilingEnabled.Load())

	e.DisableProfiler()
	assert.False(t, impl.profilingEnabled.Load())
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, impl.engineTickRate)
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	e := NewEngine(WithScene(newTestScene()), WithRig(0, newThirdPersonRig()), WithTickRate(200))

	ticks := make(chan float32, 64)
	e.SetTickCallback(func(dt float32) {
		select {
		case ticks <- dt:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("tick callback never ran")
	}

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.NotEqual(t, view.CameraView{}, e.Rig(0).View())
}
