package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorld struct {
	positions map[calculator.ActorID]mgl32.Vec3
	primary   calculator.ActorID
	control   common.Rotator
	locked    *mgl32.Vec3
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{positions: map[calculator.ActorID]mgl32.Vec3{}}
}

func (w *fakeWorld) ActorPosition(id calculator.ActorID) (mgl32.Vec3, bool) {
	p, ok := w.positions[id]
	return p, ok
}

func (w *fakeWorld) ActorRotation(id calculator.ActorID) (common.Rotator, bool) {
	_, ok := w.positions[id]
	return common.Rotator{}, ok
}

func (w *fakeWorld) ActorEyeHeight(id calculator.ActorID) (float32, bool) {
	return 0, false
}

func (w *fakeWorld) PrimarySubject() calculator.ActorID { return w.primary }
func (w *fakeWorld) ControlRotation() common.Rotator    { return w.control }
func (w *fakeWorld) HasLockedTarget() bool              { return w.locked != nil }

func (w *fakeWorld) LockedFocusLocation() (mgl32.Vec3, bool) {
	if w.locked == nil {
		return common.VecZero, false
	}
	return *w.locked, true
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-2, "component %d: want %v got %v", i, want, got)
	}
}

func TestEmptyPipelineFallbacks(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{100, 0, 0}

	p := NewPipeline(WithWorld(w))
	p.Activate()
	v := p.ComputeView(0.016)

	assertVec(t, mgl32.Vec3{100, 0, 0}, v.PivotPosition)
	assertVec(t, mgl32.Vec3{-200, 0, 100}, v.Position)
	assertVec(t, mgl32.Vec3{100, 0, 0}, v.ControlLocation)
	assert.InDelta(t, 0, v.Rotation.Yaw, 1e-3)
	assert.Less(t, v.Rotation.Pitch, float32(0), "fallback rotation looks down at the pivot")
	assert.Equal(t, view.DefaultFOV, v.FOV)
}

func TestPipelineWithoutWorld(t *testing.T) {
	p := NewPipeline()
	p.Activate()
	v := p.ComputeView(0.016)

	assertVec(t, common.VecZero, v.PivotPosition)
	assertVec(t, FallbackOffset, v.Position)
	assert.Equal(t, view.DefaultFOV, v.FOV)
}

func TestLostSubjectKeepsLastPivot(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{50, 50, 0}

	p := NewPipeline(WithWorld(w))
	p.Activate()
	p.ComputeView(0.016)

	delete(w.positions, 1)
	v := p.ComputeView(0.016)
	assertVec(t, mgl32.Vec3{50, 50, 0}, v.PivotPosition)
}

func TestPivotOffset(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{0, 0, 0}
	w.control = common.Rotator{Yaw: 90}

	p := NewPipeline(WithWorld(w), WithPivotOffset(PivotOffset{
		Offset:             mgl32.Vec3{10, 0, 0},
		UseControlRotation: true,
		YawOnly:            true,
	}))
	p.Activate()
	v := p.ComputeView(0.016)
	assertVec(t, mgl32.Vec3{0, 10, 0}, v.PivotPosition)
}

func TestDualFocusOrbitPreset(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{0, 0, 0}
	locked := mgl32.Vec3{500, 0, 0}
	w.locked = &locked

	p := NewDualFocusOrbit(w, 0, DefaultDualFocusOrbitConfig())
	p.Activate()
	v := p.ComputeView(0.016)

	assertVec(t, mgl32.Vec3{200, 0, 0}, v.PivotPosition)
	assertVec(t, mgl32.Vec3{-300, 0, 150}, v.Position)
	assert.InDelta(t, 500, common.Flatten(v.PivotPosition.Sub(v.Position)).Len(), 1e-2)

	expected := common.RotatorFromDirection(v.PivotPosition.Sub(v.Position))
	assert.True(t, v.Rotation.Equals(expected, 1e-2), "got %+v", v.Rotation)

	cfg := DefaultDualFocusOrbitConfig().FOV
	assert.GreaterOrEqual(t, v.FOV, cfg.MinFOV)
	assert.LessOrEqual(t, v.FOV, cfg.MaxFOV)

	assert.True(t, p.AddOrbitInput(15))
	assert.False(t, p.AddPanOffset(mgl32.Vec3{1, 0, 0}))
}

func TestTopDownPreset(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{0, 0, 0}

	p := NewTopDown(w, 0, DefaultTopDownConfig())
	p.Activate()
	v := p.ComputeView(0.016)
	assertVec(t, mgl32.Vec3{-1060.66, -1060.66, 1500}, v.Position)
	assert.Equal(t, float32(80), v.FOV)

	assert.True(t, p.AddPanOffset(mgl32.Vec3{100, 0, 0}))
	assert.False(t, p.AddOrbitInput(10))
	p.Activate()
	v = p.ComputeView(0.016)
	assertVec(t, mgl32.Vec3{-960.66, -1060.66, 1500}, v.Position)
}

func TestThirdPersonPreset(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{0, 0, 0}
	w.control = common.Rotator{Yaw: 180}

	p := NewThirdPerson(w, 0, DefaultThirdPersonConfig())
	p.Activate()
	v := p.ComputeView(0.016)
	assertVec(t, mgl32.Vec3{300, 0, 100}, v.Position)
	assert.True(t, v.Rotation.Equals(common.Rotator{Yaw: 180}, 1e-3), "got %+v", v.Rotation)
	assert.Equal(t, float32(90), v.FOV)
}

func TestSwapCalculator(t *testing.T) {
	p := NewPipeline()
	p.Activate()

	first := calculator.NewStaticFOV(calculator.StaticFOVConfig{BaseFOV: 70})
	p.SetFOVCalculator(first)
	assert.True(t, first.IsActive())
	assert.Equal(t, float32(70), p.ComputeView(0.016).FOV)

	second := calculator.NewStaticFOV(calculator.StaticFOVConfig{BaseFOV: 50})
	p.SetFOVCalculator(second)
	assert.False(t, first.IsActive())
	assert.True(t, second.IsActive())
	assert.Equal(t, float32(50), p.ComputeView(0.016).FOV)

	p.SetFOVCalculator(nil)
	assert.False(t, second.IsActive())
	assert.Nil(t, p.FOVCalculator())
	assert.Equal(t, view.DefaultFOV, p.ComputeView(0.016).FOV)

	p.Deactivate()
	idle := calculator.NewStaticFOV(calculator.DefaultStaticFOVConfig())
	p.SetFOVCalculator(idle)
	assert.False(t, idle.IsActive())
}

func TestActivateResetsBlend(t *testing.T) {
	p := NewPipeline(WithActivationBlend(blend.NewActivationBlend(blend.WithBlendTime(1))))
	p.Activate()
	require.Equal(t, blend.PhaseIdle, p.ActivationBlend().Phase())

	p.ActivationBlend().Update(2)
	require.Equal(t, blend.PhaseSettled, p.ActivationBlend().Phase())

	p.Activate()
	assert.Equal(t, blend.PhaseIdle, p.ActivationBlend().Phase())
	assert.Equal(t, float32(0), p.ActivationBlend().Weight())
	assert.True(t, p.IsActive())
}

func TestThirdPersonDynamicFOV(t *testing.T) {
	w := newFakeWorld()
	w.primary = 1
	w.positions[1] = mgl32.Vec3{0, 0, 0}

	cfg := DefaultThirdPersonConfig()
	dynamic := calculator.DefaultDynamicFOVConfig()
	dynamic.BaseFOV = 70
	cfg.DynamicFOV = &dynamic

	p := NewThirdPerson(w, 0, cfg)
	require.IsType(t, &calculator.DynamicFOV{}, p.FOVCalculator())
	p.Activate()
	assert.InDelta(t, 70, p.ComputeView(0.016).FOV, 1e-4, "a world without velocity holds the base FOV")
}
