package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
	assert.Equal(t, float64(60), s.Engine.TickRate)
	assert.Equal(t, float32(80), s.Modes.TopDown.FOV.BaseFOV)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "camera.yaml"))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, s.LogLevel())
	assert.Equal(t, float64(120), s.Engine.TickRate)
	assert.Equal(t, 2, s.Engine.Workers)

	td := s.Modes.TopDown.Position
	assert.Equal(t, float32(2000), td.CameraHeight)
	assert.Equal(t, float32(60), td.ViewAngle)
	assert.Equal(t, float32(45), td.ViewDirectionYaw, "unset keys keep their defaults")

	orbit := s.Modes.DualFocusOrbit
	assert.Equal(t, float32(0.8), orbit.Blend.BlendTime)
	assert.Equal(t, blend.CurveEaseOut, orbit.Blend.Curve)
	assert.Equal(t, float32(50), orbit.FOV.MinFOV)
	assert.Equal(t, float32(80), orbit.FOV.BaseFOV)

	dyn := s.Modes.ThirdPerson.DynamicFOV
	require.NotNil(t, dyn)
	assert.Equal(t, float32(110), dyn.MaxFOV)
	assert.Equal(t, calculator.DefaultDynamicFOVConfig().SpeedFOVFactor, dyn.SpeedFOVFactor, "a partial dynamic_fov keeps its defaults")
	assert.Nil(t, Default().Modes.ThirdPerson.DynamicFOV)

	assert.Equal(t, float32(1200), s.Features.KeyboardPan.PanSpeed)
	assert.True(t, s.Features.KeyboardPan.RelativeToCamera)

	vp := s.Features.VelocityPrediction
	assert.Equal(t, float32(0.5), vp.PredictionTime)
	assert.Equal(t, blend.CurveEaseIn, vp.Curve)
	assert.Equal(t, float32(600), vp.MaxSpeed)

	assert.Equal(t, []string{"i", "up"}, s.Input.PanForward)
	assert.Equal(t, []string{"s", "down"}, s.Input.PanBack)
	assert.Equal(t, "right", s.Input.DragButton)
}

func TestLoadEffectPresets(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "camera.yaml"))
	require.NoError(t, err)
	require.Len(t, s.Effects, 2)

	hit := s.Effects["hit_zoom"]
	assert.Equal(t, "hit_zoom", hit.Name)
	assert.Equal(t, float32(0.4), hit.Timing.Duration)
	assert.Equal(t, float32(0.05), hit.Timing.BlendIn)
	assert.Equal(t, effect.DefaultTiming().BlendOut, hit.Timing.BlendOut)
	require.NotNil(t, hit.FOV)
	assert.Equal(t, effect.FOVOffset, hit.FOV.Mode)
	assert.Equal(t, float32(-10), hit.FOV.Value)
	require.NotNil(t, hit.Shake)
	assert.Equal(t, float32(20), hit.Shake.Frequency)

	focus := s.Effects["boss_focus"]
	assert.Equal(t, effect.EndStay, focus.Timing.EndBehavior)
	assert.Equal(t, blend.CurveCustom, focus.Curve)
	require.NotNil(t, focus.LookAt)
	assert.Equal(t, mgl32.Vec3{1000, 0, 200}, focus.LookAt.Location)
	assert.Equal(t, float32(1), focus.LookAt.Weight)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"log level", func(s *Settings) { s.Log.Level = "loud" }},
		{"tick rate", func(s *Settings) { s.Engine.TickRate = -1 }},
		{"pitch range", func(s *Settings) { s.Modes.ThirdPerson.Rotation.MinPitch = 95 }},
		{"camera distance", func(s *Settings) { s.Modes.DualFocusOrbit.Position.MinCameraDistance = 5000 }},
		{"ellipse scale", func(s *Settings) { s.Modes.DualFocusOrbit.Position.MinEllipseScale = 3 }},
		{"framing fov", func(s *Settings) { s.Modes.DualFocusOrbit.FOV.MaxFOV = 10 }},
		{"blend time", func(s *Settings) { s.Modes.TopDown.Blend.BlendTime = -0.5 }},
		{"dynamic fov", func(s *Settings) {
			dyn := calculator.DefaultDynamicFOVConfig()
			dyn.MinFOV = 120
			s.Modes.ThirdPerson.DynamicFOV = &dyn
		}},
		{"prediction time", func(s *Settings) { s.Features.VelocityPrediction.PredictionTime = -1 }},
		{"binding", func(s *Settings) { s.Input.PanLeft = []string{"not-a-key"} }},
		{"effect", func(s *Settings) {
			s.Effects["bad"] = effect.Config{Name: "bad", FOV: &effect.FOVConfig{Mode: effect.FOVOverride, Value: 500}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join("testdata", "invalid.yaml"))
	assert.ErrorIs(t, err, ErrInvalidSettings)

	_, err = Parse([]byte("modes: [1, 2"))
	assert.Error(t, err)
}

func TestLogLevelFallsBackToInfo(t *testing.T) {
	s := Default()
	s.Log.Level = "WARN"
	assert.Equal(t, slog.LevelWarn, s.LogLevel())
	s.Log.Level = ""
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  tick_rate: 30\n"), 0o644))

	changes := make(chan Settings, 4)
	w, err := NewWatcher(path, func(s Settings) { changes <- s })
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, float64(30), w.Current().Engine.TickRate)

	require.NoError(t, os.WriteFile(path, []byte("engine:\n  tick_rate: 90\n"), 0o644))
	select {
	case s := <-changes:
		assert.Equal(t, float64(90), s.Engine.TickRate)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.Equal(t, float64(90), w.Current().Engine.TickRate)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))
	time.Sleep(3 * ReloadDebounce)
	assert.Equal(t, float64(90), w.Current().Engine.TickRate, "invalid files keep the previous settings")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherRequiresLoadableFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
