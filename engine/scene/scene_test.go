package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneWorld(t *testing.T) {
	player := game_object.NewGameObject(
		game_object.WithPosition(mgl32.Vec3{1, 2, 0}),
		game_object.WithEyeHeight(160),
	)
	enemy := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{500, 0, 0}))

	s := NewScene("arena", WithObjects(player, enemy), WithPrimarySubject(1))
	require.Equal(t, uint64(1), player.ID())
	require.Equal(t, uint64(2), enemy.ID())

	var w calculator.World = s
	assert.Equal(t, calculator.ActorID(1), w.PrimarySubject())
	pos, ok := w.ActorPosition(1)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, pos)
	h, ok := w.ActorEyeHeight(1)
	assert.True(t, ok)
	assert.Equal(t, float32(160), h)

	assert.False(t, w.HasLockedTarget())
	s.SetLockedTarget(enemy.ID())
	assert.True(t, w.HasLockedTarget())
	loc, ok := w.LockedFocusLocation()
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{500, 0, 0}, loc)

	enemy.SetEnabled(false)
	assert.False(t, w.HasLockedTarget(), "disabled actors are not live")
	_, ok = w.ActorPosition(2)
	assert.False(t, ok)

	s.Remove(enemy.ID())
	assert.Equal(t, uint64(0), s.LockedTarget())
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, []uint64{1}, s.IDs())
}

func TestControlRotationClamped(t *testing.T) {
	s := NewScene("test")
	s.SetControlRotation(common.Rotator{Pitch: 120, Yaw: 190, Roll: 5})
	r := s.ControlRotation()
	assert.Equal(t, float32(89), r.Pitch)
	assert.InDelta(t, -170, r.Yaw, 1e-4)
	assert.Equal(t, float32(0), r.Roll)

	s.AddControlInput(20, -200)
	r = s.ControlRotation()
	assert.InDelta(t, -150, r.Yaw, 1e-4)
	assert.Equal(t, float32(-89), r.Pitch)
}

func TestUpdateAdvancesObjects(t *testing.T) {
	mover := game_object.NewGameObject(game_object.WithVelocity(mgl32.Vec3{0, 100, 0}))
	shot := game_object.NewGameObject(game_object.WithEphemeral(true), game_object.WithVelocity(mgl32.Vec3{10, 0, 0}))
	s := NewScene("test", WithObjects(mover, shot))
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1, s.CountEphemeral())

	s.Update(0.5)
	assert.Equal(t, mgl32.Vec3{0, 50, 0}, mover.Position())
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, shot.Position())

	s.Clear()
	assert.Nil(t, s.Get(mover.ID()))
}

func TestSceneReportsVelocity(t *testing.T) {
	runner := game_object.NewGameObject(game_object.WithVelocity(mgl32.Vec3{300, 0, 0}))
	s := NewScene("track", WithObjects(runner), WithPrimarySubject(1))

	v, ok := calculator.SubjectVelocity(s, 0)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{300, 0, 0}, v)

	s.Remove(runner.ID())
	_, ok = calculator.SubjectVelocity(s, 0)
	assert.False(t, ok)
}
