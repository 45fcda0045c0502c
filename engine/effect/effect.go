package effect

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// ShakeHandle is an opaque running shake.
type ShakeHandle interface {
	// Valid reports whether the shake is still playing.
	Valid() bool

	// Stop ends the shake, blending out unless immediate.
	//
	// Parameters:
	//   - immediate: stop without blending out
	Stop(immediate bool)
}

// ShakePlayer starts shakes on behalf of an effect.
type ShakePlayer interface {
	// StartShake begins a shake.
	//
	// Parameters:
	//   - config: the shake parameters
	//
	// Returns:
	//   - ShakeHandle: the running shake, or nil if it could not start
	StartShake(config ShakeConfig) ShakeHandle
}

// LookAtTargeter is implemented by effects whose look-at target can be redirected at runtime.
type LookAtTargeter interface {
	// SetLookAtActor aims at an actor's location plus offset.
	SetLookAtActor(actor calculator.ActorID, offset mgl32.Vec3)

	// SetLookAtLocation aims at a fixed world location.
	SetLookAtLocation(location mgl32.Vec3)
}

// Effect is the configurable modifier combining location, rotation, FOV, look-at,
// post-process and shake contributions. Kinds are applied in that order.
type Effect struct {
	*Base

	config Config
	world  calculator.World
	shakes ShakePlayer

	shakeHandle  ShakeHandle
	pendingShake bool
}

var (
	_ Modifier       = &Effect{}
	_ Hooks          = &Effect{}
	_ ActivateHook   = &Effect{}
	_ DeactivateHook = &Effect{}
	_ LookAtTargeter = &Effect{}
)

// NewEffect creates an inactive effect from config.
//
// Parameters:
//   - config: the effect description
//   - options: functional options to configure the effect
//
// Returns:
//   - *Effect: the newly created effect
func NewEffect(config Config, options ...EffectBuilderOption) *Effect {
	e := &Effect{config: config}
	if e.config.LookAt != nil {
		lookAt := *e.config.LookAt
		e.config.LookAt = &lookAt
	}
	for _, option := range options {
		option(e)
	}
	e.Base = NewBase(config.Name, config.Timing, blend.ResolveCurve(config.Curve, config.CurveScript), e)
	return e
}

// Config returns the effect description.
func (e *Effect) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

func (e *Effect) ApplyEffect(v *view.CameraView, weight, deltaTime float32) bool {
	applied := false
	applied = e.applyLocation(v, weight) || applied
	applied = e.applyRotation(v, weight) || applied
	applied = e.applyFOV(v, weight) || applied
	applied = e.applyLookAt(v, weight) || applied
	applied = e.applyPostProcess(v, weight) || applied

	if e.config.Shake != nil {
		if e.pendingShake && e.shakes != nil {
			e.startShake()
		}
		applied = true
	}
	return applied
}

func (e *Effect) KeepAlive(weight float32) bool {
	return e.shakeHandle != nil && e.shakeHandle.Valid()
}

func (e *Effect) OnActivate(resetTimer bool) {
	if e.config.Shake == nil {
		return
	}
	if e.shakes == nil {
		e.pendingShake = true
		return
	}
	e.startShake()
}

func (e *Effect) OnDeactivate(immediate bool) {
	e.pendingShake = false
	if e.shakeHandle != nil {
		e.shakeHandle.Stop(immediate)
		e.shakeHandle = nil
	}
}

func (e *Effect) SetLookAtActor(actor calculator.ActorID, offset mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.LookAt = &LookAtConfig{Actor: actor, Offset: offset, Weight: e.lookAtWeight()}
}

func (e *Effect) SetLookAtLocation(location mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.LookAt = &LookAtConfig{Location: location, Weight: e.lookAtWeight()}
}

// SetWorld attaches the world used to resolve look-at actors.
func (e *Effect) SetWorld(world calculator.World) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.world = world
}

// SetShakePlayer attaches the player used to start shakes. A shake waiting for a player starts
// on the next applied frame.
func (e *Effect) SetShakePlayer(player ShakePlayer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shakes = player
}

// --- internal helpers ---

func (e *Effect) applyLocation(v *view.CameraView, weight float32) bool {
	loc := e.config.Location
	if loc == nil || common.VecNearlyZero(loc.Offset) {
		return false
	}
	offset := loc.Offset.Mul(weight)
	if loc.LocalSpace {
		offset = v.Rotation.RotateVector(offset)
	}
	v.Position = v.Position.Add(offset)
	return true
}

func (e *Effect) applyRotation(v *view.CameraView, weight float32) bool {
	rot := e.config.Rotation
	if rot == nil || rot.Offset.IsNearlyZero(common.KindaSmallNumber) {
		return false
	}
	v.Rotation = v.Rotation.Add(rot.Offset.Scale(weight)).Normalize()
	return true
}

func (e *Effect) applyFOV(v *view.CameraView, weight float32) bool {
	fov := e.config.FOV
	if fov == nil {
		return false
	}
	switch fov.Mode {
	case FOVOverride:
		v.FOV = common.Lerp(v.FOV, fov.Value, weight)
	default:
		v.FOV += fov.Value * weight
	}
	v.FOV = common.Clamp(v.FOV, MinFOV, MaxFOV)
	return true
}

func (e *Effect) applyLookAt(v *view.CameraView, weight float32) bool {
	la := e.config.LookAt
	if la == nil {
		return false
	}

	target := la.Location
	if la.Actor != 0 {
		if e.world == nil {
			return false
		}
		pos, ok := e.world.ActorPosition(la.Actor)
		if !ok {
			return false
		}
		target = pos.Add(la.Offset)
	}

	dir := target.Sub(v.Position)
	if common.VecNearlyZero(dir) {
		return false
	}
	v.Rotation = common.LerpRotator(v.Rotation, common.RotatorFromDirection(dir), common.Clamp01(la.Weight*weight))
	return true
}

func (e *Effect) applyPostProcess(v *view.CameraView, weight float32) bool {
	pp := e.config.PostProcess
	if pp == nil || pp.Weight <= 0 {
		return false
	}
	v.PostProcess = pp.Settings
	v.PostProcessWeight = pp.Weight * weight
	return true
}

// startShake starts the configured shake. Caller must hold the mutex.
func (e *Effect) startShake() {
	e.pendingShake = false
	e.shakeHandle = e.shakes.StartShake(*e.config.Shake)
	if e.shakeHandle == nil || !e.shakeHandle.Valid() {
		slog.Warn("camera shake failed to start", "effect", e.config.Name)
		e.shakeHandle = nil
		return
	}
	slog.Debug("camera shake started", "effect", e.config.Name, "scale", e.config.Shake.Scale)
}

// lookAtWeight keeps an existing look-at weight when retargeting. Caller must hold the mutex.
func (e *Effect) lookAtWeight() float32 {
	if e.config.LookAt != nil {
		return e.config.LookAt.Weight
	}
	return 1
}
