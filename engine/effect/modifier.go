package effect

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
)

// Modifier is a temporary camera-altering effect with its own blend lifecycle:
// inactive, entering, active, exiting and back to inactive (or entering again when re-triggered).
type Modifier interface {
	// Name returns the effect name used for lookups.
	//
	// Returns:
	//   - string: the effect name
	Name() string

	// ModifyCamera advances the effect by deltaTime and applies it to v at its current weight.
	//
	// Parameters:
	//   - v: the view being composited, altered in place
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - bool: true if the effect contributed this frame (or is being kept alive at zero weight)
	ModifyCamera(v *view.CameraView, deltaTime float32) bool

	// Activate starts or re-triggers the effect. The exit state and pause are cleared.
	//
	// Parameters:
	//   - resetTimer: restart the active time even if already active
	Activate(resetTimer bool)

	// Deactivate stops the effect. A non-immediate stop blends out from the current weight.
	// Calling it on an inactive effect does nothing.
	//
	// Parameters:
	//   - immediate: retire now with zero weight instead of blending out
	Deactivate(immediate bool)

	// Interrupt blends the effect out over InterruptBlendTime instead of BlendOut.
	// The configured BlendOut is left unchanged for later exits.
	Interrupt()

	// Pause freezes active time; the weight holds its last value.
	Pause()

	// Resume continues a paused effect.
	Resume()

	// IsActive reports whether the effect has not yet retired.
	IsActive() bool

	// IsExiting reports whether the effect is blending out.
	IsExiting() bool

	// IsPaused reports whether the effect is paused.
	IsPaused() bool

	// Weight returns the weight computed by the last ModifyCamera.
	Weight() float32

	// ShouldKeepActive reports whether the effect must stay alive even at zero weight.
	//
	// Parameters:
	//   - weight: the weight computed this frame
	//
	// Returns:
	//   - bool: true to keep the effect alive
	ShouldKeepActive(weight float32) bool
}

// Hooks supplies the kind-specific behavior of a modifier built on Base.
type Hooks interface {
	// ApplyEffect alters v at the given weight.
	//
	// Parameters:
	//   - v: the view being composited
	//   - weight: the effect weight in (0, 1]
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - bool: true if anything was applied
	ApplyEffect(v *view.CameraView, weight, deltaTime float32) bool

	// KeepAlive reports whether the effect must stay alive at zero weight.
	KeepAlive(weight float32) bool
}

// ActivateHook is an optional Hooks extension called after the base state is activated.
type ActivateHook interface {
	OnActivate(resetTimer bool)
}

// DeactivateHook is an optional Hooks extension called before the base state is deactivated.
type DeactivateHook interface {
	OnDeactivate(immediate bool)
}

// Base is the shared modifier state machine. Hooks are invoked with the modifier lock held
// and must not call back into the Base.
type Base struct {
	mu *sync.Mutex

	name   string
	timing Timing
	curve  blend.Curve
	hooks  Hooks

	active      bool
	exiting     bool
	paused      bool
	activeTime  float32
	weight      float32
	startWeight float32
	exitTime    float32
}

var _ Modifier = &Base{}

// NewBase creates an inactive modifier.
//
// Parameters:
//   - name: the effect name
//   - timing: the effect timing; negative blend times are clamped to zero
//   - curve: the blend curve, or nil for EaseInOut
//   - hooks: the kind-specific behavior, or nil for a modifier that applies nothing
//
// Returns:
//   - *Base: the modifier
func NewBase(name string, timing Timing, curve blend.Curve, hooks Hooks) *Base {
	if curve == nil {
		curve = blend.Builtin(blend.CurveEaseInOut)
	}
	if hooks == nil {
		hooks = noHooks{}
	}
	return &Base{
		mu:          &sync.Mutex{},
		name:        name,
		timing:      timing.clamped(),
		curve:       curve,
		hooks:       hooks,
		startWeight: 1,
	}
}

func (b *Base) Name() string {
	return b.name
}

// Hooks returns the kind-specific behavior, letting callers reach the concrete effect.
func (b *Base) Hooks() Hooks {
	return b.hooks
}

func (b *Base) ModifyCamera(v *view.CameraView, deltaTime float32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active || b.paused {
		return false
	}

	b.activeTime += max(deltaTime, 0)
	if b.timing.Duration > 0 && b.activeTime >= b.timing.Duration && !b.exiting {
		switch b.timing.EndBehavior {
		case EndBlendBack:
			b.deactivate(false)
		case EndForceEnd:
			b.deactivate(true)
			return false
		}
	}

	w := b.calculateWeight()
	b.weight = w

	keep := b.hooks.KeepAlive(w)
	// the exit ramp ends on time, even for curves that never reach 1
	if b.exiting && !keep && b.activeTime >= b.exitTime {
		b.retire()
		b.weight = 0
		return false
	}
	if keep && w <= 0 {
		return true
	}
	if w <= common.KindaSmallNumber && !keep {
		return false
	}
	return b.hooks.ApplyEffect(v, w, deltaTime)
}

func (b *Base) Activate(resetTimer bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if resetTimer || !b.active {
		b.activeTime = 0
	}
	b.active = true
	b.exiting = false
	b.paused = false
	b.startWeight = 1
	b.weight = b.calculateWeight()

	if h, ok := b.hooks.(ActivateHook); ok {
		h.OnActivate(resetTimer)
	}
	slog.Debug("effect activated", "effect", b.name, "duration", b.timing.Duration, "reset", resetTimer)
}

func (b *Base) Deactivate(immediate bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deactivate(immediate)
}

func (b *Base) Interrupt() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active {
		return
	}
	blendOut := b.timing.BlendOut
	b.timing.BlendOut = b.timing.InterruptBlendTime
	b.deactivate(false)
	b.timing.BlendOut = blendOut
	slog.Debug("effect interrupted", "effect", b.name, "blend_time", b.timing.InterruptBlendTime)
}

func (b *Base) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = true
}

func (b *Base) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = false
}

func (b *Base) IsActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Base) IsExiting() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exiting
}

func (b *Base) IsPaused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}

func (b *Base) Weight() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.weight
}

func (b *Base) ShouldKeepActive(weight float32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hooks.KeepAlive(weight)
}

// ActiveTime returns the seconds accumulated in the current phase.
// It restarts from zero when the effect begins exiting.
func (b *Base) ActiveTime() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeTime
}

// Timing returns the effect timing.
func (b *Base) Timing() Timing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timing
}

// SetDuration changes the effect duration. Zero or less is unbounded.
func (b *Base) SetDuration(seconds float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timing.Duration = seconds
}

// SetBlendTimes changes the entry and exit ramps. Negative values are clamped to zero.
func (b *Base) SetBlendTimes(blendIn, blendOut float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timing.BlendIn = max(blendIn, 0)
	b.timing.BlendOut = max(blendOut, 0)
}

// SetCurve replaces the blend curve. A nil curve restores EaseInOut.
func (b *Base) SetCurve(curve blend.Curve) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if curve == nil {
		curve = blend.Builtin(blend.CurveEaseInOut)
	}
	b.curve = curve
}

// --- internal helpers ---

// deactivate implements Deactivate. Caller must hold the mutex.
func (b *Base) deactivate(immediate bool) {
	if !b.active {
		return
	}
	if h, ok := b.hooks.(DeactivateHook); ok {
		h.OnDeactivate(immediate)
	}

	if immediate {
		b.retire()
		b.weight = 0
		slog.Debug("effect stopped", "effect", b.name, "immediate", true)
		return
	}

	// an effect that never became visible has nothing to blend out
	if b.weight <= common.KindaSmallNumber && !b.hooks.KeepAlive(b.weight) {
		b.retire()
		slog.Debug("effect stopped at zero weight", "effect", b.name)
		return
	}

	b.startWeight = b.weight
	b.exitTime = b.timing.BlendOut
	b.exiting = true
	b.activeTime = 0
	slog.Debug("effect blending out", "effect", b.name, "start_weight", b.startWeight)
}

// retire marks the modifier inactive. Caller must hold the mutex.
func (b *Base) retire() {
	b.active = false
	b.exiting = false
	b.startWeight = 1
}

// calculateWeight returns the instantaneous weight for the current phase. Caller must hold the mutex.
func (b *Base) calculateWeight() float32 {
	if b.exiting {
		if b.exitTime <= 0 {
			return 0
		}
		alpha := b.curve.Evaluate(common.Clamp01(b.activeTime / b.exitTime))
		return common.Lerp(b.startWeight, 0, alpha)
	}
	if b.timing.BlendIn > 0 && b.activeTime < b.timing.BlendIn {
		return b.curve.Evaluate(common.Clamp01(b.activeTime / b.timing.BlendIn))
	}
	return 1
}

type noHooks struct{}

func (noHooks) ApplyEffect(*view.CameraView, float32, float32) bool { return false }
func (noHooks) KeepAlive(float32) bool                              { return false }
