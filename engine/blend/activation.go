package blend

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
)

// Phase is the coarse state of an ActivationBlend.
type Phase int

const (
	// PhaseIdle means the blend has not been advanced since creation or Reset.
	PhaseIdle Phase = iota
	// PhaseRamping means progress is moving toward 1.
	PhaseRamping
	// PhaseSettled means progress has reached 1.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRamping:
		return "ramping"
	case PhaseSettled:
		return "settled"
	}
	return "unknown"
}

const (
	// DefaultBlendTime is the default mode activation ramp in seconds.
	DefaultBlendTime float32 = 0.5
)

// ActivationBlend is a single ramped scalar that fades a newly activated mode in.
// The visible weight is always the curve applied to progress, re-anchored so that
// re-arming mid-ramp continues from the current weight instead of jumping.
type ActivationBlend interface {
	// Update advances progress by deltaTime / BlendTime. A non-positive blend time completes immediately.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	Update(deltaTime float32)

	// Weight returns clamp(lerp(begin, desired, curve(alpha)), 0, 1).
	//
	// Returns:
	//   - float32: the blend weight in [0, 1]
	Weight() float32

	// Alpha returns the raw ramp progress in [0, 1].
	//
	// Returns:
	//   - float32: the ramp progress
	Alpha() float32

	// SetWeight re-arms the ramp so it continues from w toward 1.
	// w is clamped to [0, 1]; progress resets to 0.
	//
	// Parameters:
	//   - w: the weight to continue from
	SetWeight(w float32)

	// Reset returns the blend to Idle with zero weight.
	Reset()

	// Phase returns the current phase.
	//
	// Returns:
	//   - Phase: idle, ramping or settled
	Phase() Phase

	// BlendTime returns the ramp duration in seconds.
	//
	// Returns:
	//   - float32: the ramp duration
	BlendTime() float32

	// SetBlendTime sets the ramp duration. Negative values are clamped to 0.
	//
	// Parameters:
	//   - seconds: the ramp duration
	SetBlendTime(seconds float32)

	// CurveKind returns the selected curve kind.
	//
	// Returns:
	//   - CurveKind: the curve kind
	CurveKind() CurveKind

	// SetCurveKind selects a built-in curve. CurveCustom keeps the current custom curve
	// if one is set, and otherwise falls back to EaseInOut.
	//
	// Parameters:
	//   - kind: the curve kind
	SetCurveKind(kind CurveKind)

	// SetCurve installs a custom curve and switches the kind to CurveCustom.
	// A nil curve restores EaseInOut.
	//
	// Parameters:
	//   - curve: the custom curve
	SetCurve(curve Curve)
}

type activationBlendImpl struct {
	mu *sync.Mutex

	alpha     float32
	blendTime float32
	kind      CurveKind
	curve     Curve
	custom    Curve
	begin     float32
	desired   float32
	started   bool
}

var _ ActivationBlend = &activationBlendImpl{}

// NewActivationBlend creates an idle activation blend with a 0.5 s EaseInOut ramp.
//
// Parameters:
//   - options: functional options to configure the blend
//
// Returns:
//   - ActivationBlend: the newly created blend
func NewActivationBlend(options ...ActivationBlendBuilderOption) ActivationBlend {
	b := &activationBlendImpl{
		mu:        &sync.Mutex{},
		blendTime: DefaultBlendTime,
		kind:      CurveEaseInOut,
		curve:     Builtin(CurveEaseInOut),
		desired:   1,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *activationBlendImpl) Update(deltaTime float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.started = true
	if b.blendTime <= 0 {
		b.alpha = 1
		return
	}
	if deltaTime <= 0 {
		return
	}
	b.alpha = common.Clamp01(b.alpha + deltaTime/b.blendTime)
}

func (b *activationBlendImpl) Weight() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.weight()
}

func (b *activationBlendImpl) Alpha() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alpha
}

func (b *activationBlendImpl) SetWeight(w float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.begin = common.Clamp01(w)
	b.desired = 1
	b.alpha = 0
	b.started = true
}

func (b *activationBlendImpl) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alpha = 0
	b.begin = 0
	b.desired = 1
	b.started = false
}

func (b *activationBlendImpl) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case !b.started:
		return PhaseIdle
	case b.alpha >= 1:
		return PhaseSettled
	default:
		return PhaseRamping
	}
}

func (b *activationBlendImpl) BlendTime() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blendTime
}

func (b *activationBlendImpl) SetBlendTime(seconds float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blendTime = max(seconds, 0)
}

func (b *activationBlendImpl) CurveKind() CurveKind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kind
}

func (b *activationBlendImpl) SetCurveKind(kind CurveKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCurveKind(kind)
}

func (b *activationBlendImpl) SetCurve(curve Curve) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCurve(curve)
}

// --- internal helpers ---

// weight evaluates the blended weight. Caller must hold the mutex.
func (b *activationBlendImpl) weight() float32 {
	eased := b.curve.Evaluate(b.alpha)
	return common.Clamp01(common.Lerp(b.begin, b.desired, eased))
}

// setCurveKind swaps the active curve. Caller must hold the mutex.
func (b *activationBlendImpl) setCurveKind(kind CurveKind) {
	if kind == CurveCustom {
		if b.custom == nil {
			b.kind = CurveEaseInOut
			b.curve = Builtin(CurveEaseInOut)
			return
		}
		b.kind = CurveCustom
		b.curve = b.custom
		return
	}
	b.kind = kind
	b.curve = Builtin(kind)
}

// setCurve installs a custom curve. Caller must hold the mutex.
func (b *activationBlendImpl) setCurve(curve Curve) {
	b.custom = curve
	if curve == nil {
		b.setCurveKind(CurveEaseInOut)
		return
	}
	b.kind = CurveCustom
	b.curve = curve
}
