package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DualFocus frames a point between the player and the locked target.
// The locked target is smoothed first, then the blended focus point is smoothed again,
// so the pivot never reacts directly to a noisy external target.
type DualFocus struct {
	lifecycle
	config DualFocusConfig
	player ActorID

	smoothedLocked mgl32.Vec3
	currentFocus   mgl32.Vec3
	lockedSeeded   bool
}

var _ TargetCalculator = &DualFocus{}

// NewDualFocus creates a dual-focus target calculator.
//
// Parameters:
//   - config: the focus tuning
//   - player: the player actor, or zero for the world's primary subject
//
// Returns:
//   - *DualFocus: the calculator
func NewDualFocus(config DualFocusConfig, player ActorID) *DualFocus {
	return &DualFocus{config: config, player: player}
}

func (d *DualFocus) Activate() {
	d.lifecycle.Activate()
	d.lockedSeeded = false
}

func (d *DualFocus) Compute(deltaTime float32) (mgl32.Vec3, bool) {
	playerPos, ok := subjectPosition(d.world, d.player)
	if !ok {
		return d.currentFocus, false
	}

	focus := playerPos
	if locked, ok := lockedLocation(d.world); ok {
		if !d.lockedSeeded {
			d.smoothedLocked = locked
			d.lockedSeeded = true
		} else {
			d.smoothedLocked = common.VInterpTo(d.smoothedLocked, locked, deltaTime, d.config.LockedTargetSmoothSpeed)
		}
		focus = FocusPoint(playerPos, d.smoothedLocked, d.config.PlayerFocusWeight, d.config.TargetFocusWeight)
	} else {
		d.lockedSeeded = false
	}

	return d.smoothVec(&d.currentFocus, focus, deltaTime, d.config.FocusPointSmoothSpeed), true
}

func (d *DualFocus) Subject() ActorID {
	return d.player
}

func (d *DualFocus) SetSubject(id ActorID) {
	d.player = id
}

// Config returns the calculator tuning.
func (d *DualFocus) Config() DualFocusConfig {
	return d.config
}

// FocusPoint blends the locked target toward the player by the player's share of the weights:
// lerp(locked, player, playerWeight/(playerWeight+targetWeight)). Both weights at zero yield the midpoint.
//
// Parameters:
//   - player: the player location
//   - locked: the (smoothed) locked target location
//   - playerWeight: the player's focus weight
//   - targetWeight: the locked target's focus weight
//
// Returns:
//   - mgl32.Vec3: the focus point
func FocusPoint(player, locked mgl32.Vec3, playerWeight, targetWeight float32) mgl32.Vec3 {
	total := playerWeight + targetWeight
	alpha := float32(0.5)
	if total > 0 {
		alpha = playerWeight / total
	}
	return locked.Add(player.Sub(locked).Mul(alpha))
}
