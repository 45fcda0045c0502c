package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EllipseOrbit orbits the camera around the pivot on an ellipse whose major axis lies
// along the player-to-locked-target line. The orbit angle is player-driven and smoothed
// independently of the position.
type EllipseOrbit struct {
	lifecycle
	config EllipseOrbitConfig
	player ActorID

	currentPosition  mgl32.Vec3
	currentAngle     float32
	targetAngle      float32
	lastCameraRadius float32
}

var (
	_ PositionCalculator = &EllipseOrbit{}
	_ Orbitable          = &EllipseOrbit{}
)

// NewEllipseOrbit creates an elliptical orbit position calculator.
//
// Parameters:
//   - config: the orbit tuning
//   - player: the player actor, or zero for the world's primary subject
//
// Returns:
//   - *EllipseOrbit: the calculator
func NewEllipseOrbit(config EllipseOrbitConfig, player ActorID) *EllipseOrbit {
	return &EllipseOrbit{
		config:       config,
		player:       player,
		currentAngle: config.DefaultOrbitAngle,
		targetAngle:  config.DefaultOrbitAngle,
	}
}

func (e *EllipseOrbit) Activate() {
	e.lifecycle.Activate()
	e.currentAngle = e.config.DefaultOrbitAngle
	e.targetAngle = e.config.DefaultOrbitAngle
}

func (e *EllipseOrbit) Compute(pivot mgl32.Vec3, control common.Rotator, deltaTime float32) mgl32.Vec3 {
	e.currentAngle = common.InterpTo(e.currentAngle, e.targetAngle, deltaTime, e.config.OrbitAngleSmoothSpeed)

	player, ok := subjectPosition(e.world, e.player)
	if !ok {
		player = pivot
	}
	target, ok := lockedLocation(e.world)
	if !ok {
		target = player
	}

	toTarget := common.Flatten(target.Sub(player))
	subjectDistance := toTarget.Len()
	forward := common.SafeNormal(toTarget)
	if forward == common.VecZero {
		forward = common.SafeNormal(common.Flatten(control.YawOnly().Vector()))
		if forward == common.VecZero {
			forward = common.VecForward
		}
	}
	side := common.SafeNormal(common.VecUp.Cross(forward))

	sinT, cosT := math32.Sincos(mgl32.DegToRad(e.currentAngle))
	dir := forward.Mul(cosT).Add(side.Mul(sinT))

	a, b := e.config.EllipseMajorRadius, e.config.EllipseMinorRadius
	if e.config.EnableAdaptiveDistance && subjectDistance > common.KindaSmallNumber && e.config.AdaptiveDistanceBase > 0 {
		scale := common.Clamp(subjectDistance/e.config.AdaptiveDistanceBase*e.config.EllipseScaleFactor,
			e.config.MinEllipseScale, e.config.MaxEllipseScale)
		a *= scale
		b *= scale
	}

	r := common.Clamp(EllipseRadius(e.currentAngle, a, b), e.config.MinCameraDistance, e.config.MaxCameraDistance)
	e.lastCameraRadius = r

	pos := pivot.Sub(dir.Mul(r))
	pos[2] = pivot[2] + e.config.HeightOffset
	return e.smoothVec(&e.currentPosition, pos, deltaTime, e.config.PositionSmoothSpeed)
}

func (e *EllipseOrbit) AddOrbitInput(deltaAngle float32) {
	if !e.config.EnablePlayerInput {
		return
	}
	e.SetTargetOrbitAngle(e.targetAngle + deltaAngle*e.config.InputSensitivity)
}

// SetTargetOrbitAngle sets the orbit angle the calculator smooths toward, clamped when configured.
//
// Parameters:
//   - angle: the target angle in degrees
func (e *EllipseOrbit) SetTargetOrbitAngle(angle float32) {
	if e.config.ClampOrbitAngle {
		angle = common.Clamp(angle, -e.config.MaxOrbitAngle, e.config.MaxOrbitAngle)
	}
	e.targetAngle = angle
}

// OrbitAngle returns the smoothed orbit angle in degrees.
func (e *EllipseOrbit) OrbitAngle() float32 {
	return e.currentAngle
}

// TargetOrbitAngle returns the orbit angle being approached in degrees.
func (e *EllipseOrbit) TargetOrbitAngle() float32 {
	return e.targetAngle
}

// CameraRadius returns the clamped distance used by the last Compute.
func (e *EllipseOrbit) CameraRadius() float32 {
	return e.lastCameraRadius
}

// Config returns the calculator tuning.
func (e *EllipseOrbit) Config() EllipseOrbitConfig {
	return e.config
}

// EllipseRadius returns the polar radius of an ellipse centred on the origin with semi-axis a
// along θ=0 and b along θ=90: r(θ) = a·b / sqrt((b·sinθ)² + (a·cosθ)²).
// The result lies in [min(a,b), max(a,b)].
//
// Parameters:
//   - angle: θ in degrees
//   - a: semi-axis along θ=0
//   - b: semi-axis along θ=90
//
// Returns:
//   - float32: the radius at θ
func EllipseRadius(angle, a, b float32) float32 {
	sinT, cosT := math32.Sincos(mgl32.DegToRad(angle))
	bs := b * sinT
	ac := a * cosT
	denom := math32.Sqrt(bs*bs + ac*ac)
	return a * b / math32.Max(denom, common.KindaSmallNumber)
}
