package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SmallNumber is the squared-distance tolerance below which interpolation snaps.
	SmallNumber float32 = 1e-8

	// KindaSmallNumber is the tolerance used for near-zero vectors, weights and angles.
	KindaSmallNumber float32 = 1e-4
)

// Vector constants for the Z-up, X-forward world convention.
var (
	VecZero    = mgl32.Vec3{0, 0, 0}
	VecForward = mgl32.Vec3{1, 0, 0}
	VecRight   = mgl32.Vec3{0, 1, 0}
	VecUp      = mgl32.Vec3{0, 0, 1}
)

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: value at alpha 0
//   - b: value at alpha 1
//   - alpha: interpolation factor (not clamped)
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, alpha float32) float32 {
	return a + (b-a)*alpha
}

// LerpVec linearly interpolates between two vectors component-wise.
func LerpVec(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// VecNearlyZero reports whether every component of v is within KindaSmallNumber of zero.
func VecNearlyZero(v mgl32.Vec3) bool {
	return math32.Abs(v[0]) <= KindaSmallNumber &&
		math32.Abs(v[1]) <= KindaSmallNumber &&
		math32.Abs(v[2]) <= KindaSmallNumber
}

// SafeNormal returns the unit vector of v, or the zero vector when v is too short to normalize.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the normalized vector or zero
func SafeNormal(v mgl32.Vec3) mgl32.Vec3 {
	sq := v.Dot(v)
	if sq < SmallNumber {
		return VecZero
	}
	return v.Mul(1 / math32.Sqrt(sq))
}

// Flatten returns v projected onto the horizontal plane (Z zeroed).
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], 0}
}

// --- interpolation ---

// InterpTo moves current toward target with an exponential approach:
// current + (target-current) * clamp(deltaTime*speed, 0, 1).
// A non-positive deltaTime or speed snaps to target instead of freezing.
//
// Parameters:
//   - current: the current value
//   - target: the value to approach
//   - deltaTime: frame time in seconds
//   - speed: approach rate (1/s)
//
// Returns:
//   - float32: the new value
func InterpTo(current, target, deltaTime, speed float32) float32 {
	if speed <= 0 || deltaTime <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < SmallNumber {
		return target
	}
	return current + dist*Clamp01(deltaTime*speed)
}

// VInterpTo is the vector form of InterpTo.
//
// Parameters:
//   - current: the current vector
//   - target: the vector to approach
//   - deltaTime: frame time in seconds
//   - speed: approach rate (1/s)
//
// Returns:
//   - mgl32.Vec3: the new vector
func VInterpTo(current, target mgl32.Vec3, deltaTime, speed float32) mgl32.Vec3 {
	if speed <= 0 || deltaTime <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.Dot(dist) < SmallNumber {
		return target
	}
	return current.Add(dist.Mul(Clamp01(deltaTime * speed)))
}

// RInterpTo is the rotator form of InterpTo. It always travels the shortest way
// around each axis and returns a normalized rotator.
//
// Parameters:
//   - current: the current rotation
//   - target: the rotation to approach
//   - deltaTime: frame time in seconds
//   - speed: approach rate (1/s)
//
// Returns:
//   - Rotator: the new rotation
func RInterpTo(current, target Rotator, deltaTime, speed float32) Rotator {
	if speed <= 0 || deltaTime <= 0 {
		return target.Normalize()
	}
	delta := target.Sub(current).Normalize()
	if delta.IsNearlyZero(KindaSmallNumber) {
		return target.Normalize()
	}
	return current.Add(delta.Scale(Clamp01(deltaTime * speed))).Normalize()
}
