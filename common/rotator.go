package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotator is an orientation expressed as pitch, yaw and roll in degrees.
// Yaw turns around +Z, pitch raises the forward vector toward +Z and roll spins
// around the forward axis.
type Rotator struct {
	Pitch float32 `yaml:"pitch"`
	Yaw   float32 `yaml:"yaw"`
	Roll  float32 `yaml:"roll"`
}

// NormalizeAxis wraps an angle in degrees into the range (-180, 180].
//
// Parameters:
//   - angle: angle in degrees
//
// Returns:
//   - float32: the wrapped angle
func NormalizeAxis(angle float32) float32 {
	angle = math32.Mod(angle, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}

// RotatorFromDirection returns the rotation whose forward vector points along dir.
// Roll is always zero. A zero direction yields the zero rotator.
//
// Parameters:
//   - dir: direction vector (need not be normalized)
//
// Returns:
//   - Rotator: yaw = atan2(y, x), pitch = atan2(z, |xy|)
func RotatorFromDirection(dir mgl32.Vec3) Rotator {
	return Rotator{
		Yaw:   mgl32.RadToDeg(math32.Atan2(dir[1], dir[0])),
		Pitch: mgl32.RadToDeg(math32.Atan2(dir[2], math32.Sqrt(dir[0]*dir[0]+dir[1]*dir[1]))),
	}
}

// LerpRotator interpolates between two rotations along the shortest path per axis.
//
// Parameters:
//   - a: rotation at alpha 0
//   - b: rotation at alpha 1
//   - alpha: interpolation factor
//
// Returns:
//   - Rotator: the normalized interpolated rotation
func LerpRotator(a, b Rotator, alpha float32) Rotator {
	return a.Add(b.Sub(a).Normalize().Scale(alpha)).Normalize()
}

// Normalize wraps every axis into (-180, 180].
func (r Rotator) Normalize() Rotator {
	return Rotator{
		Pitch: NormalizeAxis(r.Pitch),
		Yaw:   NormalizeAxis(r.Yaw),
		Roll:  NormalizeAxis(r.Roll),
	}
}

// Add returns the component-wise sum of two rotators.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

// Sub returns the component-wise difference r - o.
func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch - o.Pitch, Yaw: r.Yaw - o.Yaw, Roll: r.Roll - o.Roll}
}

// Scale multiplies every axis by s.
func (r Rotator) Scale(s float32) Rotator {
	return Rotator{Pitch: r.Pitch * s, Yaw: r.Yaw * s, Roll: r.Roll * s}
}

// YawOnly returns the rotator with pitch and roll cleared.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

// IsNearlyZero reports whether every axis is within tolerance of zero.
func (r Rotator) IsNearlyZero(tolerance float32) bool {
	return math32.Abs(r.Pitch) <= tolerance &&
		math32.Abs(r.Yaw) <= tolerance &&
		math32.Abs(r.Roll) <= tolerance
}

// Equals reports whether two rotators describe the same orientation within tolerance,
// comparing each axis after wrapping the difference.
func (r Rotator) Equals(o Rotator, tolerance float32) bool {
	return r.Sub(o).Normalize().IsNearlyZero(tolerance)
}

// Axes returns the rotated basis vectors.
//
// Returns:
//   - forward: the rotated +X axis
//   - right: the rotated +Y axis
//   - up: the rotated +Z axis
func (r Rotator) Axes() (forward, right, up mgl32.Vec3) {
	sp, cp := math32.Sincos(mgl32.DegToRad(r.Pitch))
	sy, cy := math32.Sincos(mgl32.DegToRad(r.Yaw))
	sr, cr := math32.Sincos(mgl32.DegToRad(r.Roll))

	forward = mgl32.Vec3{cp * cy, cp * sy, sp}
	right = mgl32.Vec3{sr*sp*cy - cr*sy, sr*sp*sy + cr*cy, -sr * cp}
	up = mgl32.Vec3{-(cr*sp*cy + sr*sy), cy*sr - cr*sp*sy, cr * cp}
	return
}

// Vector returns the unit forward direction of the rotation.
func (r Rotator) Vector() mgl32.Vec3 {
	forward, _, _ := r.Axes()
	return forward
}

// RotateVector transforms v from the rotation's local space into world space.
//
// Parameters:
//   - v: the local-space vector
//
// Returns:
//   - mgl32.Vec3: the world-space vector
func (r Rotator) RotateVector(v mgl32.Vec3) mgl32.Vec3 {
	forward, right, up := r.Axes()
	return forward.Mul(v[0]).Add(right.Mul(v[1])).Add(up.Mul(v[2]))
}
