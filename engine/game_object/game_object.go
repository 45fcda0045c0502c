package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id        uint64
	enabled   atomic.Bool
	ephemeral bool

	position      mgl32.Vec3
	rotation      common.Rotator
	eyeHeight     float32
	velocity      mgl32.Vec3
	rotationSpeed common.Rotator
}

// GameObject is an actor a camera can follow, frame or look at.
// Disabled objects are treated as gone by the world queries.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID, zero until the object is added to a scene
	ID() uint64

	// Enabled returns whether the object is live.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether the object is ephemeral.
	// Ephemeral objects are advanced by the scene but never become the primary subject
	// or the locked target.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Position returns the world-space location of the object's feet.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the object's facing.
	//
	// Returns:
	//   - common.Rotator: the rotation in degrees
	Rotation() common.Rotator

	// EyeHeight returns the height above Position a camera should aim at.
	//
	// Returns:
	//   - float32: eye height in world units
	EyeHeight() float32

	// Velocity returns the linear velocity applied by Advance.
	Velocity() mgl32.Vec3

	// RotationSpeed returns the angular velocity applied by Advance, in degrees per second.
	RotationSpeed() common.Rotator

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is live.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition moves the object.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// SetRotation turns the object. The rotation is normalized.
	//
	// Parameters:
	//   - r: the new rotation
	SetRotation(r common.Rotator)

	// SetEyeHeight changes the eye height.
	SetEyeHeight(h float32)

	// SetVelocity changes the linear velocity.
	SetVelocity(v mgl32.Vec3)

	// SetRotationSpeed changes the angular velocity.
	SetRotationSpeed(r common.Rotator)

	// Advance integrates velocity and rotation speed over deltaTime.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	Advance(deltaTime float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{mu: &sync.Mutex{}}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() common.Rotator {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) EyeHeight() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.eyeHeight
}

func (g *gameObject) Velocity() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.velocity
}

func (g *gameObject) RotationSpeed() common.Rotator {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) SetRotation(r common.Rotator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r.Normalize()
}

func (g *gameObject) SetEyeHeight(h float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.eyeHeight = h
}

func (g *gameObject) SetVelocity(v mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.velocity = v
}

func (g *gameObject) SetRotationSpeed(r common.Rotator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = r
}

func (g *gameObject) Advance(deltaTime float32) {
	if deltaTime <= 0 || !g.Enabled() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = g.position.Add(g.velocity.Mul(deltaTime))
	if !g.rotationSpeed.IsNearlyZero(0) {
		g.rotation = g.rotation.Add(g.rotationSpeed.Scale(deltaTime)).Normalize()
	}
}
