package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene holds the actors the cameras observe, together with the player's control rotation,
// the primary subject and the lock-on target. It is the world every calculator reads from.
// Scenes can be hot-swapped via the Active flag. Thread-safe for concurrent access.
type Scene interface {
	calculator.World

	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is ticked by the engine.
	Active() bool

	// SetActive sets whether this scene is ticked by the engine.
	SetActive(active bool)

	// Count returns the number of persisted GameObjects. Does not include ephemeral objects.
	//
	// Returns:
	//   - int: count of non-ephemeral GameObjects
	Count() int

	// CountEphemeral returns the number of ephemeral GameObjects.
	//
	// Returns:
	//   - int: count of ephemeral GameObjects
	CountEphemeral() int

	// Add adds a GameObject to the scene, assigning it an ID if it has none.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the GameObject with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes the GameObject with the given ID. Removing the primary subject or the
	// locked target clears that role.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// IDs returns the IDs of every persisted object in ascending order.
	//
	// Returns:
	//   - []uint64: the sorted IDs
	IDs() []uint64

	// Clear removes every object and clears the subject and target roles.
	Clear()

	// SetPrimarySubject makes the object with the given ID the followed subject.
	//
	// Parameters:
	//   - id: the object ID, or zero to clear
	SetPrimarySubject(id uint64)

	// SetLockedTarget locks onto the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID, or zero to release the lock
	SetLockedTarget(id uint64)

	// LockedTarget returns the ID of the locked object, or zero.
	LockedTarget() uint64

	// SetControlRotation sets the player control rotation. Pitch is clamped to [-89, 89].
	//
	// Parameters:
	//   - r: the control rotation
	SetControlRotation(r common.Rotator)

	// AddControlInput turns the control rotation by the given yaw and pitch deltas in degrees.
	//
	// Parameters:
	//   - yaw: yaw delta
	//   - pitch: pitch delta
	AddControlInput(yaw, pitch float32)

	// Update advances every enabled object by deltaTime.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	Update(deltaTime float32)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry  map[uint64]game_object.GameObject // non-ephemeral objects by ID
	ephemeral map[uint64]game_object.GameObject
	nextID    uint64

	primary uint64
	locked  uint64
	control common.Rotator
}

// Ensure scene implements Scene interface.
var (
	_ Scene                     = &scene{}
	_ calculator.VelocitySource = &scene{}
)

// NewScene creates a new, inactive Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:        &sync.RWMutex{},
		name:      name,
		registry:  make(map[uint64]game_object.GameObject),
		ephemeral: make(map[uint64]game_object.GameObject),
		nextID:    1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) CountEphemeral() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ephemeral)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if obj, ok := s.registry[id]; ok {
		return obj
	}
	return s.ephemeral[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
	delete(s.ephemeral, id)
	if s.primary == id {
		s.primary = 0
	}
	if s.locked == id {
		s.locked = 0
	}
}

func (s *scene) IDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.ephemeral = make(map[uint64]game_object.GameObject)
	s.primary = 0
	s.locked = 0
}

func (s *scene) SetPrimarySubject(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary = id
}

func (s *scene) SetLockedTarget(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = id
}

func (s *scene) LockedTarget() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

func (s *scene) SetControlRotation(r common.Rotator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control = clampControl(r)
}

func (s *scene) AddControlInput(yaw, pitch float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control = clampControl(s.control.Add(common.Rotator{Pitch: pitch, Yaw: yaw}))
}

func (s *scene) Update(deltaTime float32) {
	s.mu.RLock()
	objects := make([]game_object.GameObject, 0, len(s.registry)+len(s.ephemeral))
	for _, obj := range s.registry {
		objects = append(objects, obj)
	}
	for _, obj := range s.ephemeral {
		objects = append(objects, obj)
	}
	s.mu.RUnlock()

	for _, obj := range objects {
		obj.Advance(deltaTime)
	}
}

// --- calculator.World ---

func (s *scene) ActorPosition(id calculator.ActorID) (mgl32.Vec3, bool) {
	obj := s.live(uint64(id))
	if obj == nil {
		return common.VecZero, false
	}
	return obj.Position(), true
}

func (s *scene) ActorRotation(id calculator.ActorID) (common.Rotator, bool) {
	obj := s.live(uint64(id))
	if obj == nil {
		return common.Rotator{}, false
	}
	return obj.Rotation(), true
}

func (s *scene) ActorEyeHeight(id calculator.ActorID) (float32, bool) {
	obj := s.live(uint64(id))
	if obj == nil {
		return 0, false
	}
	return obj.EyeHeight(), true
}

func (s *scene) ActorVelocity(id calculator.ActorID) (mgl32.Vec3, bool) {
	obj := s.live(uint64(id))
	if obj == nil {
		return common.VecZero, false
	}
	return obj.Velocity(), true
}

func (s *scene) PrimarySubject() calculator.ActorID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ActorID(s.primary)
}

func (s *scene) ControlRotation() common.Rotator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.control
}

func (s *scene) HasLockedTarget() bool {
	s.mu.RLock()
	id := s.locked
	s.mu.RUnlock()
	return id != 0 && s.live(id) != nil
}

func (s *scene) LockedFocusLocation() (mgl32.Vec3, bool) {
	s.mu.RLock()
	id := s.locked
	s.mu.RUnlock()
	obj := s.live(id)
	if obj == nil {
		return common.VecZero, false
	}
	return obj.Position(), true
}

// --- internal helpers ---

// add stores obj and assigns an ID if needed. Caller must hold the write lock.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	if obj.Ephemeral() {
		s.ephemeral[obj.ID()] = obj
	} else {
		s.registry[obj.ID()] = obj
	}
	return obj.ID()
}

// live returns the enabled object with the given ID, or nil.
func (s *scene) live(id uint64) game_object.GameObject {
	if id == 0 {
		return nil
	}
	s.mu.RLock()
	obj, ok := s.registry[id]
	if !ok {
		obj = s.ephemeral[id]
	}
	s.mu.RUnlock()
	if obj == nil || !obj.Enabled() {
		return nil
	}
	return obj
}

// clampControl normalizes r, clamps its pitch short of the poles and drops roll.
func clampControl(r common.Rotator) common.Rotator {
	r = r.Normalize()
	r.Pitch = common.Clamp(r.Pitch, -89, 89)
	r.Roll = 0
	return r
}
