package registry

import (
	"log/slog"
	"slices"
	"sync"
	"weak"

	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/go-gl/mathgl/mgl32"
)

// OwnerID identifies the camera rig that owns a set of effects.
type OwnerID uint64

// sweepInterval is the number of GetAll calls between full sweeps.
const sweepInterval = 10

// Registry tracks, per owner, weak references to the effect modifiers that owner created.
// The registry never keeps a modifier alive: once its owner drops it, the entry is pruned.
// Iteration follows insertion order, which pruning preserves.
type Registry interface {
	// Add records a modifier under owner. Adding a modifier that is already tracked does nothing.
	//
	// Parameters:
	//   - owner: the owning rig
	//   - m: the modifier to track
	Add(owner OwnerID, m *effect.Base)

	// GetAll returns the owner's live, active modifiers in insertion order.
	// Dead references are dropped, and every tenth call sweeps all owners.
	//
	// Parameters:
	//   - owner: the owning rig
	//
	// Returns:
	//   - []*effect.Base: the live, active modifiers
	GetAll(owner OwnerID) []*effect.Base

	// FindByName returns the most recently added live modifier with the given name.
	//
	// Parameters:
	//   - owner: the owning rig
	//   - name: the effect name
	//
	// Returns:
	//   - *effect.Base: the modifier
	//   - bool: false if none was found
	FindByName(owner OwnerID, name string) (*effect.Base, bool)

	// DeactivateByName deactivates every live modifier with the given name.
	//
	// Parameters:
	//   - owner: the owning rig
	//   - name: the effect name
	//   - immediate: retire without blending out
	//
	// Returns:
	//   - bool: true if any modifier matched
	DeactivateByName(owner OwnerID, name string, immediate bool) bool

	// InterruptByName interrupts every live modifier with the given name.
	//
	// Parameters:
	//   - owner: the owning rig
	//   - name: the effect name
	//
	// Returns:
	//   - bool: true if any modifier matched
	InterruptByName(owner OwnerID, name string) bool

	// RemoveAll deactivates every modifier of owner and forgets the owner.
	//
	// Parameters:
	//   - owner: the owning rig
	//   - immediate: retire without blending out
	//
	// Returns:
	//   - int: the number of live modifiers deactivated
	RemoveAll(owner OwnerID, immediate bool) int

	// HasActive reports whether owner has any live, active modifier.
	HasActive(owner OwnerID) bool

	// ActiveNames returns the names of owner's live, active modifiers in insertion order.
	ActiveNames(owner OwnerID) []string

	// SetLookAtActor redirects the named effect's look-at to an actor.
	//
	// Returns:
	//   - bool: true if a modifier supporting look-at retargeting matched
	SetLookAtActor(owner OwnerID, name string, actor calculator.ActorID, offset mgl32.Vec3) bool

	// SetLookAtLocation redirects the named effect's look-at to a fixed location.
	//
	// Returns:
	//   - bool: true if a modifier supporting look-at retargeting matched
	SetLookAtLocation(owner OwnerID, name string, location mgl32.Vec3) bool

	// SetDuration changes the duration of the named effect.
	//
	// Returns:
	//   - bool: true if a modifier matched
	SetDuration(owner OwnerID, name string, seconds float32) bool

	// SetBlendTimes changes the entry and exit ramps of the named effect.
	//
	// Returns:
	//   - bool: true if a modifier matched
	SetBlendTimes(owner OwnerID, name string, blendIn, blendOut float32) bool

	// Sweep drops dead references for every owner and forgets owners left empty.
	//
	// Returns:
	//   - int: the number of references dropped
	Sweep() int

	// Owners returns the owners currently tracked.
	Owners() []OwnerID
}

type registryImpl struct {
	mu       *sync.Mutex
	entries  map[OwnerID][]weak.Pointer[effect.Base]
	getCalls int
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty registry.
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry() Registry {
	return &registryImpl{
		mu:      &sync.Mutex{},
		entries: make(map[OwnerID][]weak.Pointer[effect.Base]),
	}
}

func (r *registryImpl) Add(owner OwnerID, m *effect.Base) {
	if m == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	wp := weak.Make(m)
	if slices.Contains(r.entries[owner], wp) {
		return
	}
	r.entries[owner] = append(r.entries[owner], wp)
}

func (r *registryImpl) GetAll(owner OwnerID) []*effect.Base {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getCalls++
	if r.getCalls >= sweepInterval {
		r.getCalls = 0
		r.sweep()
	}

	live := r.prune(owner)
	out := make([]*effect.Base, 0, len(live))
	for _, m := range live {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}

func (r *registryImpl) FindByName(owner OwnerID, name string) (*effect.Base, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.prune(owner)
	for i := len(live) - 1; i >= 0; i-- {
		if live[i].Name() == name {
			return live[i], true
		}
	}
	return nil, false
}

func (r *registryImpl) DeactivateByName(owner OwnerID, name string, immediate bool) bool {
	found := r.eachNamed(owner, name, func(m *effect.Base) {
		m.Deactivate(immediate)
	})
	if !found {
		slog.Warn("effect not found", "owner", owner, "effect", name)
	}
	return found
}

func (r *registryImpl) InterruptByName(owner OwnerID, name string) bool {
	return r.eachNamed(owner, name, func(m *effect.Base) {
		m.Interrupt()
	})
}

func (r *registryImpl) RemoveAll(owner OwnerID, immediate bool) int {
	r.mu.Lock()
	live := r.prune(owner)
	delete(r.entries, owner)
	r.mu.Unlock()

	for _, m := range live {
		m.Deactivate(immediate)
	}
	slog.Debug("removed all effects", "owner", owner, "count", len(live), "immediate", immediate)
	return len(live)
}

func (r *registryImpl) HasActive(owner OwnerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.prune(owner) {
		if m.IsActive() {
			return true
		}
	}
	return false
}

func (r *registryImpl) ActiveNames(owner OwnerID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, m := range r.prune(owner) {
		if m.IsActive() {
			names = append(names, m.Name())
		}
	}
	return names
}

func (r *registryImpl) SetLookAtActor(owner OwnerID, name string, actor calculator.ActorID, offset mgl32.Vec3) bool {
	return r.eachTargeter(owner, name, func(t effect.LookAtTargeter) {
		t.SetLookAtActor(actor, offset)
	})
}

func (r *registryImpl) SetLookAtLocation(owner OwnerID, name string, location mgl32.Vec3) bool {
	return r.eachTargeter(owner, name, func(t effect.LookAtTargeter) {
		t.SetLookAtLocation(location)
	})
}

func (r *registryImpl) SetDuration(owner OwnerID, name string, seconds float32) bool {
	return r.eachNamed(owner, name, func(m *effect.Base) {
		m.SetDuration(seconds)
	})
}

func (r *registryImpl) SetBlendTimes(owner OwnerID, name string, blendIn, blendOut float32) bool {
	return r.eachNamed(owner, name, func(m *effect.Base) {
		m.SetBlendTimes(blendIn, blendOut)
	})
}

func (r *registryImpl) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweep()
}

func (r *registryImpl) Owners() []OwnerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := make([]OwnerID, 0, len(r.entries))
	for owner := range r.entries {
		owners = append(owners, owner)
	}
	slices.Sort(owners)
	return owners
}

// --- internal helpers ---

// prune drops dead references for owner, forgetting the owner when nothing is left,
// and returns the live modifiers in insertion order. Caller must hold the mutex.
func (r *registryImpl) prune(owner OwnerID) []*effect.Base {
	refs, ok := r.entries[owner]
	if !ok {
		return nil
	}
	live := make([]*effect.Base, 0, len(refs))
	kept := refs[:0]
	for _, wp := range refs {
		if m := wp.Value(); m != nil {
			live = append(live, m)
			kept = append(kept, wp)
		}
	}
	clear(refs[len(kept):])
	if len(kept) == 0 {
		delete(r.entries, owner)
		return nil
	}
	r.entries[owner] = kept
	return live
}

// sweep prunes every owner. Caller must hold the mutex.
func (r *registryImpl) sweep() int {
	dropped := 0
	for owner, refs := range r.entries {
		before := len(refs)
		dropped += before - len(r.prune(owner))
	}
	if dropped > 0 {
		slog.Debug("registry sweep", "dropped", dropped, "owners", len(r.entries))
	}
	return dropped
}

// eachNamed calls fn outside the lock for every live modifier named name.
func (r *registryImpl) eachNamed(owner OwnerID, name string, fn func(m *effect.Base)) bool {
	r.mu.Lock()
	var matched []*effect.Base
	for _, m := range r.prune(owner) {
		if m.Name() == name {
			matched = append(matched, m)
		}
	}
	r.mu.Unlock()

	for _, m := range matched {
		fn(m)
	}
	return len(matched) > 0
}

// eachTargeter calls fn for every live modifier named name whose effect supports look-at retargeting.
func (r *registryImpl) eachTargeter(owner OwnerID, name string, fn func(t effect.LookAtTargeter)) bool {
	found := false
	r.eachNamed(owner, name, func(m *effect.Base) {
		if t, ok := m.Hooks().(effect.LookAtTargeter); ok {
			fn(t)
			found = true
		}
	})
	return found
}
