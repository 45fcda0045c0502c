package rig

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/feature"
	"github.com/Carmen-Shannon/oxy-camera/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-camera/engine/registry"
	"github.com/Carmen-Shannon/oxy-camera/engine/shake"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// ownerCount hands out owner IDs to rigs created without one.
var ownerCount atomic.Uint64

// Presenter receives the final view each frame. camera.Camera implements it.
type Presenter interface {
	Apply(v view.CameraView)
}

// Rig owns one camera: its active pipeline, the effects layered on top of it, its shakes,
// its input features and the presenter that receives the result. Update runs the whole frame;
// every other method is safe to call between frames from any goroutine.
type Rig interface {
	// Owner returns the ID this rig registers its effects under.
	Owner() registry.OwnerID

	// Update composes and presents one frame.
	// Order: features, pipeline, mode activation blend, view features, effects in activation order,
	// shakes, presenter.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - view.CameraView: the presented view
	Update(deltaTime float32) view.CameraView

	// View returns the view presented by the last Update.
	View() view.CameraView

	// Mode returns the active pipeline, or nil.
	Mode() pipeline.Pipeline

	// SetMode switches to p. The previous view is frozen and p fades in over its activation
	// blend. Setting the current mode again re-arms the blend from its current weight.
	//
	// Parameters:
	//   - p: the pipeline to activate
	SetMode(p pipeline.Pipeline)

	// World returns the world the rig's pipeline and effects read from.
	World() calculator.World

	// SetWorld rebinds the pipeline and every effect created afterwards to world.
	SetWorld(world calculator.World)

	// Presenter returns the presentation target, or nil.
	Presenter() Presenter

	// SetPresenter sets the presentation target.
	SetPresenter(p Presenter)

	// SetInput sets the input source features read from.
	SetInput(input feature.InputSource)

	// AddFeature adds a feature and activates it. Features update in ascending priority.
	AddFeature(f feature.Feature)

	// RemoveFeature deactivates and removes the feature with the given name.
	//
	// Returns:
	//   - bool: false if no feature had that name
	RemoveFeature(name string) bool

	// Features returns the features in update order.
	Features() []feature.Feature

	// Shakes returns the rig's shake player.
	Shakes() shake.Player

	// ActivateEffect creates and activates an effect from config.
	//
	// Parameters:
	//   - config: the effect description
	//
	// Returns:
	//   - *effect.Effect: the running effect
	//   - error: error if config is invalid
	ActivateEffect(config effect.Config) (*effect.Effect, error)

	// ActivatePreset activates the named effect preset.
	//
	// Parameters:
	//   - name: the preset name
	//
	// Returns:
	//   - *effect.Effect: the running effect
	//   - error: error if the preset is unknown or invalid
	ActivatePreset(name string) (*effect.Effect, error)

	// SetEffectPresets replaces the named effects available to ActivatePreset. Running effects are unaffected.
	//
	// Parameters:
	//   - presets: effect configs keyed by preset name
	SetEffectPresets(presets map[string]effect.Config)

	// ActivateModifier activates a custom modifier built with effect.NewBase.
	//
	// Parameters:
	//   - m: the modifier
	//   - resetTimer: restart the modifier's timer even if it is already active
	ActivateModifier(m *effect.Base, resetTimer bool)

	// DeactivateEffect deactivates every effect with the given name.
	//
	// Returns:
	//   - bool: true if any effect matched
	DeactivateEffect(name string, immediate bool) bool

	// InterruptEffect blends out every effect with the given name over its interrupt blend time.
	//
	// Returns:
	//   - bool: true if any effect matched
	InterruptEffect(name string) bool

	// RemoveAllEffects deactivates every effect and stops every shake.
	//
	// Returns:
	//   - int: the number of effects deactivated
	RemoveAllEffects(immediate bool) int

	// HasActiveEffects reports whether any effect is active.
	HasActiveEffects() bool

	// ActiveEffects returns the names of the active effects in activation order.
	ActiveEffects() []string

	// FindEffect returns the most recently activated live effect with the given name.
	FindEffect(name string) (*effect.Base, bool)

	// SetEffectLookAtActor retargets the named look-at effects to an actor.
	SetEffectLookAtActor(name string, actor calculator.ActorID, offset mgl32.Vec3) bool

	// SetEffectLookAtLocation retargets the named look-at effects to a location.
	SetEffectLookAtLocation(name string, location mgl32.Vec3) bool

	// Close retires every effect, stops every shake and deactivates the mode.
	Close()
}

type rigImpl struct {
	mu *sync.Mutex

	owner    registry.OwnerID
	registry registry.Registry
	world    calculator.World

	mode        pipeline.Pipeline
	previous    view.CameraView
	hasPrevious bool
	composed    view.CameraView
	current     view.CameraView
	presented   bool

	modifiers []*effect.Base
	shakes    shake.Player
	presets   map[string]effect.Config

	features []feature.Feature
	input    feature.InputSource
	out      Presenter
}

var _ Rig = &rigImpl{}

// NewRig creates a rig. Without options it owns a private registry, a fresh shake player
// and no mode; Update then presents the default view.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:       &sync.Mutex{},
		composed: view.NewCameraView(),
		current:  view.NewCameraView(),
		presets:  map[string]effect.Config{},
	}
	for _, option := range options {
		option(r)
	}
	if r.owner == 0 {
		r.owner = registry.OwnerID(ownerCount.Add(1))
	}
	if r.registry == nil {
		r.registry = registry.NewRegistry()
	}
	if r.shakes == nil {
		r.shakes = shake.NewPlayer()
	}
	if r.mode != nil {
		m := r.mode
		r.mode = nil
		r.setMode(m)
	}
	return r
}

func (r *rigImpl) Owner() registry.OwnerID {
	return r.owner
}

func (r *rigImpl) Update(deltaTime float32) view.CameraView {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != nil {
		for _, f := range r.features {
			f.Update(r.input, r.mode, r.current, deltaTime)
		}
	}

	v := r.composed
	if r.mode != nil {
		v = r.mode.ComputeView(deltaTime)
		v = r.blendMode(v, deltaTime)
		for _, f := range r.features {
			if vf, ok := f.(feature.ViewFeature); ok && f.Enabled() {
				vf.ApplyToView(r.mode.World(), &v, deltaTime)
			}
		}
	}
	// effects and shakes layer over the composed view and never feed back into it
	r.composed = v

	for _, m := range r.registry.GetAll(r.owner) {
		m.ModifyCamera(&v, deltaTime)
	}
	r.pruneModifiers()

	r.shakes.Apply(&v, deltaTime)

	if r.out != nil {
		r.out.Apply(v)
	}
	r.current = v
	r.presented = true
	return v
}

func (r *rigImpl) View() view.CameraView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *rigImpl) Mode() pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *rigImpl) SetMode(p pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setMode(p)
}

func (r *rigImpl) World() calculator.World {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world
}

func (r *rigImpl) SetWorld(world calculator.World) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.world = world
	if r.mode != nil {
		r.mode.SetWorld(world)
	}
}

func (r *rigImpl) Presenter() Presenter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

func (r *rigImpl) SetPresenter(p Presenter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = p
}

func (r *rigImpl) SetInput(input feature.InputSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = input
}

func (r *rigImpl) AddFeature(f feature.Feature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addFeature(f)
}

func (r *rigImpl) RemoveFeature(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.features, func(f feature.Feature) bool { return f.Name() == name })
	if i < 0 {
		return false
	}
	r.features[i].Deactivate()
	r.features = slices.Delete(r.features, i, i+1)
	return true
}

func (r *rigImpl) Features() []feature.Feature {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.features)
}

func (r *rigImpl) Shakes() shake.Player {
	return r.shakes
}

func (r *rigImpl) ActivateEffect(config effect.Config) (*effect.Effect, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("rig: activate effect: %w", err)
	}
	r.mu.Lock()
	world := r.world
	r.mu.Unlock()

	e := effect.NewEffect(config, effect.WithWorld(world), effect.WithShakePlayer(r.shakes))
	r.ActivateModifier(e.Base, true)
	return e, nil
}

func (r *rigImpl) ActivatePreset(name string) (*effect.Effect, error) {
	r.mu.Lock()
	config, ok := r.presets[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("rig: unknown effect preset %q", name)
	}
	return r.ActivateEffect(config)
}

func (r *rigImpl) SetEffectPresets(presets map[string]effect.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets = make(map[string]effect.Config, len(presets))
	r.setPresets(presets)
}

func (r *rigImpl) ActivateModifier(m *effect.Base, resetTimer bool) {
	if m == nil {
		return
	}
	m.Activate(resetTimer)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.modifiers, m) {
		r.modifiers = append(r.modifiers, m)
	}
	r.registry.Add(r.owner, m)
}

func (r *rigImpl) DeactivateEffect(name string, immediate bool) bool {
	return r.registry.DeactivateByName(r.owner, name, immediate)
}

func (r *rigImpl) InterruptEffect(name string) bool {
	return r.registry.InterruptByName(r.owner, name)
}

func (r *rigImpl) RemoveAllEffects(immediate bool) int {
	n := r.registry.RemoveAll(r.owner, immediate)
	r.shakes.StopAll(immediate)
	if immediate {
		r.mu.Lock()
		r.pruneModifiers()
		r.mu.Unlock()
	}
	return n
}

func (r *rigImpl) HasActiveEffects() bool {
	return r.registry.HasActive(r.owner)
}

func (r *rigImpl) ActiveEffects() []string {
	return r.registry.ActiveNames(r.owner)
}

func (r *rigImpl) FindEffect(name string) (*effect.Base, bool) {
	return r.registry.FindByName(r.owner, name)
}

func (r *rigImpl) SetEffectLookAtActor(name string, actor calculator.ActorID, offset mgl32.Vec3) bool {
	return r.registry.SetLookAtActor(r.owner, name, actor, offset)
}

func (r *rigImpl) SetEffectLookAtLocation(name string, location mgl32.Vec3) bool {
	return r.registry.SetLookAtLocation(r.owner, name, location)
}

func (r *rigImpl) Close() {
	r.RemoveAllEffects(true)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode != nil {
		r.mode.Deactivate()
	}
	for _, f := range r.features {
		f.Deactivate()
	}
	slog.Debug("rig closed", "owner", r.owner)
}

// --- internal helpers ---

// setMode activates p, freezing the last composed view (before effects) as the blend source.
// Caller must hold the mutex.
func (r *rigImpl) setMode(p pipeline.Pipeline) {
	if p == nil {
		return
	}
	if p == r.mode {
		act := p.ActivationBlend()
		act.SetWeight(act.Weight())
		slog.Debug("mode re-armed", "owner", r.owner, "mode", p.Name(), "weight", act.Weight())
		return
	}

	if r.mode != nil {
		r.mode.Deactivate()
	}
	if r.world != nil && p.World() == nil {
		p.SetWorld(r.world)
	}
	p.Activate()

	r.hasPrevious = r.presented
	r.previous = r.composed
	if !r.hasPrevious {
		p.ActivationBlend().SetWeight(1)
	}
	r.mode = p
	slog.Debug("mode activated", "owner", r.owner, "mode", p.Name(), "blend", p.ActivationBlend().BlendTime())
}

// blendMode fades v in from the frozen previous view. Caller must hold the mutex.
func (r *rigImpl) blendMode(v view.CameraView, deltaTime float32) view.CameraView {
	act := r.mode.ActivationBlend()
	act.Update(deltaTime)
	if !r.hasPrevious {
		return v
	}
	w := act.Weight()
	if act.Phase() == blend.PhaseSettled && w >= 1 {
		r.hasPrevious = false
		slog.Debug("mode blend settled", "owner", r.owner, "mode", r.mode.Name())
		return v
	}
	return r.previous.Blend(v, w)
}

// pruneModifiers drops retired modifiers so the registry can release them. Caller must hold the mutex.
func (r *rigImpl) pruneModifiers() {
	r.modifiers = slices.DeleteFunc(r.modifiers, func(m *effect.Base) bool {
		return !m.IsActive()
	})
}

// setPresets adds presets, naming unnamed configs after their key. Caller must hold the mutex.
func (r *rigImpl) setPresets(presets map[string]effect.Config) {
	for name, config := range presets {
		if config.Name == "" {
			config.Name = name
		}
		r.presets[name] = config
	}
}

// addFeature inserts f keeping features ordered by priority. Caller must hold the mutex.
func (r *rigImpl) addFeature(f feature.Feature) {
	if f == nil {
		return
	}
	i, _ := slices.BinarySearchFunc(r.features, f.Priority(), func(e feature.Feature, p int) int {
		if e.Priority() <= p {
			return -1
		}
		return 1
	})
	r.features = slices.Insert(r.features, i, f)
	f.Activate()
}
