package shake

import (
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Player runs procedural camera shakes: per-axis sinusoids with random phase,
// shaped by a blend-in, an optional duration and a blend-out envelope.
type Player interface {
	effect.ShakePlayer

	// Apply advances every running shake by deltaTime and adds their offsets to v.
	// Location offsets are applied in camera space.
	//
	// Parameters:
	//   - v: the view to shake
	//   - deltaTime: frame time in seconds
	Apply(v *view.CameraView, deltaTime float32)

	// ActiveCount returns the number of running shakes.
	//
	// Returns:
	//   - int: running shake count
	ActiveCount() int

	// StopAll stops every running shake.
	//
	// Parameters:
	//   - immediate: stop without blending out
	StopAll(immediate bool)
}

type playerImpl struct {
	mu        *sync.Mutex
	rng       *rand.Rand
	instances []*instance
}

var _ Player = &playerImpl{}

// NewPlayer creates a shake player with no running shakes.
//
// Parameters:
//   - options: functional options to configure the player
//
// Returns:
//   - Player: the newly created player
func NewPlayer(options ...PlayerBuilderOption) Player {
	p := &playerImpl{
		mu:  &sync.Mutex{},
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *playerImpl) StartShake(config effect.ShakeConfig) effect.ShakeHandle {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst := &instance{player: p, config: config}
	for i := range inst.phase {
		inst.phase[i] = p.rng.Float32() * 2 * math32.Pi
	}
	p.instances = append(p.instances, inst)
	return inst
}

func (p *playerImpl) Apply(v *view.CameraView, deltaTime float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var location mgl32.Vec3
	var rotation common.Rotator
	live := p.instances[:0]
	for _, inst := range p.instances {
		loc, rot := inst.advance(max(deltaTime, 0))
		if inst.dead {
			continue
		}
		location = location.Add(loc)
		rotation = rotation.Add(rot)
		live = append(live, inst)
	}
	clear(p.instances[len(live):])
	p.instances = live

	if len(live) == 0 {
		return
	}
	v.Position = v.Position.Add(v.Rotation.RotateVector(location))
	v.Rotation = v.Rotation.Add(rotation).Normalize()
}

func (p *playerImpl) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, inst := range p.instances {
		if !inst.dead {
			count++
		}
	}
	return count
}

func (p *playerImpl) StopAll(immediate bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, inst := range p.instances {
		inst.stop(immediate)
	}
}

// instance is one running shake. It doubles as the effect.ShakeHandle.
type instance struct {
	player *playerImpl
	config effect.ShakeConfig

	elapsed     float32
	stopping    bool
	stopElapsed float32
	dead        bool
	phase       [6]float32
}

func (i *instance) Valid() bool {
	i.player.mu.Lock()
	defer i.player.mu.Unlock()
	return !i.dead
}

func (i *instance) Stop(immediate bool) {
	i.player.mu.Lock()
	defer i.player.mu.Unlock()
	i.stop(immediate)
}

// --- internal helpers ---

// stop ends the shake. Caller must hold the player mutex.
func (i *instance) stop(immediate bool) {
	if i.dead {
		return
	}
	if immediate || i.config.BlendOut <= 0 {
		i.dead = true
		return
	}
	i.stopping = true
}

// envelope returns the current amplitude factor in [0, 1], marking the shake dead when it has finished.
// Caller must hold the player mutex.
func (i *instance) envelope() float32 {
	c := i.config
	e := float32(1)
	if c.BlendIn > 0 && i.elapsed < c.BlendIn {
		e = i.elapsed / c.BlendIn
	}
	if c.Duration > 0 {
		remaining := c.Duration - i.elapsed
		if remaining <= 0 {
			i.dead = true
			return 0
		}
		if c.BlendOut > 0 && remaining < c.BlendOut {
			e = min(e, remaining/c.BlendOut)
		}
	}
	if i.stopping {
		if i.stopElapsed >= c.BlendOut {
			i.dead = true
			return 0
		}
		e = min(e, 1-i.stopElapsed/c.BlendOut)
	}
	return common.Clamp01(e)
}

// advance steps the shake and returns its camera-space location and rotation offsets.
// Caller must hold the player mutex.
func (i *instance) advance(deltaTime float32) (mgl32.Vec3, common.Rotator) {
	if i.dead {
		return common.VecZero, common.Rotator{}
	}
	i.elapsed += deltaTime
	if i.stopping {
		i.stopElapsed += deltaTime
	}

	amp := i.envelope() * i.config.Scale
	if i.dead || amp == 0 {
		return common.VecZero, common.Rotator{}
	}

	w := 2 * math32.Pi * i.config.Frequency * i.elapsed
	wave := func(axis int) float32 {
		return math32.Sin(w+i.phase[axis]) * amp
	}
	la := i.config.LocationAmplitude
	ra := i.config.RotationAmplitude
	return mgl32.Vec3{la[0] * wave(0), la[1] * wave(1), la[2] * wave(2)},
		common.Rotator{Pitch: ra.Pitch * wave(3), Yaw: ra.Yaw * wave(4), Roll: ra.Roll * wave(5)}
}
