package pipeline

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// FallbackOffset places the camera when no position calculator is set.
var FallbackOffset = mgl32.Vec3{-300, 0, 100}

// PivotOffset shifts the pivot between the target and position stages.
type PivotOffset struct {
	Offset mgl32.Vec3 `yaml:"offset,flow"`
	// UseControlRotation rotates Offset by the control rotation.
	UseControlRotation bool `yaml:"use_control_rotation"`
	// YawOnly uses only the control yaw. Only used if UseControlRotation.
	YawOnly bool `yaml:"yaw_only"`
}

// Apply returns pivot shifted by the offset.
func (p PivotOffset) Apply(pivot mgl32.Vec3, control common.Rotator) mgl32.Vec3 {
	if common.VecNearlyZero(p.Offset) {
		return pivot
	}
	offset := p.Offset
	if p.UseControlRotation {
		if p.YawOnly {
			control = control.YawOnly()
		}
		offset = control.RotateVector(offset)
	}
	return pivot.Add(offset)
}

// Pipeline composes the four calculator stages into a camera view each frame.
// Stages run in the fixed order Target, Position, Rotation, FOV; any missing stage
// falls back to a documented default.
type Pipeline interface {
	// Name returns the pipeline name used in logs.
	//
	// Returns:
	//   - string: the pipeline name
	Name() string

	// ComputeView runs every stage and assembles the view for this frame.
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//
	// Returns:
	//   - view.CameraView: the composed view
	ComputeView(deltaTime float32) view.CameraView

	// Activate activates every calculator, resetting their smoothing, and resets the activation blend.
	Activate()

	// Deactivate deactivates every calculator.
	Deactivate()

	// IsActive reports whether the pipeline is active.
	//
	// Returns:
	//   - bool: true between Activate and Deactivate
	IsActive() bool

	// World returns the world the calculators read from.
	//
	// Returns:
	//   - calculator.World: the world, or nil
	World() calculator.World

	// SetWorld rebinds every calculator to world.
	//
	// Parameters:
	//   - world: the world-state provider
	SetWorld(world calculator.World)

	// TargetCalculator returns the target stage, or nil.
	TargetCalculator() calculator.TargetCalculator

	// PositionCalculator returns the position stage, or nil.
	PositionCalculator() calculator.PositionCalculator

	// RotationCalculator returns the rotation stage, or nil.
	RotationCalculator() calculator.RotationCalculator

	// FOVCalculator returns the FOV stage, or nil.
	FOVCalculator() calculator.FOVCalculator

	// SetTargetCalculator swaps the target stage. The old calculator is deactivated;
	// the new one is initialized and activated if the pipeline is active.
	//
	// Parameters:
	//   - c: the new calculator, or nil for the fallback
	SetTargetCalculator(c calculator.TargetCalculator)

	// SetPositionCalculator swaps the position stage, like SetTargetCalculator.
	SetPositionCalculator(c calculator.PositionCalculator)

	// SetRotationCalculator swaps the rotation stage, like SetTargetCalculator.
	SetRotationCalculator(c calculator.RotationCalculator)

	// SetFOVCalculator swaps the FOV stage, like SetTargetCalculator.
	SetFOVCalculator(c calculator.FOVCalculator)

	// PivotOffset returns the pivot offset.
	PivotOffset() PivotOffset

	// SetPivotOffset changes the pivot offset.
	SetPivotOffset(offset PivotOffset)

	// ControlRotation returns the control rotation cached by the last ComputeView.
	ControlRotation() common.Rotator

	// ActivationBlend returns the blend that fades this pipeline in.
	//
	// Returns:
	//   - blend.ActivationBlend: the activation blend
	ActivationBlend() blend.ActivationBlend

	// AddPanOffset forwards a pan delta to the position stage.
	//
	// Parameters:
	//   - delta: world-space pan delta
	//
	// Returns:
	//   - bool: false if the position stage does not pan
	AddPanOffset(delta mgl32.Vec3) bool

	// AddOrbitInput forwards an orbit delta to the position stage.
	//
	// Parameters:
	//   - deltaAngle: orbit delta in degrees
	//
	// Returns:
	//   - bool: false if the position stage does not orbit
	AddOrbitInput(deltaAngle float32) bool
}

type pipelineImpl struct {
	mu *sync.Mutex

	name   string
	world  calculator.World
	active bool

	target   calculator.TargetCalculator
	position calculator.PositionCalculator
	rotation calculator.RotationCalculator
	fov      calculator.FOVCalculator

	pivotOffset     PivotOffset
	controlRotation common.Rotator
	lastPivot       mgl32.Vec3

	activation blend.ActivationBlend
}

var _ Pipeline = &pipelineImpl{}

// NewPipeline creates an inactive pipeline with no calculators and a default activation blend.
//
// Parameters:
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the newly created pipeline
func NewPipeline(options ...PipelineBuilderOption) Pipeline {
	p := &pipelineImpl{
		mu:   &sync.Mutex{},
		name: "pipeline",
	}
	for _, option := range options {
		option(p)
	}
	if p.activation == nil {
		p.activation = blend.NewActivationBlend()
	}
	for _, c := range p.calculators() {
		c.Initialize(p.world)
	}
	return p
}

func (p *pipelineImpl) Name() string {
	return p.name
}

func (p *pipelineImpl) ComputeView(deltaTime float32) view.CameraView {
	p.mu.Lock()
	defer p.mu.Unlock()

	control := common.Rotator{}
	if p.world != nil {
		control = p.world.ControlRotation()
	}
	control.Pitch = common.NormalizeAxis(control.Pitch)
	p.controlRotation = control

	pivot, subject := p.computeTarget(deltaTime)
	p.lastPivot = pivot
	offsetPivot := p.pivotOffset.Apply(pivot, control)

	var camPos mgl32.Vec3
	if p.position != nil {
		camPos = p.position.Compute(offsetPivot, control, deltaTime)
	} else {
		camPos = offsetPivot.Add(FallbackOffset)
	}

	var rot common.Rotator
	if p.rotation != nil {
		rot = p.rotation.Compute(camPos, offsetPivot, control, deltaTime)
	} else if dir := offsetPivot.Sub(camPos); !common.VecNearlyZero(dir) {
		rot = common.RotatorFromDirection(dir)
	} else {
		rot = control
	}

	fov := view.DefaultFOV
	if p.fov != nil {
		fov = p.fov.Compute(camPos, offsetPivot, deltaTime)
	}

	v := view.NewCameraView()
	v.Position = camPos
	v.Rotation = rot
	v.FOV = fov
	v.PivotPosition = offsetPivot
	v.ControlLocation = subject
	v.ControlRotation = control
	return v
}

func (p *pipelineImpl) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	for _, c := range p.calculators() {
		c.Activate()
	}
	p.activation.Reset()
	slog.Debug("pipeline activated", "pipeline", p.name)
}

func (p *pipelineImpl) Deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	for _, c := range p.calculators() {
		c.Deactivate()
	}
}

func (p *pipelineImpl) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *pipelineImpl) World() calculator.World {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.world
}

func (p *pipelineImpl) SetWorld(world calculator.World) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.world = world
	for _, c := range p.calculators() {
		c.Initialize(world)
	}
}

func (p *pipelineImpl) TargetCalculator() calculator.TargetCalculator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

func (p *pipelineImpl) PositionCalculator() calculator.PositionCalculator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *pipelineImpl) RotationCalculator() calculator.RotationCalculator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rotation
}

func (p *pipelineImpl) FOVCalculator() calculator.FOVCalculator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fov
}

func (p *pipelineImpl) SetTargetCalculator(c calculator.TargetCalculator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swap(p.target, c)
	p.target = c
}

func (p *pipelineImpl) SetPositionCalculator(c calculator.PositionCalculator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swap(p.position, c)
	p.position = c
}

func (p *pipelineImpl) SetRotationCalculator(c calculator.RotationCalculator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swap(p.rotation, c)
	p.rotation = c
}

func (p *pipelineImpl) SetFOVCalculator(c calculator.FOVCalculator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.swap(p.fov, c)
	p.fov = c
}

func (p *pipelineImpl) PivotOffset() PivotOffset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pivotOffset
}

func (p *pipelineImpl) SetPivotOffset(offset PivotOffset) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pivotOffset = offset
}

func (p *pipelineImpl) ControlRotation() common.Rotator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controlRotation
}

func (p *pipelineImpl) ActivationBlend() blend.ActivationBlend {
	return p.activation
}

func (p *pipelineImpl) AddPanOffset(delta mgl32.Vec3) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pan, ok := p.position.(calculator.Pannable)
	if !ok {
		return false
	}
	pan.AddPanOffset(delta)
	return true
}

func (p *pipelineImpl) AddOrbitInput(deltaAngle float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	orbit, ok := p.position.(calculator.Orbitable)
	if !ok {
		return false
	}
	orbit.AddOrbitInput(deltaAngle)
	return true
}

// --- internal helpers ---

// computeTarget resolves the pivot and the followed subject's location. Without a target stage
// the world's primary subject is used, then the last pivot. Caller must hold the mutex.
func (p *pipelineImpl) computeTarget(deltaTime float32) (pivot, subject mgl32.Vec3) {
	var primary mgl32.Vec3
	primaryOK := false
	if p.world != nil {
		if id := p.world.PrimarySubject(); id != 0 {
			primary, primaryOK = p.world.ActorPosition(id)
		}
	}

	if p.target != nil {
		pivot, _ = p.target.Compute(deltaTime)
	} else if primaryOK {
		pivot = primary
	} else {
		pivot = p.lastPivot
	}

	if !primaryOK {
		primary = pivot
	}
	return pivot, primary
}

// swap retires old and prepares c for use. Caller must hold the mutex.
func (p *pipelineImpl) swap(old, c calculator.Calculator) {
	if old != nil {
		old.Deactivate()
	}
	if c == nil {
		return
	}
	c.Initialize(p.world)
	if p.active {
		c.Activate()
	}
}

// calculators returns the non-nil stages. Caller must hold the mutex.
func (p *pipelineImpl) calculators() []calculator.Calculator {
	out := make([]calculator.Calculator, 0, 4)
	if p.target != nil {
		out = append(out, p.target)
	}
	if p.position != nil {
		out = append(out, p.position)
	}
	if p.rotation != nil {
		out = append(out, p.rotation)
	}
	if p.fov != nil {
		out = append(out, p.fov)
	}
	return out
}
