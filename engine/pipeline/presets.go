package pipeline

import (
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
)

// BlendConfig tunes a pipeline's activation blend.
type BlendConfig struct {
	BlendTime   float32         `yaml:"blend_time"`
	Curve       blend.CurveKind `yaml:"curve"`
	CurveScript string          `yaml:"curve_script"`
}

// DefaultBlendConfig returns the default 0.5 s EaseInOut ramp.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{BlendTime: blend.DefaultBlendTime, Curve: blend.CurveEaseInOut}
}

// build returns a configured activation blend.
func (b BlendConfig) build() blend.ActivationBlend {
	opts := []blend.ActivationBlendBuilderOption{blend.WithBlendTime(b.BlendTime)}
	if b.Curve == blend.CurveCustom {
		opts = append(opts, blend.WithCurve(blend.ResolveCurve(b.Curve, b.CurveScript)))
	} else {
		opts = append(opts, blend.WithCurveKind(b.Curve))
	}
	return blend.NewActivationBlend(opts...)
}

// ThirdPersonConfig tunes the over-the-shoulder preset.
type ThirdPersonConfig struct {
	Blend       BlendConfig                      `yaml:"blend"`
	PivotOffset PivotOffset                      `yaml:"pivot_offset"`
	Target      calculator.SingleTargetConfig    `yaml:"target"`
	Position    calculator.OffsetConfig          `yaml:"position"`
	Rotation    calculator.ControlRotationConfig `yaml:"rotation"`
	FOV         calculator.StaticFOVConfig       `yaml:"fov"`
	// DynamicFOV replaces the static FOV with a speed-driven one when set.
	DynamicFOV *calculator.DynamicFOVConfig `yaml:"dynamic_fov"`
}

// DefaultThirdPersonConfig returns a camera behind and above the subject's eyes, steered by the control rotation.
func DefaultThirdPersonConfig() ThirdPersonConfig {
	target := calculator.DefaultSingleTargetConfig()
	target.UseEyeHeight = true
	return ThirdPersonConfig{
		Blend:    DefaultBlendConfig(),
		Target:   target,
		Position: calculator.DefaultOffsetConfig(),
		Rotation: calculator.DefaultControlRotationConfig(),
		FOV:      calculator.DefaultStaticFOVConfig(),
	}
}

// TopDownConfig tunes the overhead preset.
type TopDownConfig struct {
	Blend    BlendConfig                    `yaml:"blend"`
	Target   calculator.SingleTargetConfig  `yaml:"target"`
	Position calculator.TopDownConfig       `yaml:"position"`
	Rotation calculator.FixedRotationConfig `yaml:"rotation"`
	FOV      calculator.StaticFOVConfig     `yaml:"fov"`
}

// DefaultTopDownConfig returns an overhead camera with a fixed orientation and an 80 degree FOV.
func DefaultTopDownConfig() TopDownConfig {
	return TopDownConfig{
		Blend:    DefaultBlendConfig(),
		Target:   calculator.DefaultSingleTargetConfig(),
		Position: calculator.DefaultTopDownConfig(),
		Rotation: calculator.DefaultFixedRotationConfig(),
		FOV:      calculator.StaticFOVConfig{BaseFOV: 80},
	}
}

// DualFocusOrbitConfig tunes the lock-on preset.
type DualFocusOrbitConfig struct {
	Blend    BlendConfig                   `yaml:"blend"`
	Target   calculator.DualFocusConfig    `yaml:"target"`
	Position calculator.EllipseOrbitConfig `yaml:"position"`
	Rotation calculator.LookAtConfig       `yaml:"rotation"`
	FOV      calculator.FramingFOVConfig   `yaml:"fov"`
}

// DefaultDualFocusOrbitConfig returns the default lock-on camera.
func DefaultDualFocusOrbitConfig() DualFocusOrbitConfig {
	return DualFocusOrbitConfig{
		Blend:    DefaultBlendConfig(),
		Target:   calculator.DefaultDualFocusConfig(),
		Position: calculator.DefaultEllipseOrbitConfig(),
		Rotation: calculator.DefaultLookAtConfig(),
		FOV:      calculator.DefaultFramingFOVConfig(),
	}
}

// NewThirdPerson builds a pipeline following subject with a control-steered offset camera.
//
// Parameters:
//   - world: the world-state provider
//   - subject: the followed actor, or zero for the world's primary subject
//   - cfg: the preset tuning
//
// Returns:
//   - Pipeline: the inactive pipeline
func NewThirdPerson(world calculator.World, subject calculator.ActorID, cfg ThirdPersonConfig) Pipeline {
	var fov calculator.FOVCalculator = calculator.NewStaticFOV(cfg.FOV)
	if cfg.DynamicFOV != nil {
		fov = calculator.NewDynamicFOV(*cfg.DynamicFOV, subject)
	}
	return NewPipeline(
		WithName("third_person"),
		WithWorld(world),
		WithTarget(calculator.NewSingleTarget(cfg.Target, subject)),
		WithPosition(calculator.NewOffsetPosition(cfg.Position)),
		WithRotation(calculator.NewControlRotation(cfg.Rotation)),
		WithFOV(fov),
		WithPivotOffset(cfg.PivotOffset),
		WithActivationBlend(cfg.Blend.build()),
	)
}

// NewTopDown builds an overhead pipeline following subject.
//
// Parameters:
//   - world: the world-state provider
//   - subject: the followed actor, or zero for the world's primary subject
//   - cfg: the preset tuning
//
// Returns:
//   - Pipeline: the inactive pipeline
func NewTopDown(world calculator.World, subject calculator.ActorID, cfg TopDownConfig) Pipeline {
	return NewPipeline(
		WithName("top_down"),
		WithWorld(world),
		WithTarget(calculator.NewSingleTarget(cfg.Target, subject)),
		WithPosition(calculator.NewTopDown(cfg.Position)),
		WithRotation(calculator.NewFixedRotation(cfg.Rotation)),
		WithFOV(calculator.NewStaticFOV(cfg.FOV)),
		WithActivationBlend(cfg.Blend.build()),
	)
}

// NewDualFocusOrbit builds a lock-on pipeline framing the player and the locked target.
//
// Parameters:
//   - world: the world-state provider
//   - player: the player actor, or zero for the world's primary subject
//   - cfg: the preset tuning
//
// Returns:
//   - Pipeline: the inactive pipeline
func NewDualFocusOrbit(world calculator.World, player calculator.ActorID, cfg DualFocusOrbitConfig) Pipeline {
	return NewPipeline(
		WithName("dual_focus_orbit"),
		WithWorld(world),
		WithTarget(calculator.NewDualFocus(cfg.Target, player)),
		WithPosition(calculator.NewEllipseOrbit(cfg.Position, player)),
		WithRotation(calculator.NewLookAtRotation(cfg.Rotation)),
		WithFOV(calculator.NewFramingFOV(cfg.FOV, player)),
		WithActivationBlend(cfg.Blend.build()),
	)
}
