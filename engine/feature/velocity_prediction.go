package feature

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// VelocityPrediction leads the pivot along the primary subject's velocity so the camera
// looks where the subject is heading, then re-aims the camera at the moved pivot.
// It needs a world that implements calculator.VelocitySource and does nothing otherwise.
type VelocityPrediction struct {
	base
	config VelocityPredictionConfig
	curve  blend.Curve
}

var _ ViewFeature = &VelocityPrediction{}

// NewVelocityPrediction creates a velocity prediction feature. It runs before the other
// built-in features.
func NewVelocityPrediction(config VelocityPredictionConfig) *VelocityPrediction {
	return &VelocityPrediction{
		base:   newBase("velocity_prediction", -100),
		config: config,
		curve:  blend.Builtin(config.Curve),
	}
}

func (p *VelocityPrediction) Update(InputSource, Target, view.CameraView, float32) {}

func (p *VelocityPrediction) ApplyToView(world calculator.World, v *view.CameraView, _ float32) {
	if !p.enabled || v == nil {
		return
	}
	velocity, ok := calculator.SubjectVelocity(world, 0)
	if !ok {
		return
	}
	offset := p.Lead(velocity)
	if common.VecNearlyZero(offset) {
		return
	}

	v.PivotPosition = v.PivotPosition.Add(offset)
	toPivot := v.PivotPosition.Sub(v.Position)
	if common.VecNearlyZero(toPivot) {
		return
	}
	aim := common.RotatorFromDirection(toPivot)
	if p.config.PreserveYaw {
		aim.Yaw = v.Rotation.Yaw
	}
	aim.Roll = v.Rotation.Roll
	v.Rotation = aim
}

// Lead returns the pivot offset for a subject velocity:
// velocity * PredictionTime * curve((speed-MinSpeed)/(MaxSpeed-MinSpeed)), zero below MinSpeed.
// When MaxSpeed does not exceed MinSpeed the strength is 1.
func (p *VelocityPrediction) Lead(velocity mgl32.Vec3) mgl32.Vec3 {
	if p.config.HorizontalOnly {
		velocity = common.Flatten(velocity)
	}
	speed := velocity.Len()
	if speed < p.config.MinSpeed || speed == 0 {
		return common.VecZero
	}
	strength := float32(1)
	if p.config.MaxSpeed > p.config.MinSpeed {
		strength = p.curve.Evaluate(common.Clamp01((speed - p.config.MinSpeed) / (p.config.MaxSpeed - p.config.MinSpeed)))
	}
	return velocity.Mul(p.config.PredictionTime * strength)
}

// Config returns the feature tuning.
func (p *VelocityPrediction) Config() VelocityPredictionConfig {
	return p.config
}
