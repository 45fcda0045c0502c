package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DynamicFOV widens the field of view with the subject's speed:
// target = clamp(BaseFOV + speed*SpeedFOVFactor, MinFOV, MaxFOV), smoothed by ChangeRate.
// Each activation restarts from BaseFOV. A world without velocity reports holds BaseFOV.
type DynamicFOV struct {
	lifecycle
	config     DynamicFOVConfig
	subject    ActorID
	currentFOV float32
}

var _ FOVCalculator = &DynamicFOV{}

// NewDynamicFOV creates a speed-driven FOV calculator.
//
// Parameters:
//   - config: the tuning
//   - subject: the actor whose speed drives the FOV, or zero for the primary subject
//
// Returns:
//   - *DynamicFOV: the calculator
func NewDynamicFOV(config DynamicFOVConfig, subject ActorID) *DynamicFOV {
	return &DynamicFOV{config: config, subject: subject, currentFOV: config.BaseFOV}
}

func (d *DynamicFOV) Activate() {
	d.lifecycle.Activate()
	d.currentFOV = d.config.BaseFOV
}

func (d *DynamicFOV) Compute(cameraPos, pivot mgl32.Vec3, deltaTime float32) float32 {
	d.currentFOV = common.InterpTo(d.currentFOV, d.TargetFOV(), deltaTime, d.config.ChangeRate)
	return d.currentFOV
}

// TargetFOV returns the unsmoothed FOV for the subject's current speed.
func (d *DynamicFOV) TargetFOV() float32 {
	target := d.config.BaseFOV
	if velocity, ok := SubjectVelocity(d.world, d.subject); ok {
		target += velocity.Len() * d.config.SpeedFOVFactor
	}
	return common.Clamp(target, d.config.MinFOV, d.config.MaxFOV)
}

// Config returns the calculator tuning.
func (d *DynamicFOV) Config() DynamicFOVConfig {
	return d.config
}
