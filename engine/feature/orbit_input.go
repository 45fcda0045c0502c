package feature

import "github.com/Carmen-Shannon/oxy-camera/engine/view"

// OrbitInput turns the orbit axis into orbit angle deltas.
type OrbitInput struct {
	base
	config OrbitInputConfig
}

var _ Feature = &OrbitInput{}

// NewOrbitInput creates an orbit input feature.
func NewOrbitInput(config OrbitInputConfig) *OrbitInput {
	return &OrbitInput{base: newBase("orbit_input", 0), config: config}
}

func (o *OrbitInput) Update(input InputSource, target Target, _ view.CameraView, deltaTime float32) {
	if !o.enabled || input == nil || target == nil {
		return
	}
	if axis := input.OrbitAxis(); axis != 0 {
		target.AddOrbitInput(axis * o.config.DegreesPerSecond * deltaTime)
	}
}
