package calculator

import "github.com/go-gl/mathgl/mgl32"

// StaticFOV always returns the configured field of view.
type StaticFOV struct {
	lifecycle
	config StaticFOVConfig
}

var _ FOVCalculator = &StaticFOV{}

// NewStaticFOV creates a constant FOV calculator.
func NewStaticFOV(config StaticFOVConfig) *StaticFOV {
	return &StaticFOV{config: config}
}

func (s *StaticFOV) Compute(cameraPos, pivot mgl32.Vec3, deltaTime float32) float32 {
	return s.config.BaseFOV
}
