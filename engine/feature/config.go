package feature

import "github.com/Carmen-Shannon/oxy-camera/engine/blend"

// EdgeScrollConfig tunes EdgeScroll.
type EdgeScrollConfig struct {
	// EdgeThreshold is the width in pixels of the border that triggers scrolling.
	EdgeThreshold float32 `yaml:"edge_threshold"`
	// ScrollSpeed is the pan speed in world units per second.
	ScrollSpeed float32 `yaml:"scroll_speed"`
	Horizontal  bool    `yaml:"horizontal"`
	Vertical    bool    `yaml:"vertical"`
}

// DefaultEdgeScrollConfig returns the default edge scroll tuning.
func DefaultEdgeScrollConfig() EdgeScrollConfig {
	return EdgeScrollConfig{EdgeThreshold: 50, ScrollSpeed: 500, Horizontal: true, Vertical: true}
}

// KeyboardPanConfig tunes KeyboardPan.
type KeyboardPanConfig struct {
	PanSpeed float32 `yaml:"pan_speed"`
	// RelativeToCamera pans along the camera yaw instead of the world axes.
	RelativeToCamera bool `yaml:"relative_to_camera"`
}

// DefaultKeyboardPanConfig returns the default keyboard pan tuning.
func DefaultKeyboardPanConfig() KeyboardPanConfig {
	return KeyboardPanConfig{PanSpeed: 800, RelativeToCamera: true}
}

// MouseDragPanConfig tunes MouseDragPan.
type MouseDragPanConfig struct {
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	InvertDrag      bool    `yaml:"invert_drag"`
}

// DefaultMouseDragPanConfig returns the default drag pan tuning.
func DefaultMouseDragPanConfig() MouseDragPanConfig {
	return MouseDragPanConfig{DragSensitivity: 1}
}

// OrbitInputConfig tunes OrbitInput.
type OrbitInputConfig struct {
	DegreesPerSecond float32 `yaml:"degrees_per_second"`
}

// DefaultOrbitInputConfig returns the default orbit input tuning.
func DefaultOrbitInputConfig() OrbitInputConfig {
	return OrbitInputConfig{DegreesPerSecond: 90}
}

// VelocityPredictionConfig tunes VelocityPrediction.
type VelocityPredictionConfig struct {
	// PredictionTime is how many seconds ahead of the subject the pivot leads.
	PredictionTime float32 `yaml:"prediction_time"`
	// MinSpeed is the speed below which the pivot is not moved.
	MinSpeed float32 `yaml:"min_speed"`
	// MaxSpeed is the speed at which the lead reaches full strength.
	MaxSpeed float32 `yaml:"max_speed"`
	// Curve maps the normalized speed to the lead strength.
	Curve          blend.CurveKind `yaml:"curve"`
	HorizontalOnly bool            `yaml:"horizontal_only"`
	// PreserveYaw re-aims only the pitch at the moved pivot.
	PreserveYaw bool `yaml:"preserve_yaw"`
}

// DefaultVelocityPredictionConfig returns the default velocity prediction tuning.
func DefaultVelocityPredictionConfig() VelocityPredictionConfig {
	return VelocityPredictionConfig{
		PredictionTime: 0.3,
		MinSpeed:       50,
		MaxSpeed:       600,
		Curve:          blend.CurveLinear,
		HorizontalOnly: true,
		PreserveYaw:    true,
	}
}
