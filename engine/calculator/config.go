package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SingleTargetConfig tunes the single-subject target calculator.
type SingleTargetConfig struct {
	// UseEyeHeight raises the pivot by the subject's eye height.
	UseEyeHeight bool `yaml:"use_eye_height"`
	// Offset is added to the pivot, in world space unless UseTargetRotation is set.
	Offset mgl32.Vec3 `yaml:"offset,flow"`
	// UseTargetRotation rotates Offset by the subject's rotation.
	UseTargetRotation bool `yaml:"use_target_rotation"`
	// YawOnly restricts the rotation applied to Offset to yaw. Only used if UseTargetRotation.
	YawOnly bool `yaml:"yaw_only"`
	// LocationSmoothSpeed smooths the pivot. Zero or less follows the subject exactly.
	LocationSmoothSpeed float32 `yaml:"location_smooth_speed"`
}

// DefaultSingleTargetConfig returns the default single-target tuning.
func DefaultSingleTargetConfig() SingleTargetConfig {
	return SingleTargetConfig{YawOnly: true}
}

// DualFocusConfig tunes the player plus locked-target focus calculator.
type DualFocusConfig struct {
	PlayerFocusWeight       float32 `yaml:"player_focus_weight"`
	TargetFocusWeight       float32 `yaml:"target_focus_weight"`
	FocusPointSmoothSpeed   float32 `yaml:"focus_point_smooth_speed"`
	LockedTargetSmoothSpeed float32 `yaml:"locked_target_smooth_speed"`
}

// DefaultDualFocusConfig returns the default dual-focus tuning.
func DefaultDualFocusConfig() DualFocusConfig {
	return DualFocusConfig{
		PlayerFocusWeight:       0.6,
		TargetFocusWeight:       0.4,
		FocusPointSmoothSpeed:   8,
		LockedTargetSmoothSpeed: 12,
	}
}

// OffsetConfig tunes the fixed-offset position calculator.
type OffsetConfig struct {
	// Offset from the pivot in the control rotation's local space when UseControlRotation is set.
	Offset             mgl32.Vec3 `yaml:"offset,flow"`
	UseControlRotation bool       `yaml:"use_control_rotation"`
	// YawOnly uses only the control yaw. Only used if UseControlRotation.
	YawOnly             bool    `yaml:"yaw_only"`
	PositionSmoothSpeed float32 `yaml:"position_smooth_speed"`
}

// DefaultOffsetConfig returns the default offset tuning: behind and above the pivot.
func DefaultOffsetConfig() OffsetConfig {
	return OffsetConfig{
		Offset:             mgl32.Vec3{-300, 0, 100},
		UseControlRotation: true,
	}
}

// EllipseOrbitConfig tunes the elliptical orbit position calculator.
type EllipseOrbitConfig struct {
	EllipseMajorRadius float32 `yaml:"ellipse_major_radius"`
	EllipseMinorRadius float32 `yaml:"ellipse_minor_radius"`
	MinCameraDistance  float32 `yaml:"min_camera_distance"`
	MaxCameraDistance  float32 `yaml:"max_camera_distance"`
	HeightOffset       float32 `yaml:"height_offset"`

	EnablePlayerInput     bool    `yaml:"enable_player_input"`
	InputSensitivity      float32 `yaml:"input_sensitivity"`
	OrbitAngleSmoothSpeed float32 `yaml:"orbit_angle_smooth_speed"`
	ClampOrbitAngle       bool    `yaml:"clamp_orbit_angle"`
	// MaxOrbitAngle bounds the target angle to [-MaxOrbitAngle, MaxOrbitAngle]. Only used if ClampOrbitAngle.
	MaxOrbitAngle     float32 `yaml:"max_orbit_angle"`
	DefaultOrbitAngle float32 `yaml:"default_orbit_angle"`

	EnableAdaptiveDistance bool `yaml:"enable_adaptive_distance"`
	// AdaptiveDistanceBase is the subject separation at which the ellipse has scale 1.
	AdaptiveDistanceBase float32 `yaml:"adaptive_distance_base"`
	EllipseScaleFactor   float32 `yaml:"ellipse_scale_factor"`
	MinEllipseScale      float32 `yaml:"min_ellipse_scale"`
	MaxEllipseScale      float32 `yaml:"max_ellipse_scale"`

	PositionSmoothSpeed float32 `yaml:"position_smooth_speed"`
}

// DefaultEllipseOrbitConfig returns the default orbit tuning.
func DefaultEllipseOrbitConfig() EllipseOrbitConfig {
	return EllipseOrbitConfig{
		EllipseMajorRadius:     800,
		EllipseMinorRadius:     500,
		MinCameraDistance:      400,
		MaxCameraDistance:      1200,
		HeightOffset:           150,
		EnablePlayerInput:      true,
		InputSensitivity:       1,
		OrbitAngleSmoothSpeed:  5,
		ClampOrbitAngle:        true,
		MaxOrbitAngle:          120,
		EnableAdaptiveDistance: true,
		AdaptiveDistanceBase:   500,
		EllipseScaleFactor:     1,
		MinEllipseScale:        0.5,
		MaxEllipseScale:        2,
		PositionSmoothSpeed:    8,
	}
}

// TopDownConfig tunes the overhead position calculator.
type TopDownConfig struct {
	CameraHeight float32 `yaml:"camera_height"`
	// ViewAngle is the downward pitch in degrees; 90 looks straight down.
	ViewAngle         float32 `yaml:"view_angle"`
	ViewDirectionYaw  float32 `yaml:"view_direction_yaw"`
	FollowSmoothSpeed float32 `yaml:"follow_smooth_speed"`
	// MaxPanDistance bounds the horizontal pan offset. Zero or less disables the bound.
	MaxPanDistance float32 `yaml:"max_pan_distance"`
}

// DefaultTopDownConfig returns the default overhead tuning.
func DefaultTopDownConfig() TopDownConfig {
	return TopDownConfig{
		CameraHeight:      1500,
		ViewAngle:         45,
		ViewDirectionYaw:  45,
		FollowSmoothSpeed: 8,
	}
}

// ControlRotationConfig tunes the control-rotation calculator.
type ControlRotationConfig struct {
	LimitPitch bool    `yaml:"limit_pitch"`
	MinPitch   float32 `yaml:"min_pitch"`
	MaxPitch   float32 `yaml:"max_pitch"`
	LockRoll   bool    `yaml:"lock_roll"`
}

// DefaultControlRotationConfig returns the default control-rotation tuning.
func DefaultControlRotationConfig() ControlRotationConfig {
	return ControlRotationConfig{LimitPitch: true, MinPitch: -89, MaxPitch: 89, LockRoll: true}
}

// LookAtConfig tunes the look-at rotation calculator.
type LookAtConfig struct {
	RotationSmoothSpeed float32 `yaml:"rotation_smooth_speed"`
	LockRoll            bool    `yaml:"lock_roll"`
}

// DefaultLookAtConfig returns the default look-at tuning.
func DefaultLookAtConfig() LookAtConfig {
	return LookAtConfig{RotationSmoothSpeed: 8, LockRoll: true}
}

// FixedRotationConfig tunes the fixed rotation calculator.
type FixedRotationConfig struct {
	LockRoll bool `yaml:"lock_roll"`
}

// DefaultFixedRotationConfig returns the default fixed-rotation tuning.
func DefaultFixedRotationConfig() FixedRotationConfig {
	return FixedRotationConfig{LockRoll: true}
}

// StaticFOVConfig tunes the constant FOV calculator.
type StaticFOVConfig struct {
	BaseFOV float32 `yaml:"base_fov"`
}

// DefaultStaticFOVConfig returns the default static FOV.
func DefaultStaticFOVConfig() StaticFOVConfig {
	return StaticFOVConfig{BaseFOV: 90}
}

// FramingFOVConfig tunes the two-subject framing FOV calculator.
type FramingFOVConfig struct {
	BaseFOV            float32 `yaml:"base_fov"`
	MinFOV             float32 `yaml:"min_fov"`
	MaxFOV             float32 `yaml:"max_fov"`
	FOVTransitionSpeed float32 `yaml:"fov_transition_speed"`
	// KeepBothInFrame widens the FOV to fit the player and the locked target.
	// When false, or without a locked target, BaseFOV is the target value.
	KeepBothInFrame bool `yaml:"keep_both_in_frame"`
	// FramePadding inflates the required angle by (1 + 2*FramePadding).
	FramePadding float32 `yaml:"frame_padding"`
}

// DefaultFramingFOVConfig returns the default framing tuning.
func DefaultFramingFOVConfig() FramingFOVConfig {
	return FramingFOVConfig{
		BaseFOV:            80,
		MinFOV:             60,
		MaxFOV:             100,
		FOVTransitionSpeed: 5,
		KeepBothInFrame:    true,
		FramePadding:       0.15,
	}
}

// DynamicFOVConfig tunes the speed-driven FOV calculator.
type DynamicFOVConfig struct {
	BaseFOV float32 `yaml:"base_fov"`
	MinFOV  float32 `yaml:"min_fov"`
	MaxFOV  float32 `yaml:"max_fov"`
	// SpeedFOVFactor is the FOV gained in degrees per world unit per second of subject speed.
	SpeedFOVFactor float32 `yaml:"speed_fov_factor"`
	ChangeRate     float32 `yaml:"change_rate"`
}

// DefaultDynamicFOVConfig returns the default speed-driven FOV tuning.
func DefaultDynamicFOVConfig() DynamicFOVConfig {
	return DynamicFOVConfig{BaseFOV: 90, MinFOV: 60, MaxFOV: 100, SpeedFOVFactor: 0.01, ChangeRate: 5}
}

// UnmarshalYAML decodes onto DefaultDynamicFOVConfig so a partial section keeps the defaults.
func (c *DynamicFOVConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain DynamicFOVConfig
	p := plain(DefaultDynamicFOVConfig())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = DynamicFOVConfig(p)
	return nil
}

// rotatedOffset applies an optional (yaw-only) rotation to a local offset.
func rotatedOffset(offset mgl32.Vec3, rot common.Rotator, useRotation, yawOnly bool) mgl32.Vec3 {
	if !useRotation {
		return offset
	}
	if yawOnly {
		rot = rot.YawOnly()
	}
	return rot.RotateVector(offset)
}
