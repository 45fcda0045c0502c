package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-camera/engine/effect"
	"github.com/Carmen-Shannon/oxy-camera/engine/feature"
	"github.com/Carmen-Shannon/oxy-camera/engine/input"
	"github.com/Carmen-Shannon/oxy-camera/engine/pipeline"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings wraps every validation failure returned by Validate and Load.
var ErrInvalidSettings = errors.New("invalid settings")

// LogSettings selects the log level installed by the host.
type LogSettings struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
}

// EngineSettings tunes the host loop.
type EngineSettings struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	// Workers bounds the number of rigs ticked in parallel. Zero or less uses one worker per CPU.
	Workers   int  `yaml:"workers"`
	Profiling bool `yaml:"profiling"`
}

// ModeSettings holds the tuning of every camera mode preset.
type ModeSettings struct {
	ThirdPerson    pipeline.ThirdPersonConfig    `yaml:"third_person"`
	TopDown        pipeline.TopDownConfig        `yaml:"top_down"`
	DualFocusOrbit pipeline.DualFocusOrbitConfig `yaml:"dual_focus_orbit"`
}

// FeatureSettings holds the tuning of the input-driven features.
type FeatureSettings struct {
	EdgeScroll   feature.EdgeScrollConfig   `yaml:"edge_scroll"`
	KeyboardPan  feature.KeyboardPanConfig  `yaml:"keyboard_pan"`
	MouseDragPan feature.MouseDragPanConfig `yaml:"mouse_drag_pan"`
	OrbitInput   feature.OrbitInputConfig   `yaml:"orbit_input"`

	VelocityPrediction feature.VelocityPredictionConfig `yaml:"velocity_prediction"`
}

// Settings is the root of the camera settings file.
type Settings struct {
	Log      LogSettings     `yaml:"log"`
	Engine   EngineSettings  `yaml:"engine"`
	Modes    ModeSettings    `yaml:"modes"`
	Features FeatureSettings `yaml:"features"`
	Input    input.Bindings  `yaml:"input"`
	// Effects are named presets activated with Rig.ActivatePreset. The map key is the effect name.
	Effects map[string]effect.Config `yaml:"effects"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Log:    LogSettings{Level: "info"},
		Engine: EngineSettings{TickRate: 60},
		Modes: ModeSettings{
			ThirdPerson:    pipeline.DefaultThirdPersonConfig(),
			TopDown:        pipeline.DefaultTopDownConfig(),
			DualFocusOrbit: pipeline.DefaultDualFocusOrbitConfig(),
		},
		Features: FeatureSettings{
			EdgeScroll:   feature.DefaultEdgeScrollConfig(),
			KeyboardPan:  feature.DefaultKeyboardPanConfig(),
			MouseDragPan: feature.DefaultMouseDragPanConfig(),
			OrbitInput:   feature.DefaultOrbitInputConfig(),

			VelocityPrediction: feature.DefaultVelocityPredictionConfig(),
		},
		Input:   input.DefaultBindings(),
		Effects: map[string]effect.Config{},
	}
}

// Load reads the settings file at path over the defaults and validates the result.
//
// Parameters:
//   - path: the YAML settings file
//
// Returns:
//   - Settings: the loaded settings
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
// Keys absent from data keep their default values.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Settings: the parsed settings
//   - error: error if data cannot be parsed or validated
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	for name, cfg := range s.Effects {
		if cfg.Name == "" {
			cfg.Name = name
			s.Effects[name] = cfg
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first setting that cannot produce a usable camera.
//
// Returns:
//   - error: an error wrapping ErrInvalidSettings, or nil
func (s Settings) Validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s.Log.Level))); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.Log.Level)
	}
	if s.Engine.TickRate < 0 || s.Engine.RenderFrameLimit < 0 {
		return fmt.Errorf("%w: engine rates must not be negative", ErrInvalidSettings)
	}

	third := s.Modes.ThirdPerson.Rotation
	if third.LimitPitch && third.MinPitch > third.MaxPitch {
		return rangeError("modes.third_person.rotation pitch", third.MinPitch, third.MaxPitch)
	}
	if dyn := s.Modes.ThirdPerson.DynamicFOV; dyn != nil && dyn.MinFOV > dyn.MaxFOV {
		return rangeError("modes.third_person.dynamic_fov", dyn.MinFOV, dyn.MaxFOV)
	}
	orbit := s.Modes.DualFocusOrbit.Position
	if orbit.MinCameraDistance > orbit.MaxCameraDistance {
		return rangeError("modes.dual_focus_orbit.position camera distance", orbit.MinCameraDistance, orbit.MaxCameraDistance)
	}
	if orbit.MinEllipseScale > orbit.MaxEllipseScale {
		return rangeError("modes.dual_focus_orbit.position ellipse scale", orbit.MinEllipseScale, orbit.MaxEllipseScale)
	}
	framing := s.Modes.DualFocusOrbit.FOV
	if framing.MinFOV > framing.MaxFOV {
		return rangeError("modes.dual_focus_orbit.fov", framing.MinFOV, framing.MaxFOV)
	}
	for name, b := range map[string]pipeline.BlendConfig{
		"third_person":     s.Modes.ThirdPerson.Blend,
		"top_down":         s.Modes.TopDown.Blend,
		"dual_focus_orbit": s.Modes.DualFocusOrbit.Blend,
	} {
		if b.BlendTime < 0 {
			return fmt.Errorf("%w: modes.%s.blend: negative blend time", ErrInvalidSettings, name)
		}
	}

	if s.Features.VelocityPrediction.PredictionTime < 0 {
		return fmt.Errorf("%w: features.velocity_prediction: negative prediction time", ErrInvalidSettings)
	}

	if err := s.Input.Validate(); err != nil {
		return fmt.Errorf("%w: input: %w", ErrInvalidSettings, err)
	}
	for name, cfg := range s.Effects {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: effects.%s: %w", ErrInvalidSettings, name, err)
		}
	}
	return nil
}

// LogLevel returns the configured level, defaulting to info when unset or unknown.
func (s Settings) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func rangeError(field string, lo, hi float32) error {
	return fmt.Errorf("%w: %s: min %.2f exceeds max %.2f", ErrInvalidSettings, field, lo, hi)
}
