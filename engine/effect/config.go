package effect

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/blend"
	"github.com/Carmen-Shannon/oxy-camera/engine/calculator"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	// MinFOV and MaxFOV bound any FOV an effect produces.
	MinFOV float32 = 5
	MaxFOV float32 = 170
)

// FOVMode selects how an FOV effect combines with the incoming field of view.
type FOVMode int

const (
	// FOVOffset adds Value scaled by the effect weight.
	FOVOffset FOVMode = iota
	// FOVOverride lerps toward Value by the effect weight.
	FOVOverride
)

var fovModeNames = map[FOVMode]string{
	FOVOffset:   "offset",
	FOVOverride: "override",
}

func (m FOVMode) String() string {
	if name, ok := fovModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FOVMode(%d)", int(m))
}

func (m FOVMode) MarshalText() ([]byte, error) {
	name, ok := fovModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown fov mode %d", int(m))
	}
	return []byte(name), nil
}

func (m *FOVMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for mode, name := range fovModeNames {
		if name == s {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown fov mode %q", s)
}

// LocationConfig offsets the camera location.
type LocationConfig struct {
	Offset mgl32.Vec3 `yaml:"offset,flow"`
	// LocalSpace rotates Offset by the incoming camera rotation.
	LocalSpace bool `yaml:"local_space"`
}

// RotationConfig offsets the camera rotation.
type RotationConfig struct {
	Offset common.Rotator `yaml:"offset"`
}

// FOVConfig offsets or overrides the field of view.
type FOVConfig struct {
	Mode  FOVMode `yaml:"mode"`
	Value float32 `yaml:"value"`
}

// LookAtConfig forces the camera to face an actor or a fixed point.
// When Actor is non-zero the actor location plus Offset is used, otherwise Location.
type LookAtConfig struct {
	Actor    calculator.ActorID `yaml:"actor"`
	Location mgl32.Vec3         `yaml:"location,flow"`
	Offset   mgl32.Vec3         `yaml:"offset,flow"`
	// Weight scales the look-at blend on top of the effect weight.
	Weight float32 `yaml:"weight"`
}

// PostProcessConfig passes post-process settings to the presentation layer.
type PostProcessConfig struct {
	Settings view.PostProcessSettings `yaml:"settings"`
	Weight   float32                  `yaml:"weight"`
}

// ShakeConfig parameterizes a procedural camera shake.
type ShakeConfig struct {
	Scale             float32        `yaml:"scale"`
	LocationAmplitude mgl32.Vec3     `yaml:"location_amplitude,flow"`
	RotationAmplitude common.Rotator `yaml:"rotation_amplitude"`
	// Frequency is the oscillation rate in Hz.
	Frequency float32 `yaml:"frequency"`
	// Duration of the shake in seconds. Zero or less loops until stopped.
	Duration float32 `yaml:"duration"`
	BlendIn  float32 `yaml:"blend_in"`
	BlendOut float32 `yaml:"blend_out"`
}

// DefaultShakeConfig returns a short, moderate shake.
func DefaultShakeConfig() ShakeConfig {
	return ShakeConfig{
		Scale:             1,
		LocationAmplitude: mgl32.Vec3{0, 4, 4},
		RotationAmplitude: common.Rotator{Pitch: 1, Yaw: 1},
		Frequency:         12,
		Duration:          0.5,
		BlendIn:           0.05,
		BlendOut:          0.2,
	}
}

// Config describes one effect. Each kind is enabled by a non-nil section.
type Config struct {
	Name   string          `yaml:"name"`
	Timing Timing          `yaml:",inline"`
	Curve  blend.CurveKind `yaml:"curve"`
	// CurveScript is tengo source used when Curve is custom.
	CurveScript string `yaml:"curve_script"`

	Location    *LocationConfig    `yaml:"location"`
	Rotation    *RotationConfig    `yaml:"rotation"`
	FOV         *FOVConfig         `yaml:"fov"`
	LookAt      *LookAtConfig      `yaml:"look_at"`
	PostProcess *PostProcessConfig `yaml:"post_process"`
	Shake       *ShakeConfig       `yaml:"shake"`
}

// DefaultConfig returns an effect config with default timing and an EaseInOut curve and no kinds enabled.
func DefaultConfig(name string) Config {
	return Config{
		Name:   name,
		Timing: DefaultTiming(),
		Curve:  blend.CurveEaseInOut,
	}
}

// UnmarshalYAML decodes an effect onto DefaultConfig so omitted fields keep their defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	cfg := DefaultConfig("")
	if err := value.Decode((*plain)(&cfg)); err != nil {
		return err
	}
	if cfg.LookAt != nil && !hasKey(value, "look_at", "weight") {
		cfg.LookAt.Weight = 1
	}
	*c = cfg
	return nil
}

// Validate reports configuration that cannot produce a usable effect.
//
// Returns:
//   - error: a description of the first problem found, or nil
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("effect has no name")
	}
	if c.Curve == blend.CurveCustom && strings.TrimSpace(c.CurveScript) == "" {
		return fmt.Errorf("effect %q: custom curve requires curve_script", c.Name)
	}
	if c.FOV != nil && c.FOV.Mode == FOVOverride && (c.FOV.Value < MinFOV || c.FOV.Value > MaxFOV) {
		return fmt.Errorf("effect %q: fov override %.1f outside [%.0f, %.0f]", c.Name, c.FOV.Value, MinFOV, MaxFOV)
	}
	return nil
}

// hasKey reports whether the mapping node has path as nested keys.
func hasKey(node *yaml.Node, path ...string) bool {
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		node = next
	}
	return true
}
