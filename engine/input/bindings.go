package input

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-camera/engine/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Bindings maps camera actions to key names. Letters and digits bind by their character,
// arrow keys as "up", "down", "left" and "right".
type Bindings struct {
	PanForward []string `yaml:"pan_forward,flow"`
	PanBack    []string `yaml:"pan_back,flow"`
	PanLeft    []string `yaml:"pan_left,flow"`
	PanRight   []string `yaml:"pan_right,flow"`
	OrbitLeft  []string `yaml:"orbit_left,flow"`
	OrbitRight []string `yaml:"orbit_right,flow"`
	// DragButton is "left", "right" or "middle".
	DragButton string `yaml:"drag_button"`
}

// DefaultBindings returns WASD and arrow panning, Q/E orbiting and middle-button drag.
func DefaultBindings() Bindings {
	return Bindings{
		PanForward: []string{"w", "up"},
		PanBack:    []string{"s", "down"},
		PanLeft:    []string{"a", "left"},
		PanRight:   []string{"d", "right"},
		OrbitLeft:  []string{"q"},
		OrbitRight: []string{"e"},
		DragButton: "middle",
	}
}

type action int

const (
	actionPanForward action = iota
	actionPanBack
	actionPanLeft
	actionPanRight
	actionOrbitLeft
	actionOrbitRight
)

var namedKeys = map[string]glfw.Key{
	"up":    glfw.KeyUp,
	"down":  glfw.KeyDown,
	"left":  glfw.KeyLeft,
	"right": glfw.KeyRight,
	"space": glfw.KeySpace,
	"shift": glfw.KeyLeftShift,
}

var namedButtons = map[string]window.MouseButton{
	"left":   window.MouseButtonLeft,
	"right":  window.MouseButtonRight,
	"middle": window.MouseButtonMiddle,
}

// ParseKey resolves a key name to its glfw key code.
//
// Parameters:
//   - name: a letter, a digit or a named key, case-insensitive
//
// Returns:
//   - glfw.Key: the key code
//   - error: error if the name is unknown
func ParseKey(name string) (glfw.Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'a' && c <= 'z':
			return glfw.KeyA + glfw.Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Validate reports the first binding that does not resolve.
func (b Bindings) Validate() error {
	_, _, err := b.resolve()
	return err
}

// resolve turns the bindings into a key-code table and the drag button.
func (b Bindings) resolve() (map[uint32]action, window.MouseButton, error) {
	table := map[uint32]action{}
	groups := []struct {
		act  action
		keys []string
	}{
		{actionPanForward, b.PanForward},
		{actionPanBack, b.PanBack},
		{actionPanLeft, b.PanLeft},
		{actionPanRight, b.PanRight},
		{actionOrbitLeft, b.OrbitLeft},
		{actionOrbitRight, b.OrbitRight},
	}
	for _, g := range groups {
		for _, name := range g.keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, 0, err
			}
			table[uint32(k)] = g.act
		}
	}

	button := window.MouseButtonMiddle
	if b.DragButton != "" {
		mb, ok := namedButtons[strings.ToLower(b.DragButton)]
		if !ok {
			return nil, 0, fmt.Errorf("unknown drag button %q", b.DragButton)
		}
		button = mb
	}
	return table, button, nil
}
