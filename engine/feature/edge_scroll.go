package feature

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/view"
	"github.com/go-gl/mathgl/mgl32"
)

// EdgeScroll pans the camera while the cursor rests near a viewport border.
type EdgeScroll struct {
	base
	config EdgeScrollConfig
}

var _ Feature = &EdgeScroll{}

// NewEdgeScroll creates an edge scroll feature.
func NewEdgeScroll(config EdgeScrollConfig) *EdgeScroll {
	return &EdgeScroll{base: newBase("edge_scroll", 0), config: config}
}

func (e *EdgeScroll) Update(input InputSource, target Target, current view.CameraView, deltaTime float32) {
	if !e.enabled || input == nil || target == nil {
		return
	}
	dir, ok := e.Direction(input)
	if !ok {
		return
	}
	forward, right := yawAxes(current)
	world := common.SafeNormal(forward.Mul(dir[1]).Add(right.Mul(dir[0])))
	target.AddPanOffset(world.Mul(e.config.ScrollSpeed * deltaTime))
}

// Direction returns the screen-space scroll direction for the current cursor position:
// X is -1 at the left edge and 1 at the right, Y is 1 at the top and -1 at the bottom.
//
// Parameters:
//   - input: the input source
//
// Returns:
//   - mgl32.Vec2: the scroll direction
//   - bool: false if the cursor is not at an edge
func (e *EdgeScroll) Direction(input InputSource) (mgl32.Vec2, bool) {
	width, height := input.ViewportSize()
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}, false
	}
	cursor, ok := input.CursorPosition()
	if !ok {
		return mgl32.Vec2{}, false
	}

	var dir mgl32.Vec2
	threshold := e.config.EdgeThreshold
	if e.config.Horizontal {
		if cursor[0] < threshold {
			dir[0] = -1
		} else if cursor[0] > float32(width)-threshold {
			dir[0] = 1
		}
	}
	if e.config.Vertical {
		if cursor[1] < threshold {
			dir[1] = 1
		} else if cursor[1] > float32(height)-threshold {
			dir[1] = -1
		}
	}
	return dir, dir[0] != 0 || dir[1] != 0
}

// Config returns the feature tuning.
func (e *EdgeScroll) Config() EdgeScrollConfig {
	return e.config
}
