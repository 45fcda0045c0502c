package blend

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrScriptCurve is returned when a curve script cannot be compiled.
var ErrScriptCurve = errors.New("blend: invalid curve script")

// ScriptCurve evaluates a tengo script as an easing curve. The script reads the global
// `alpha` and assigns the global `result`, which starts each run equal to `alpha`, for example:
//
//	math := import("math")
//	result = math.sin(alpha * math.pi / 2)
//
// A failing run logs a warning and falls back to Linear for that sample.
type ScriptCurve struct {
	mu       *sync.Mutex
	source   string
	compiled *tengo.Compiled
}

var _ Curve = &ScriptCurve{}

// NewScriptCurve compiles a curve script with the tengo math module available.
//
// Parameters:
//   - source: the tengo source
//
// Returns:
//   - *ScriptCurve: the compiled curve
//   - error: wraps ErrScriptCurve if the script does not compile
func NewScriptCurve(source string) (*ScriptCurve, error) {
	script := tengo.NewScript([]byte(source))
	for _, name := range []string{"alpha", "result"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScriptCurve, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptCurve, err)
	}
	return &ScriptCurve{
		mu:       &sync.Mutex{},
		source:   source,
		compiled: compiled,
	}, nil
}

func (s *ScriptCurve) Evaluate(alpha float32) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	// a script that leaves result unassigned behaves as Linear for that sample
	for _, name := range []string{"alpha", "result"} {
		if err := s.compiled.Set(name, float64(alpha)); err != nil {
			slog.Warn("curve script set failed", "variable", name, "error", err)
			return Linear(alpha)
		}
	}
	if err := s.compiled.Run(); err != nil {
		slog.Warn("curve script run failed", "error", err)
		return Linear(alpha)
	}
	if !s.compiled.IsDefined("result") {
		return Linear(alpha)
	}
	return float32(s.compiled.Get("result").Float())
}

// Source returns the script source.
func (s *ScriptCurve) Source() string {
	return s.source
}

// ResolveCurve returns the curve for kind, compiling script when kind is CurveCustom.
// An empty script or a compile failure logs a warning and yields EaseInOut.
//
// Parameters:
//   - kind: the curve kind
//   - script: tengo source used only for CurveCustom
//
// Returns:
//   - Curve: the resolved curve
func ResolveCurve(kind CurveKind, script string) Curve {
	if kind != CurveCustom {
		return Builtin(kind)
	}
	if script == "" {
		slog.Warn("custom curve without script, using ease_in_out")
		return Builtin(CurveEaseInOut)
	}
	curve, err := NewScriptCurve(script)
	if err != nil {
		slog.Warn("custom curve rejected, using ease_in_out", "error", err)
		return Builtin(CurveEaseInOut)
	}
	return curve
}
