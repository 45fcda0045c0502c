package blend

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/chewxy/math32"
)

// CurveKind selects the easing applied to blend progress.
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
	// CurveCustom uses a caller-supplied Curve, such as a ScriptCurve.
	CurveCustom
)

var curveKindNames = map[CurveKind]string{
	CurveLinear:    "linear",
	CurveEaseIn:    "ease_in",
	CurveEaseOut:   "ease_out",
	CurveEaseInOut: "ease_in_out",
	CurveCustom:    "custom",
}

func (k CurveKind) String() string {
	if name, ok := curveKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

func (k CurveKind) MarshalText() ([]byte, error) {
	name, ok := curveKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown curve kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *CurveKind) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, name := range curveKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown curve kind %q", s)
}

// Curve maps blend progress in [0, 1] to a blend weight.
type Curve interface {
	// Evaluate returns the eased value for alpha.
	//
	// Parameters:
	//   - alpha: blend progress, expected in [0, 1]
	//
	// Returns:
	//   - float32: the eased value
	Evaluate(alpha float32) float32
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(alpha float32) float32

func (f CurveFunc) Evaluate(alpha float32) float32 {
	return f(alpha)
}

// curveExponent is the exponent used by every built-in ease.
const curveExponent = 2

// Builtin returns the built-in curve for kind. CurveCustom and unknown kinds yield EaseInOut.
//
// Parameters:
//   - kind: the curve kind
//
// Returns:
//   - Curve: the curve implementation
func Builtin(kind CurveKind) Curve {
	switch kind {
	case CurveLinear:
		return CurveFunc(Linear)
	case CurveEaseIn:
		return CurveFunc(EaseIn)
	case CurveEaseOut:
		return CurveFunc(EaseOut)
	default:
		return CurveFunc(EaseInOut)
	}
}

// Linear returns alpha clamped to [0, 1].
func Linear(alpha float32) float32 {
	return common.Clamp01(alpha)
}

// EaseIn accelerates from zero: alpha^2.
func EaseIn(alpha float32) float32 {
	return math32.Pow(common.Clamp01(alpha), curveExponent)
}

// EaseOut decelerates into one: 1 - (1-alpha)^2.
func EaseOut(alpha float32) float32 {
	return 1 - math32.Pow(1-common.Clamp01(alpha), curveExponent)
}

// EaseInOut eases both ends with exponent 2 and is symmetric around alpha 0.5.
func EaseInOut(alpha float32) float32 {
	return InterpEaseInOut(0, 1, common.Clamp01(alpha), curveExponent)
}

// InterpEaseInOut interpolates from a to b, easing in for the first half of alpha and out for the second.
//
// Parameters:
//   - a: value at alpha 0
//   - b: value at alpha 1
//   - alpha: interpolation progress in [0, 1]
//   - exp: the easing exponent
//
// Returns:
//   - float32: the eased value
func InterpEaseInOut(a, b, alpha, exp float32) float32 {
	var eased float32
	if alpha < 0.5 {
		eased = 0.5 * math32.Pow(2*alpha, exp)
	} else {
		eased = 1 - 0.5*math32.Pow(2*(1-alpha), exp)
	}
	return common.Lerp(a, b, eased)
}
