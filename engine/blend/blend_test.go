package blend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCurves(t *testing.T) {
	tests := []struct {
		kind  CurveKind
		alpha float32
		want  float32
	}{
		{CurveLinear, 0.25, 0.25},
		{CurveLinear, 1.5, 1},
		{CurveEaseIn, 0.5, 0.25},
		{CurveEaseOut, 0.5, 0.75},
		{CurveEaseInOut, 0.25, 0.125},
		{CurveEaseInOut, 0.5, 0.5},
		{CurveEaseInOut, 0.75, 0.875},
		{CurveEaseInOut, 1, 1},
		{CurveCustom, 0.25, 0.125},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, Builtin(tt.kind).Evaluate(tt.alpha), 1e-5)
		})
	}
}

func TestCurveKindText(t *testing.T) {
	text, err := CurveEaseOut.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ease_out", string(text))

	var k CurveKind
	require.NoError(t, k.UnmarshalText([]byte(" Ease_In_Out ")))
	assert.Equal(t, CurveEaseInOut, k)
	assert.Error(t, k.UnmarshalText([]byte("bouncy")))
}

func TestActivationBlendRamp(t *testing.T) {
	b := NewActivationBlend(WithBlendTime(1), WithCurveKind(CurveLinear))
	assert.Equal(t, PhaseIdle, b.Phase())
	assert.Equal(t, float32(0), b.Weight())

	b.Update(0.25)
	assert.Equal(t, PhaseRamping, b.Phase())
	assert.InDelta(t, 0.25, b.Weight(), 1e-5)

	b.Update(2)
	assert.Equal(t, PhaseSettled, b.Phase())
	assert.Equal(t, float32(1), b.Weight())
	assert.Equal(t, float32(1), b.Alpha())

	b.Reset()
	assert.Equal(t, PhaseIdle, b.Phase())
}

func TestActivationBlendRetriggerKeepsWeight(t *testing.T) {
	b := NewActivationBlend(WithBlendTime(1), WithCurveKind(CurveLinear))
	for range 3 {
		b.Update(0.1)
	}
	require.InDelta(t, 0.3, b.Weight(), 1e-5)

	b.SetWeight(b.Weight())
	assert.InDelta(t, 0.3, b.Weight(), 1e-5)
	assert.Equal(t, float32(0), b.Alpha())

	b.Update(0.5)
	assert.InDelta(t, 0.65, b.Weight(), 1e-5)
}

func TestActivationBlendInstantAndClamped(t *testing.T) {
	b := NewActivationBlend(WithBlendTime(-3))
	assert.Equal(t, float32(0), b.BlendTime())
	b.Update(0)
	assert.Equal(t, float32(1), b.Weight())

	b.SetBlendTime(2)
	b.SetWeight(7)
	assert.Equal(t, float32(1), b.Weight())
	b.SetWeight(-1)
	assert.Equal(t, float32(0), b.Weight())
}

func TestActivationBlendCustomCurve(t *testing.T) {
	b := NewActivationBlend(WithBlendTime(1), WithCurve(CurveFunc(func(a float32) float32 { return a * a * a })))
	assert.Equal(t, CurveCustom, b.CurveKind())
	b.Update(0.5)
	assert.InDelta(t, 0.125, b.Weight(), 1e-5)

	b.SetCurveKind(CurveLinear)
	assert.InDelta(t, 0.5, b.Weight(), 1e-5)
	b.SetCurveKind(CurveCustom)
	assert.InDelta(t, 0.125, b.Weight(), 1e-5)

	b.SetCurve(nil)
	assert.Equal(t, CurveEaseInOut, b.CurveKind())
}

func TestScriptCurve(t *testing.T) {
	curve, err := NewScriptCurve(`result = alpha * alpha`)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, curve.Evaluate(0.5), 1e-5)
	assert.InDelta(t, 0.81, curve.Evaluate(0.9), 1e-5)

	sine, err := NewScriptCurve("math := import(\"math\")\nresult = math.sin(alpha * math.pi / 2)")
	require.NoError(t, err)
	assert.InDelta(t, 1, sine.Evaluate(1), 1e-5)
}

func TestScriptCurveResultStartsAtAlpha(t *testing.T) {
	curve, err := NewScriptCurve("if alpha > 0.5 { result = 1.0 }")
	require.NoError(t, err)
	assert.InDelta(t, 1, curve.Evaluate(0.8), 1e-5)
	assert.InDelta(t, 0.3, curve.Evaluate(0.3), 1e-5)
}

func TestScriptCurveErrors(t *testing.T) {
	_, err := NewScriptCurve(`result = (`)
	assert.ErrorIs(t, err, ErrScriptCurve)

	failing, err := NewScriptCurve("zero := 0\nresult = 1 / zero")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, failing.Evaluate(0.4), 1e-5)

	assert.InDelta(t, 0.125, ResolveCurve(CurveCustom, "").Evaluate(0.25), 1e-5)
	assert.InDelta(t, 0.125, ResolveCurve(CurveCustom, "result = (").Evaluate(0.25), 1e-5)
	assert.InDelta(t, 0.25, ResolveCurve(CurveLinear, "").Evaluate(0.25), 1e-5)
}
