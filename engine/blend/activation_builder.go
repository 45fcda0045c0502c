package blend

type ActivationBlendBuilderOption func(*activationBlendImpl)

// WithBlendTime sets the ramp duration in seconds. Negative values are clamped to 0.
//
// Parameters:
//   - seconds: the ramp duration
//
// Returns:
//   - ActivationBlendBuilderOption: a function that sets the ramp duration
func WithBlendTime(seconds float32) ActivationBlendBuilderOption {
	return func(b *activationBlendImpl) {
		b.blendTime = max(seconds, 0)
	}
}

// WithCurveKind selects a built-in curve.
//
// Parameters:
//   - kind: the curve kind
//
// Returns:
//   - ActivationBlendBuilderOption: a function that sets the curve kind
func WithCurveKind(kind CurveKind) ActivationBlendBuilderOption {
	return func(b *activationBlendImpl) {
		b.setCurveKind(kind)
	}
}

// WithCurve installs a custom curve.
//
// Parameters:
//   - curve: the custom curve
//
// Returns:
//   - ActivationBlendBuilderOption: a function that sets a custom curve
func WithCurve(curve Curve) ActivationBlendBuilderOption {
	return func(b *activationBlendImpl) {
		b.setCurve(curve)
	}
}
