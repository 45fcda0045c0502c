package input

type StateBuilderOption func(*stateImpl)

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - b: the bindings to resolve
//
// Returns:
//   - StateBuilderOption: a function that applies the bindings
func WithBindings(b Bindings) StateBuilderOption {
	return func(s *stateImpl) {
		s.applyBindings(b)
	}
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) StateBuilderOption {
	return func(s *stateImpl) {
		s.width = width
		s.height = height
	}
}
