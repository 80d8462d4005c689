package editor

// StackBuilderOption is a functional option for configuring a Stack.
type StackBuilderOption func(s *Stack)

// WithLimit caps the number of recorded commands; the oldest are forgotten first.
// Zero or less keeps an unbounded history.
//
// Parameters:
//   - n: the maximum history length
//
// Returns:
//   - StackBuilderOption: option function to apply
func WithLimit(n int) StackBuilderOption {
	return func(s *Stack) {
		s.limit = n
	}
}
