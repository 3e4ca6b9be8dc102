package tensor

import (
	"errors"
	"fmt"
)

// Error classes raised by tensors and kernels.
//
// Both are programming errors: kernels panic with an error wrapping one of
// these sentinels and never return them. Use Catch to turn such a panic into
// an ordinary error at an API boundary.
var (
	// ErrPrecondition reports a violated kernel precondition: shape mismatch,
	// out-of-range axis, undersized buffer or reading an unwritten tensor.
	ErrPrecondition = errors.New("precondition violated")

	// ErrUnsupported reports a deliberately unimplemented code path.
	ErrUnsupported = errors.New("unsupported operation")
)

// Preconditionf panics with an error wrapping ErrPrecondition.
func Preconditionf(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...)))
}

// Unsupported panics with an error wrapping ErrUnsupported.
func Unsupported(op string) {
	panic(fmt.Errorf("%w: %s", ErrUnsupported, op))
}

// Catch runs fn and converts a panic carrying ErrPrecondition or
// ErrUnsupported into a returned error. Any other panic is re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok || (!errors.Is(e, ErrPrecondition) && !errors.Is(e, ErrUnsupported)) {
			panic(r)
		}
		err = e
	}()

	fn()
	return nil
}
