package checkito

import "fmt"

// Property is the shape every checked property takes: a function from a
// generated value to an error, with nil meaning the property held. It is
// the same convention Go uses everywhere else in the standard library, so
// that ordinary assertion helpers compose into a property without an
// adapter layer.
type Property[T any] func(T) error

// FromBool adapts a boolean predicate into a Property, for the common case
// where there is nothing more to say about a failure than "false".
func FromBool[T any](f func(T) bool) Property[T] {
	return func(v T) error {
		if f(v) {
			return nil
		}
		return fmt.Errorf("property returned false for %v", v)
	}
}

// prove runs prop against v and classifies the result. A panic inside prop
// is recovered and reported as KindError rather than unwinding the check
// driver's stack; this is the one place in the package that calls recover,
// so that a misbehaving property can never take down a long-running check
// loop or a shrink search.
func prove[T any](prop Property[T], v T) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome{Kind: KindError, Reason: fmt.Sprintf("panic: %v", p), Panic: p}
		}
	}()
	if err := prop(v); err != nil {
		return Outcome{Kind: KindDisprove, Reason: err.Error()}
	}
	return Outcome{Kind: KindPass}
}

// Prove is the public entry point for running a single property call
// outside of a check loop, with the same panic-to-KindError guard the
// driver uses internally. Useful for ad hoc replay of one sample.
func Prove[T any](prop Property[T], v T) Outcome {
	return prove(prop, v)
}
