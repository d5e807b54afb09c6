// Package gen implements the generator algebra: leaf generators and the
// combinators that compose them, each producing a value together with its
// lazy shrink tree.
package gen

import (
	"fmt"

	"checkito/rng"
	"checkito/shrink"
)

// Generator produces Samples of T: given a State, it draws a value and
// builds the lazy ShrinkTree describing how to make that value smaller. All
// generators are idempotent under a fixed State — the same State always
// produces the same value and the same shrink tree.
type Generator[T any] struct {
	draw func(rng.State) (shrink.Tree[T], error)
}

// New wraps a draw function as a Generator. Exported so that callers
// defining their own leaf generators (outside of this package) don't need
// access to unexported fields.
func New[T any](draw func(rng.State) (shrink.Tree[T], error)) Generator[T] {
	return Generator[T]{draw: draw}
}

// Generate draws a Sample — value plus shrink tree — from s.
func (g Generator[T]) Generate(s rng.State) (shrink.Tree[T], error) {
	return g.draw(s)
}

// ExhaustedError is returned by Generate when a Filter combinator could not
// satisfy its predicate within its retry budget. It surfaces as a dedicated
// Exhausted outcome; there is no failing sample, so no shrinking is
// attempted.
type ExhaustedError struct {
	Retries int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gen: filter exhausted after %d attempts", e.Retries)
}

func zero[T any]() shrink.Tree[T] {
	return shrink.Tree[T]{}
}
