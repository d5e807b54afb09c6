package gen

import (
	"checkito/rng"
	"checkito/shrink"
)

// recursionFloor is the size below which Recursive always uses base instead
// of unfolding rec once more. Combined with Dampen multiplying size by a
// factor below 1 at every unfold, this guarantees the recursion bottoms out:
// size strictly decreases on each level, so after finitely many levels it
// falls below the floor.
const recursionFloor = 0.05

// Recursive builds a generator for self-referential structures (trees,
// nested JSON, expressions) without requiring the caller to manage
// termination by hand. rec receives a generator standing for "one more
// recursive occurrence of T" and must build the next level from it; base is
// used directly once the size has damped below recursionFloor.
//
// Every recursive entry is damped by factor (expected < 1), matching the
// discipline the generator algebra requires of hand-written recursive
// generators.
func Recursive[T any](base Generator[T], rec func(Generator[T]) Generator[T], factor float64) Generator[T] {
	if factor <= 0 || factor >= 1 {
		factor = 0.5
	}

	var self Generator[T]
	// self's draw closure refers to the self variable, not its value at
	// definition time: by the time anything calls Generate, self has been
	// assigned the very generator being defined here.
	self = New(func(s rng.State) (shrink.Tree[T], error) {
		if s.Size <= recursionFloor {
			return base.draw(s)
		}
		return rec(self).Dampen(factor).draw(s)
	})
	return self
}
