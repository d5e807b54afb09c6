package gen

import (
	"fmt"
	"math"

	"checkito/rng"
	"checkito/shrink"
)

// LenRange bounds the length of a generated collection.
type LenRange struct {
	Lo, Hi int
}

// SliceOf draws n items from g, with n in lr scaled by the current size, and
// returns a generator of the resulting slice.
//
// Shrink children are tried in this order: (a) halved lengths down to
// lr.Lo, (b) single-element removals scanning from the right then the left,
// (c) for each remaining element, one of its own shrink children in its
// place. Length shrinking is explored before element-content shrinking.
func SliceOf[T any](g Generator[T], lr LenRange) Generator[[]T] {
	if lr.Lo < 0 || lr.Lo > lr.Hi {
		panic(fmt.Sprintf("gen: invalid length range [%v, %v]", lr.Lo, lr.Hi))
	}
	return New(func(s rng.State) (shrink.Tree[[]T], error) {
		span := float64(lr.Hi - lr.Lo)
		n := lr.Lo + int(math.Round(rng.Lerp(0, span, s.Size)))
		if n > lr.Hi {
			n = lr.Hi
		}
		if n < lr.Lo {
			n = lr.Lo
		}
		elems := make([]shrink.Tree[T], n)
		for i := 0; i < n; i++ {
			t, err := g.draw(s.Sub())
			if err != nil {
				return zero[[]T](), err
			}
			elems[i] = t
		}
		return sliceTree(elems, lr.Lo), nil
	})
}

func sliceValue[T any](elems []shrink.Tree[T]) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = e.Value()
	}
	return out
}

func sliceTree[T any](elems []shrink.Tree[T], lo int) shrink.Tree[[]T] {
	return shrink.Node(sliceValue(elems), func() []shrink.Tree[[]T] {
		n := len(elems)
		var out []shrink.Tree[[]T]

		// (a) halved lengths down to lo
		for length := n / 2; length >= lo && length < n; length /= 2 {
			out = append(out, sliceTree(append([]shrink.Tree[T]{}, elems[:length]...), lo))
			if length == 0 {
				break
			}
		}

		// (b) one-element removals, scanning right to left
		if n-1 >= lo {
			for i := n - 1; i >= 0; i-- {
				reduced := make([]shrink.Tree[T], 0, n-1)
				reduced = append(reduced, elems[:i]...)
				reduced = append(reduced, elems[i+1:]...)
				out = append(out, sliceTree(reduced, lo))
			}
		}

		// (c) per-element content shrinking
		for i, e := range elems {
			for _, c := range e.Children() {
				replaced := append([]shrink.Tree[T]{}, elems...)
				replaced[i] = c
				out = append(out, sliceTree(replaced, lo))
			}
		}

		return out
	})
}
