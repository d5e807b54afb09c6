package gen

import (
	"sort"

	"golang.org/x/exp/constraints"

	"checkito/rng"
	"checkito/shrink"
)

// ContainsDuplicates reports whether s has any repeated element, for
// properties that want to classify or reject generated collections by
// uniqueness without writing the scan themselves.
func ContainsDuplicates[T comparable](s []T) bool {
	seen := make(map[T]struct{}, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// Sorted builds a generator of slices drawn from SliceOf(g, lr) and sorted
// ascending by less. Shrink children are the underlying unsorted candidates,
// re-sorted, so every candidate this generator produces is sorted too.
func Sorted[T any](g Generator[T], lr LenRange, less func(a, b T) bool) Generator[[]T] {
	return Map(SliceOf(g, lr), func(s []T) []T {
		out := append([]T{}, s...)
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out
	})
}

// Distinct builds a generator of slices with no duplicate elements, drawing
// from g and retrying individual elements up to retries times whenever a
// fresh draw collides with one already accepted into the slice. Shrinking
// behaves like SliceOf but skips candidates that would reintroduce a
// duplicate.
func Distinct[T comparable](g Generator[T], lr LenRange, retries int) Generator[[]T] {
	if lr.Lo < 0 || lr.Lo > lr.Hi {
		panic("gen: invalid length range for Distinct")
	}
	return New(func(s rng.State) (shrink.Tree[[]T], error) {
		span := float64(lr.Hi - lr.Lo)
		n := lr.Lo
		if span > 0 {
			n = lr.Lo + int(rng.Lerp(0, span, s.Size))
		}
		seen := make(map[T]struct{}, n)
		elems := make([]shrink.Tree[T], 0, n)
		for len(elems) < n {
			placed := false
			for attempt := 0; attempt < retries; attempt++ {
				t, err := g.draw(s.Sub())
				if err != nil {
					return zero[[]T](), err
				}
				if _, dup := seen[t.Value()]; !dup {
					seen[t.Value()] = struct{}{}
					elems = append(elems, t)
					placed = true
					break
				}
			}
			if !placed {
				return zero[[]T](), &ExhaustedError{Retries: retries}
			}
		}
		return distinctTree(elems, lr.Lo), nil
	})
}

func distinctTree[T comparable](elems []shrink.Tree[T], lo int) shrink.Tree[[]T] {
	return shrink.Node(sliceValue(elems), func() []shrink.Tree[[]T] {
		candidates := sliceTree(elems, lo).Children()
		var out []shrink.Tree[[]T]
		for _, c := range candidates {
			if !ContainsDuplicates(c.Value()) {
				out = append(out, rewrapDistinct(c, lo))
			}
		}
		return out
	})
}

func rewrapDistinct[T comparable](t shrink.Tree[[]T], lo int) shrink.Tree[[]T] {
	return shrink.Node(t.Value(), func() []shrink.Tree[[]T] {
		var out []shrink.Tree[[]T]
		for _, c := range t.Children() {
			if !ContainsDuplicates(c.Value()) {
				out = append(out, rewrapDistinct(c, lo))
			}
		}
		return out
	})
}

// OrderedSlice is a convenience over Sorted for types with a natural order.
func OrderedSlice[T constraints.Ordered](g Generator[T], lr LenRange) Generator[[]T] {
	return Sorted(g, lr, func(a, b T) bool { return a < b })
}
