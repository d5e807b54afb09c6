package gen

import (
	"checkito/rng"
	"checkito/shrink"
)

// Map derives a generator of U from g by applying f to every value g
// produces, including every node of its shrink tree. f must be deterministic
// and total over g's range.
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return New(func(s rng.State) (shrink.Tree[U], error) {
		t, err := g.draw(s)
		if err != nil {
			return zero[U](), err
		}
		return shrink.MapTree(t, f), nil
	})
}

// FlatMap draws v from g, then draws w from f(v). The shrink tree prefers
// shrinking the structure (re-deriving v, then re-running f on the smaller
// v with the same inner RNG lineage) before shrinking the contents (shrinking
// w with v held fixed) — see the "structure before contents" rule.
//
// The inner draw reuses the RNG subsequence captured when v was first drawn,
// so that shrinking the outer value preserves whatever correlation the
// property depends on between v and w.
func FlatMap[T, U any](g Generator[T], f func(T) Generator[U]) Generator[U] {
	return New(func(s rng.State) (shrink.Tree[U], error) {
		tTree, err := g.draw(s)
		if err != nil {
			return zero[U](), err
		}
		innerSeed := rng.Seed(s.Rand.Int63())

		var build func(shrink.Tree[T]) (shrink.Tree[U], error)
		build = func(vTree shrink.Tree[T]) (shrink.Tree[U], error) {
			v := vTree.Value()
			innerState := rng.New(innerSeed, s.Size)
			wTree, err := f(v).draw(innerState)
			if err != nil {
				return zero[U](), err
			}

			familyI := func() []shrink.Tree[U] {
				var out []shrink.Tree[U]
				for _, vChild := range vTree.Children() {
					childTree, err := build(vChild)
					if err == nil {
						out = append(out, childTree)
					}
				}
				return out
			}
			familyII := func() []shrink.Tree[U] {
				return wTree.Children()
			}
			return shrink.Node(wTree.Value(), shrink.Prepend(familyI, familyII)), nil
		}

		return build(tTree)
	})
}

// Filter draws from g until p holds, retrying at most retries times. If no
// draw satisfies p within the budget, Generate returns an *ExhaustedError
// and the iteration is reported as Exhausted rather than shrunk — there is
// no failing sample to shrink.
//
// Once a satisfying value is found, its shrink children are filtered by p:
// a candidate that fails p is skipped, but its own children are promoted so
// reachable valid reductions further down the tree are not lost.
func (g Generator[T]) Filter(p func(T) bool, retries int) Generator[T] {
	return New(func(s rng.State) (shrink.Tree[T], error) {
		for i := 0; i < retries; i++ {
			sub := s.Sub()
			t, err := g.draw(sub)
			if err != nil {
				return zero[T](), err
			}
			if p(t.Value()) {
				return shrink.Node(t.Value(), func() []shrink.Tree[T] {
					return shrink.FilterChildren(t, p)
				}), nil
			}
		}
		return zero[T](), &ExhaustedError{Retries: retries}
	})
}

// Dampen scales the size passed into g by factor (expected to be < 1),
// guaranteeing that recursive generators built with it shrink their size
// towards zero at every recursive entry and so terminate.
func (g Generator[T]) Dampen(factor float64) Generator[T] {
	return New(func(s rng.State) (shrink.Tree[T], error) {
		return g.draw(s.WithSize(s.Size * factor))
	})
}

// Size remaps the size passed into g via f, for user-controlled size
// scaling independent of the damping recursive generators need.
func (g Generator[T]) Size(f func(float64) float64) Generator[T] {
	return New(func(s rng.State) (shrink.Tree[T], error) {
		return g.draw(s.WithSize(f(s.Size)))
	})
}

// Boxed erases g's concrete type behind a uniform any-valued handle, for
// heterogeneous storage. Prefer the generic Generator[T] form on any path
// where the concrete type is known; this exists for the cases — like Any's
// caller storing generators of different item types — where it is not.
func Boxed[T any](g Generator[T]) Generator[any] {
	return Map(g, func(v T) any { return v })
}

// Weighted pairs a generator with the relative probability Any should pick
// it with. Branches are ordered from simplest to richest: when shrinking,
// Any prefers switching to an earlier (simpler) branch before shrinking
// within the chosen branch.
type Weighted[T any] struct {
	Weight float64
	Gen    Generator[T]
}

// Any picks one of branches with probability proportional to its weight.
// Shrinking first tries each lower-indexed branch as a whole replacement,
// then descends into the chosen branch's own shrink children.
//
// A fixed seed is captured for every branch up to and including the chosen
// one while still inside this draw call, and the lazy children thunk
// re-derives each branch's state from its own fixed seed instead of
// advancing the shared *rand.Rand — the same rule FlatMap's inner draw
// follows — so that calling a node's Children() twice always replays the
// same lower-branch values instead of drawing fresh ones each time.
func Any[T any](branches ...Weighted[T]) Generator[T] {
	return New(func(s rng.State) (shrink.Tree[T], error) {
		total := 0.0
		for _, b := range branches {
			total += b.Weight
		}
		r := s.Rand.Float64() * total
		idx := len(branches) - 1
		acc := 0.0
		for i, b := range branches {
			acc += b.Weight
			if r < acc {
				idx = i
				break
			}
		}

		seeds := make([]rng.Seed, idx+1)
		for i := 0; i <= idx; i++ {
			seeds[i] = rng.Seed(s.Rand.Int63())
		}

		t, err := branches[idx].Gen.draw(rng.New(seeds[idx], s.Size))
		if err != nil {
			return zero[T](), err
		}
		return anyTree(t, branches, idx, seeds, s.Size), nil
	})
}

func anyTree[T any](chosen shrink.Tree[T], branches []Weighted[T], idx int, seeds []rng.Seed, size float64) shrink.Tree[T] {
	return shrink.Node(chosen.Value(), func() []shrink.Tree[T] {
		var out []shrink.Tree[T]
		for j := 0; j < idx; j++ {
			t, err := branches[j].Gen.draw(rng.New(seeds[j], size))
			if err == nil {
				out = append(out, anyTree(t, branches, j, seeds[:j+1], size))
			}
		}
		out = append(out, chosen.Children()...)
		return out
	})
}

// Pair is the result of Tuple2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple2 draws each component independently. Shrink children replace one
// component at a time with one of its own shrink children, left to right.
func Tuple2[A, B any](ga Generator[A], gb Generator[B]) Generator[Pair[A, B]] {
	return New(func(s rng.State) (shrink.Tree[Pair[A, B]], error) {
		ta, err := ga.draw(s.Sub())
		if err != nil {
			return zero[Pair[A, B]](), err
		}
		tb, err := gb.draw(s.Sub())
		if err != nil {
			return zero[Pair[A, B]](), err
		}
		return pairTree(ta, tb), nil
	})
}

func pairTree[A, B any](ta shrink.Tree[A], tb shrink.Tree[B]) shrink.Tree[Pair[A, B]] {
	return shrink.Node(Pair[A, B]{ta.Value(), tb.Value()}, func() []shrink.Tree[Pair[A, B]] {
		var out []shrink.Tree[Pair[A, B]]
		for _, ca := range ta.Children() {
			out = append(out, pairTree(ca, tb))
		}
		for _, cb := range tb.Children() {
			out = append(out, pairTree(ta, cb))
		}
		return out
	})
}

// Triple is the result of Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple3 is Tuple2 generalized to three independent components.
func Tuple3[A, B, C any](ga Generator[A], gb Generator[B], gc Generator[C]) Generator[Triple[A, B, C]] {
	return New(func(s rng.State) (shrink.Tree[Triple[A, B, C]], error) {
		ta, err := ga.draw(s.Sub())
		if err != nil {
			return zero[Triple[A, B, C]](), err
		}
		tb, err := gb.draw(s.Sub())
		if err != nil {
			return zero[Triple[A, B, C]](), err
		}
		tc, err := gc.draw(s.Sub())
		if err != nil {
			return zero[Triple[A, B, C]](), err
		}
		return tripleTree(ta, tb, tc), nil
	})
}

func tripleTree[A, B, C any](ta shrink.Tree[A], tb shrink.Tree[B], tc shrink.Tree[C]) shrink.Tree[Triple[A, B, C]] {
	return shrink.Node(Triple[A, B, C]{ta.Value(), tb.Value(), tc.Value()}, func() []shrink.Tree[Triple[A, B, C]] {
		var out []shrink.Tree[Triple[A, B, C]]
		for _, ca := range ta.Children() {
			out = append(out, tripleTree(ca, tb, tc))
		}
		for _, cb := range tb.Children() {
			out = append(out, tripleTree(ta, cb, tc))
		}
		for _, cc := range tc.Children() {
			out = append(out, tripleTree(ta, tb, cc))
		}
		return out
	})
}
