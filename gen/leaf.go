package gen

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"checkito/rng"
	"checkito/shrink"
)

// Int builds a generator of N uniformly distributed over [lo, hi], scaled by
// the current size: at size s it draws from [lo, ceil(lerp(lo, hi, s))],
// clamped to [lo, hi]. Every shrink candidate stays within [lo, hi].
//
// The width and offset arithmetic stays in N/uint64 rather than being
// funneled through int64: uint64(hi)-uint64(lo) recovers the true
// nonnegative width regardless of N's signedness or size, because Go
// integer conversions are defined as truncation of an infinite-precision
// two's complement value at every step — the same trick recovers the
// eventual value from lo+offset. Routing this through int64 instead would
// silently wrap for a uint64 range whose hi exceeds math.MaxInt64.
func Int[N constraints.Integer](lo, hi N) Generator[N] {
	if lo > hi {
		panic(fmt.Sprintf("gen: invalid integer range [%v, %v]", lo, hi))
	}
	target := shrink.IntegerTarget(lo, hi)
	width := uint64(hi) - uint64(lo)
	return New(func(s rng.State) (shrink.Tree[N], error) {
		scaled := width
		if width > 0 {
			scaledF := math.Ceil(rng.Lerp(0, float64(width), s.Size))
			if scaledF >= 0 && scaledF < float64(width) {
				scaled = uint64(scaledF)
			}
		}
		offset := s.UintN(scaled)
		v := N(uint64(lo) + offset)
		return intTree(v, target, lo, hi), nil
	})
}

func intTree[N constraints.Integer](v, target, lo, hi N) shrink.Tree[N] {
	return shrink.Node(v, func() []shrink.Tree[N] {
		var kids []shrink.Tree[N]
		for _, c := range shrink.IntegersTowards(v, target) {
			if c < lo || c > hi {
				continue
			}
			kids = append(kids, intTree(c, target, lo, hi))
		}
		return kids
	})
}

// Float builds a generator of N uniformly distributed over [lo, hi], scaled
// analogously to Int. Never produces NaN.
func Float[N constraints.Float](lo, hi N) Generator[N] {
	if lo > hi {
		panic(fmt.Sprintf("gen: invalid float range [%v, %v]", lo, hi))
	}
	target := shrink.FloatTarget(float64(lo), float64(hi))
	const shrinkCap = 16
	return New(func(s rng.State) (shrink.Tree[N], error) {
		span := float64(hi) - float64(lo)
		upper := float64(lo) + rng.Lerp(0, span, s.Size)
		if upper > float64(hi) {
			upper = float64(hi)
		}
		v := float64(lo) + s.Rand.Float64()*(upper-float64(lo))
		return floatTree[N](v, target, float64(lo), float64(hi), shrinkCap), nil
	})
}

func floatTree[N constraints.Float](v, target, lo, hi float64, cap int) shrink.Tree[N] {
	return shrink.Node(N(v), func() []shrink.Tree[N] {
		var kids []shrink.Tree[N]
		for _, c := range shrink.FloatsTowards(v, target, cap) {
			if c < lo || c > hi {
				continue
			}
			kids = append(kids, floatTree[N](c, target, lo, hi, cap))
		}
		return kids
	})
}

// Bool draws uniformly from {false, true}; true shrinks to false only.
func Bool() Generator[bool] {
	return New(func(s rng.State) (shrink.Tree[bool], error) {
		v := s.Rand.Intn(2) == 1
		return boolTree(v), nil
	})
}

func boolTree(v bool) shrink.Tree[bool] {
	if !v {
		return shrink.Leaf(false)
	}
	return shrink.Node(true, func() []shrink.Tree[bool] {
		return []shrink.Tree[bool]{shrink.Leaf(false)}
	})
}

// Rune draws uniformly from the code points in [lo, hi] and shrinks towards
// 'a' when 'a' lies in range, otherwise towards lo.
func Rune(lo, hi rune) Generator[rune] {
	if lo > hi {
		panic(fmt.Sprintf("gen: invalid rune range [%v, %v]", lo, hi))
	}
	target := int64(lo)
	if lo <= 'a' && 'a' <= hi {
		target = int64('a')
	}
	return New(func(s rng.State) (shrink.Tree[rune], error) {
		v := int64(lo) + s.Rand.Int63n(int64(hi)-int64(lo)+1)
		return runeTree(v, target, int64(lo), int64(hi)), nil
	})
}

func runeTree(v, target, lo, hi int64) shrink.Tree[rune] {
	return shrink.Node(rune(v), func() []shrink.Tree[rune] {
		var kids []shrink.Tree[rune]
		for _, c := range shrink.IntegersTowards(v, target) {
			if c < lo || c > hi {
				continue
			}
			kids = append(kids, runeTree(c, target, lo, hi))
		}
		return kids
	})
}

// Const always produces v, with an empty shrink tree — there is nothing
// smaller than a fixed value.
func Const[T any](v T) Generator[T] {
	return New(func(rng.State) (shrink.Tree[T], error) {
		return shrink.Leaf(v), nil
	})
}
