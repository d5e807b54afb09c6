package shrink

import "golang.org/x/exp/constraints"

// IntegerTarget picks the value a range [lo, hi] shrinks its candidates
// towards, per the leaf generator rule in the generator algebra: towards lo
// if the range is strictly positive, towards 0 if the range straddles it,
// towards hi if the range is strictly negative.
//
// Generic over N rather than funneled through int64: a uint64 range whose hi
// exceeds math.MaxInt64 would wrap to a negative int64 and pick the wrong
// target, corrupting the "never shrinks below lo" invariant for exactly the
// widths constraints.Integer advertises support for.
func IntegerTarget[N constraints.Integer](lo, hi N) N {
	switch {
	case lo > 0:
		return lo
	case hi < 0:
		return hi
	default:
		return 0
	}
}

// IntegersTowards returns the binary-descent shrink sequence from value
// towards target: target itself first, then points increasingly close to
// value by repeatedly halving the remaining distance. Every element lies
// strictly between target and value (or equals target), so the sequence is
// well-founded — it strictly shrinks the distance to target each step and
// always terminates.
//
// Generic over N so the subtraction happens in the caller's own integer
// width. This is safe for every N constraints.Integer allows: IntegerTarget
// only ever picks target <= value for the unsigned widths (target is either
// lo or, when lo is itself 0, 0 — both <= any value drawn from [lo, hi]), so
// value-target never underflows there; for signed widths the difference of
// two in-range values always fits back in N, exactly as before.
func IntegersTowards[N constraints.Integer](value, target N) []N {
	if value == target {
		return nil
	}
	out := []N{target}
	diff := value - target
	for d := diff / 2; d != 0; d /= 2 {
		out = append(out, value-d)
	}
	return out
}

// FloatTarget mirrors IntegerTarget for a float range.
func FloatTarget(lo, hi float64) float64 {
	switch {
	case lo > 0:
		return lo
	case hi < 0:
		return hi
	default:
		return 0
	}
}

// FloatsTowards returns a capped interpolation schedule from value towards
// target, analogous to IntegersTowards but bounded to at most cap candidates
// since floating point distances rarely collapse to an exact zero step.
func FloatsTowards(value, target float64, cap int) []float64 {
	if value == target || cap <= 0 {
		return nil
	}
	out := make([]float64, 0, cap)
	out = append(out, target)
	diff := value - target
	d := diff / 2
	for i := 1; i < cap && d != 0; i++ {
		out = append(out, value-d)
		d /= 2
	}
	return out
}
