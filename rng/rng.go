// Package rng provides the deterministic pseudo-random source and the
// per-sample size dial that every generator in checkito draws against.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// Seed identifies the root of a run's randomness. The same Seed, with the
// same generator and iteration index, always reproduces the same draws.
type Seed int64

// NewSeed samples a Seed from OS entropy. Used when the caller does not pin
// one explicitly via configuration. If the OS source cannot be read, it
// falls back to a seed derived from the current time.
func NewSeed() Seed {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return Seed(rand.New(rand.NewSource(time.Now().UnixNano())).Int63())
	}
	return Seed(binary.LittleEndian.Uint64(b[:]))
}

// State is the bundle passed to every generator call: how large a value
// should be (Size) and the RNG to draw it with. Generators are pure
// functions of State modulo RNG advance.
type State struct {
	Size float64
	Rand *rand.Rand
}

// New creates a State at the given size, seeded deterministically from seed.
func New(seed Seed, size float64) State {
	return State{Size: clamp01(size), Rand: rand.New(rand.NewSource(int64(seed)))}
}

// Derive produces the seed for iteration i of a run rooted at root.
//
// The derivation must be a pure function of (root, i) so that re-running a
// check with the same root seed replays the exact same per-iteration seeds,
// and so that a shrink search re-entering iteration i gets back the RNG
// lineage the original sample was drawn with.
func Derive(root Seed, i int) Seed {
	// splitmix64-style mixing: cheap, deterministic, and avoids the
	// correlated streams that naively offsetting math/rand seeds by i would
	// produce for nearby iterations.
	h := uint64(root) + uint64(i)*0x9E3779B97F4A7C15
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return Seed(h)
}

// Sub derives a child State from a parent State's RNG. Combinators that need
// to draw more than one independent value from a single State (tuples,
// collections, filter retries, regex sub-patterns) call Sub to get an RNG that advances
// independently of the parent's own subsequent draws.
func (s State) Sub() State {
	return State{Size: s.Size, Rand: rand.New(rand.NewSource(s.Rand.Int63()))}
}

// WithSize returns a copy of s with a new size, used by the size/dampen
// combinators to remap or shrink the size passed to an inner generator.
func (s State) WithSize(size float64) State {
	return State{Size: clamp01(size), Rand: s.Rand}
}

// UintN draws a uniform value in [0, n] inclusive from s's RNG. It exists
// alongside math/rand's own Int63n because Int63n's bound is an int64 and
// cannot represent a width above math.MaxInt64 — the case a uint64 leaf
// range needs when its span exceeds the signed 63-bit range Int63n covers.
func (s State) UintN(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	if n == math.MaxUint64 {
		return s.Rand.Uint64()
	}
	return s.Rand.Uint64() % (n + 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between lo and hi at fraction t ∈ [0,1].
func Lerp(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
