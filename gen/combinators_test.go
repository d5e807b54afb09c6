package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
	"checkito/shrink"
)

func TestMapAppliesToValueAndChildren(t *testing.T) {
	g := Map(Int(0, 10), func(v int) int { return v * 2 })
	tree, err := g.Generate(rng.New(1, 1.0))
	assert.NoError(t, err)
	assert.Equal(t, 0, tree.Value()%2)
	for _, c := range tree.Children() {
		assert.Equal(t, 0, c.Value()%2)
	}
}

func TestFlatMapDerivesDependentGenerator(t *testing.T) {
	g := FlatMap(Int(1, 5), func(n int) Generator[[]int] {
		return SliceOf(Const(n), LenRange{Lo: n, Hi: n})
	})
	tree, err := g.Generate(rng.New(7, 1.0))
	assert.NoError(t, err)
	n := tree.Value()[0]
	assert.Len(t, tree.Value(), n)
}

func TestFilterOnlyProducesValuesSatisfyingPredicate(t *testing.T) {
	g := Int(0, 100).Filter(func(v int) bool { return v%2 == 0 }, 100)
	for i := 0; i < 50; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(3, i), 1.0))
		assert.NoError(t, err)
		assert.Equal(t, 0, tree.Value()%2)
		for _, c := range tree.Children() {
			assert.Equal(t, 0, c.Value()%2)
		}
	}
}

func TestFilterExhaustsWhenPredicateUnsatisfiable(t *testing.T) {
	g := Int(0, 1).Filter(func(v int) bool { return v > 1 }, 5)
	_, err := g.Generate(rng.New(1, 1.0))
	assert.Error(t, err)
	var exhausted *ExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, exhausted.Retries)
}

func TestDampenShrinksSizePassedDownstream(t *testing.T) {
	var observed float64
	inner := New(func(s rng.State) (shrink.Tree[int], error) {
		observed = s.Size
		return shrink.Leaf(0), nil
	})
	_, _ = inner.Dampen(0.5).Generate(rng.New(1, 1.0))
	assert.Equal(t, 0.5, observed)
}

func TestAnyRespectsWeighting(t *testing.T) {
	g := Any(Weighted[string]{Weight: 1, Gen: Const("a")}, Weighted[string]{Weight: 0, Gen: Const("b")})
	for i := 0; i < 20; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(4, i), 1.0))
		assert.NoError(t, err)
		assert.Equal(t, "a", tree.Value())
	}
}

func TestAnyChildrenAreDeterministicAcrossRepeatedCalls(t *testing.T) {
	g := Any(
		Weighted[int]{Weight: 1, Gen: Int(1, 100)},
		Weighted[int]{Weight: 1, Gen: Int(1, 100)},
		Weighted[int]{Weight: 1, Gen: Int(1, 100)},
	)

	exercisedLowerBranch := false
	for i := 0; i < 30; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(5, i), 1.0))
		assert.NoError(t, err)

		first := tree.Children()
		second := tree.Children()
		assert.Equal(t, len(first), len(second))
		for j := range first {
			exercisedLowerBranch = true
			assert.Equal(t, first[j].Value(), second[j].Value(),
				"Children() must replay the same lower-branch values on every call")
			assert.Equal(t, valuesOf(first[j].Children()), valuesOf(second[j].Children()))
		}
	}
	assert.True(t, exercisedLowerBranch, "expected at least one draw to pick a branch with a lower-indexed sibling")
}

func valuesOf(trees []shrink.Tree[int]) []int {
	out := make([]int, len(trees))
	for i, t := range trees {
		out[i] = t.Value()
	}
	return out
}

func TestTuple2ShrinksEachComponentIndependently(t *testing.T) {
	g := Tuple2(Int(0, 10), Int(0, 10))
	tree, err := g.Generate(rng.New(2, 1.0))
	assert.NoError(t, err)
	for _, c := range tree.Children() {
		assert.True(t, c.Value().First == tree.Value().First || c.Value().Second == tree.Value().Second)
	}
}
