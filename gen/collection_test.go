package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkito/rng"
	"checkito/shrink"
)

func TestSliceOfRespectsLengthRange(t *testing.T) {
	g := SliceOf(Int(0, 9), LenRange{Lo: 2, Hi: 5})
	for i := 0; i < 30; i++ {
		tree, err := g.Generate(rng.New(rng.Derive(1, i), 1.0))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(tree.Value()), 2)
		assert.LessOrEqual(t, len(tree.Value()), 5)
	}
}

func TestSliceOfPanicsOnInvalidRange(t *testing.T) {
	assert.Panics(t, func() { SliceOf(Int(0, 9), LenRange{Lo: 5, Hi: 2}) })
}

func TestSliceOfShrinksTowardsLowerBound(t *testing.T) {
	g := SliceOf(Int(0, 100), LenRange{Lo: 0, Hi: 20})
	tree, err := g.Generate(rng.New(99, 1.0))
	assert.NoError(t, err)
	if len(tree.Value()) > 0 {
		foundShorter := false
		for _, c := range tree.Children() {
			if len(c.Value()) < len(tree.Value()) {
				foundShorter = true
				break
			}
		}
		assert.True(t, foundShorter, "expected at least one shrink child with a shorter slice")
	}
}

func TestSliceOfNeverShrinksBelowLo(t *testing.T) {
	g := SliceOf(Int(0, 10), LenRange{Lo: 3, Hi: 8})
	tree, err := g.Generate(rng.New(55, 1.0))
	assert.NoError(t, err)

	var walk func(tr shrink.Tree[[]int])
	walk = func(tr shrink.Tree[[]int]) {
		assert.GreaterOrEqual(t, len(tr.Value()), 3)
		for _, c := range tr.Children() {
			walk(c)
		}
	}
	walk(tree)
}
